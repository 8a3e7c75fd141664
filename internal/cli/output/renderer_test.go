package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func newBufRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestMode(t *testing.T) {
	tests := []struct {
		input string
		want  OutputMode
	}{
		{"text", ModeText},
		{"TEXT", ModeText},
		{"markdown", ModeMarkdown},
		{"md", ModeMarkdown},
		{"json", ModeJSON},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"bogus", ModeAuto},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mode(tt.input), "Mode(%q)", tt.input)
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on tty is text", ModeAuto, true, ModeText},
		{"auto piped is markdown", ModeAuto, false, ModeMarkdown},
		{"explicit text survives pipe", ModeText, false, ModeText},
		{"explicit markdown survives tty", ModeMarkdown, true, ModeMarkdown},
		{"json", ModeJSON, false, ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newBufRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestEmptyModeDefaultsToAuto(t *testing.T) {
	r, _, _ := newBufRenderer("", false)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestSuccessMarkdown(t *testing.T) {
	r, out, _ := newBufRenderer(ModeAuto, false)
	r.Success("baseline written")
	assert.Equal(t, "**baseline written**\n", out.String())
}

func TestSuccessText(t *testing.T) {
	r, out, _ := newBufRenderer(ModeText, false)
	r.Success("baseline written")
	assert.Contains(t, out.String(), "✓ baseline written")
}

func TestHeaderMarkdown(t *testing.T) {
	r, out, _ := newBufRenderer(ModeMarkdown, false)
	r.Header(1, "Environment Checks")
	r.Header(2, "Details")
	assert.Contains(t, out.String(), "# Environment Checks\n")
	assert.Contains(t, out.String(), "## Details\n")
}

func TestHeaderText(t *testing.T) {
	r, out, _ := newBufRenderer(ModeText, false)
	r.Header(1, "Environment Checks")
	assert.Equal(t, "Environment Checks\n", out.String())
}

func TestStatusLineMarkers(t *testing.T) {
	tests := []struct {
		status string
		marker string
	}{
		{"pass", "✓"},
		{"success", "✓"},
		{"warn", "!"},
		{"fail", "✗"},
		{"error", "✗"},
		{"other", "•"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r, out, _ := newBufRenderer(ModeText, false)
			r.StatusLine("config", tt.status, "loaded")
			assert.Contains(t, out.String(), tt.marker+" config")
			assert.Contains(t, out.String(), "loaded")
		})
	}
}

func TestStatusLineWithoutDetail(t *testing.T) {
	r, out, _ := newBufRenderer(ModeText, false)
	r.StatusLine("git", "pass", "")
	assert.Equal(t, "  ✓ git\n", out.String())
}

func TestErrorGoesToStderr(t *testing.T) {
	r, out, errOut := newBufRenderer(ModeText, false)
	r.Error("something broke")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "something broke")
}

func TestJSONIndented(t *testing.T) {
	r, out, _ := newBufRenderer(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"count": 3}))

	assert.Equal(t, "{\n  \"count\": 3\n}\n", out.String())

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["count"])
}

func TestNoANSIWhenPiped(t *testing.T) {
	r, out, errOut := newBufRenderer(ModeText, false)
	r.Success("done")
	r.Header(1, "Summary")
	r.StatusLine("store", "fail", "cannot open")
	r.Error("bad input")

	assert.False(t, ansiPattern.MatchString(out.String()),
		"piped stdout should not contain escape codes: %q", out.String())
	assert.False(t, ansiPattern.MatchString(errOut.String()),
		"piped stderr should not contain escape codes: %q", errOut.String())
}

func TestPrintfAndPrintln(t *testing.T) {
	r, out, _ := newBufRenderer(ModeText, false)
	r.Printf("%d findings\n", 2)
	r.Println("done")
	assert.Equal(t, "2 findings\ndone\n", out.String())
}

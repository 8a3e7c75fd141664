// Package output provides the terminal renderer used by all commands.
//
// Output adapts to environment: styled text on a TTY, markdown when piped,
// JSON on request. Commands ask the renderer rather than branching on mode
// themselves wherever possible.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode selects how command results are rendered.
type OutputMode string

// Supported modes. ModeAuto picks text on a TTY and markdown otherwise.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode normalizes a user-supplied format string.
func Mode(s string) OutputMode {
	switch strings.ToLower(s) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting TTY state from the writer.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Used by tests to exercise both branches deterministically.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
	r.styles = newStyles(r.EffectiveMode() == ModeText && isTTY)
	return r
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Out returns the underlying writer, for table renderers that mirror output.
func (r *Renderer) Out() io.Writer { return r.out }

// Styles returns the style set for the current mode.
func (r *Renderer) Styles() *Styles { return r.styles }

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Println writes a line.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		_, _ = fmt.Fprintf(r.out, "**%s**\n", msg)
		return
	}
	_, _ = fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+msg))
}

// Error writes an error message to stderr.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(msg))
}

// Header writes a section header at the given level.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		_, _ = fmt.Fprintf(r.out, "%s %s\n", strings.Repeat("#", level), text)
		return
	}
	_, _ = fmt.Fprintln(r.out, r.styles.Bold.Render(text))
}

// StatusLine writes a name with a status marker and optional detail.
func (r *Renderer) StatusLine(name, status, detail string) {
	marker := "•"
	style := r.styles.Muted
	switch status {
	case "success", "pass":
		marker, style = "✓", r.styles.Success
	case "warn":
		marker, style = "!", r.styles.Warning
	case "error", "fail":
		marker, style = "✗", r.styles.Error
	}
	line := fmt.Sprintf("  %s %s", style.Render(marker), name)
	if detail != "" {
		line += "  " + r.styles.Muted.Render(detail)
	}
	_, _ = fmt.Fprintln(r.out, line)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

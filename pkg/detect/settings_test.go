package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"zero values", Settings{}, false},
		{"valid limits", Settings{Base64Limit: 4.5, HexLimit: 3.0}, false},
		{"limit at bound", Settings{Base64Limit: 8}, false},
		{"negative limit", Settings{HexLimit: -1}, true},
		{"limit too high", Settings{Base64Limit: 8.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsBuild(t *testing.T) {
	Clear()
	t.Cleanup(Clear)
	Register(newTestDetector("Alpha"))
	Register(newTestDetector("Bravo"))

	active, err := Settings{}.Build()
	require.NoError(t, err)
	assert.Len(t, active, 2)

	active, err = Settings{Disabled: []string{"Alpha"}}.Build()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Bravo", active[0].Type())

	_, err = Settings{Base64Limit: 99}.Build()
	assert.Error(t, err)
}

type configurableDetector struct {
	*RegexDetector
	configured bool
}

func (c *configurableDetector) Configure(Settings) (Detector, error) {
	return &configurableDetector{RegexDetector: c.RegexDetector, configured: true}, nil
}

func TestSettingsBuildConfigures(t *testing.T) {
	Clear()
	t.Cleanup(Clear)
	Register(&configurableDetector{RegexDetector: newTestDetector("Tunable")})

	active, err := Settings{}.Build()
	require.NoError(t, err)
	require.Len(t, active, 1)

	tuned, ok := active[0].(*configurableDetector)
	require.True(t, ok)
	assert.True(t, tuned.configured)
}

type tunableDetector struct {
	*RegexDetector
}

func (d *tunableDetector) Settings() map[string]any {
	return map[string]any{"limit": 4.5}
}

func TestPluginUsage(t *testing.T) {
	detectors := []Detector{
		newTestDetector("Plain"),
		&tunableDetector{RegexDetector: newTestDetector("Tuned")},
	}

	usage := PluginUsage(detectors)
	require.Len(t, usage, 2)
	assert.Equal(t, "Plain", usage[0].Name)
	assert.Nil(t, usage[0].Settings)
	assert.Equal(t, "Tuned", usage[1].Name)
	assert.Equal(t, 4.5, usage[1].Settings["limit"])
}

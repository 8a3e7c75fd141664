package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test and resets the loaded
// config afterward so tests stay independent.
func chdir(t *testing.T, dir string) {
	t.Helper()
	t.Chdir(dir)
	t.Cleanup(ResetConfig)
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, DefaultBaselineFile), cfg.BaselinePath)
	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, 0, cfg.Workers)
	assert.False(t, cfg.AllFiles)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".secretsift.yaml", `
baseline_path: custom.baseline
output: json
workers: 4
exclude:
  files:
    - "^vendor/"
detect:
  disabled:
    - GitLabToken
  base64_limit: 5.0
filters:
  disabled:
    - heuristic.sequential-string
`)
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "custom.baseline"), cfg.BaselinePath)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"^vendor/"}, cfg.Exclude.Files)
	assert.Equal(t, []string{"GitLabToken"}, cfg.Detect.Disabled)
	assert.Equal(t, 5.0, cfg.Detect.Base64Limit)
	assert.Equal(t, []string{"heuristic.sequential-string"}, cfg.Filters.Disabled)
	assert.Equal(t, filepath.Join(dir, ".secretsift.yaml"), GetConfigFileUsed())
}

func TestLoadConfigExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "alt.yaml", "output: markdown\n")
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, path, GetConfigFileUsed())
	// Project root follows the explicit config file, not the CWD.
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".secretsift.yaml", "output: text\nworkers: 2\n")
	chdir(t, dir)
	t.Setenv("SECRETSIFT_OUTPUT", "json")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("SECRETSIFT_OUTPUT", "markdown")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "auto", "")
	flags.Int("workers", 0, "")
	require.NoError(t, flags.Parse([]string{"--output", "json", "--workers", "8"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".secretsift.yaml", "output: json\n")
	chdir(t, dir)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "auto", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	// Flag default must not mask the file value.
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfigBaselineFlagRelativeToCWD(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".secretsift.yaml", "baseline_path: from-file.baseline\n")
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0755))
	chdir(t, sub)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("baseline", "", "")
	require.NoError(t, flags.Parse([]string{"--baseline", "mine.baseline"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	// Upward search finds the project root, but the flag path resolves
	// against where the command was run.
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(sub, "mine.baseline"), cfg.BaselinePath)
}

func TestLoadConfigUpwardSearch(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "secretsift.yaml", "workers: 3\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, DefaultBaselineFile), cfg.BaselinePath)
}

func TestLoadConfigAbsolutePathsKept(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.baseline")
	writeConfig(t, dir, ".secretsift.yaml", "baseline_path: "+abs+"\n")
	chdir(t, dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.BaselinePath)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".secretsift.yaml", "output: [unclosed\n")
	chdir(t, dir)

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetCurrentConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.Nil(t, GetCurrentConfig())
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{BaselinePath: ".secretsift.baseline"}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default ok", func(c *Config) {}, ""},
		{"missing baseline", func(c *Config) { c.BaselinePath = "" }, "baseline_path is required"},
		{"bad file pattern", func(c *Config) { c.Exclude.Files = []string{"(["} }, "invalid exclude pattern"},
		{"bad line pattern", func(c *Config) { c.Exclude.Lines = []string{"*"} }, "invalid exclude pattern"},
		{"bad keyword exclude", func(c *Config) { c.Detect.KeywordExclude = "(" }, "invalid keyword_exclude"},
		{"entropy limit too high", func(c *Config) { c.Detect.Base64Limit = 9 }, "entropy limits"},
		{"entropy limit negative", func(c *Config) { c.Detect.HexLimit = -1 }, "entropy limits"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

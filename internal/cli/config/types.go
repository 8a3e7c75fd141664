// Package config provides configuration management for the secretsift CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	ProjectRoot  string `koanf:"-"`
	BaselinePath string `koanf:"baseline_path"`
	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	Workers      int    `koanf:"workers"`
	AllFiles     bool   `koanf:"all_files"`

	Exclude ExcludeConfig `koanf:"exclude"`
	Detect  DetectConfig  `koanf:"detect"`
	Filters FilterConfig  `koanf:"filters"`
}

// ExcludeConfig holds regex patterns for skipping files and lines.
type ExcludeConfig struct {
	Files []string `koanf:"files"`
	Lines []string `koanf:"lines"`
}

// DetectConfig tunes the detector set.
type DetectConfig struct {
	Disabled       []string `koanf:"disabled"`
	Base64Limit    float64  `koanf:"base64_limit"`
	HexLimit       float64  `koanf:"hex_limit"`
	KeywordExclude string   `koanf:"keyword_exclude"`
}

// FilterConfig tunes the false-positive filter chain.
type FilterConfig struct {
	Disabled []string `koanf:"disabled"`
}

// Default configuration values.
const (
	DefaultConfigFile   = ".secretsift.yaml"
	DefaultBaselineFile = ".secretsift.baseline"
	DefaultStateFile    = ".secretsift/state.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

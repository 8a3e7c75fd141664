package config

import (
	"fmt"
	"regexp"
)

// Validate checks if the configuration is valid. Regex patterns are
// compiled here so a bad pattern fails at startup rather than mid-scan.
func (c *Config) Validate() error {
	if c.BaselinePath == "" {
		return fmt.Errorf("baseline_path is required")
	}
	for _, patterns := range [][]string{c.Exclude.Files, c.Exclude.Lines} {
		for _, p := range patterns {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
			}
		}
	}
	if c.Detect.KeywordExclude != "" {
		if _, err := regexp.Compile(c.Detect.KeywordExclude); err != nil {
			return fmt.Errorf("invalid keyword_exclude pattern: %w", err)
		}
	}
	for _, limit := range []float64{c.Detect.Base64Limit, c.Detect.HexLimit} {
		if limit < 0 || limit > 8 {
			return fmt.Errorf("entropy limits must be within [0, 8], got %v", limit)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

package detectors

import (
	"fmt"
	"regexp"

	"github.com/stillwater-labs/secretsift/pkg/detect"
)

// keywords that suggest the right-hand side of an assignment is sensitive.
const keywordAlternates = `password|passwd|pwd|secret|secrete|token|api_key|apikey|auth_key|access_key|private_key|client_secret|db_pass|credentials`

var keywordPatterns = []*regexp.Regexp{
	// quoted value: password = "hunter22", api_key: 'abc123...'
	regexp.MustCompile(`(?i)(?:` + keywordAlternates + `)["']?\s*(?::=|[:=]|=>)\s*["']([^"'\s]{4,})["']`),
	// unquoted value: export DB_PASS=hunter22
	regexp.MustCompile(`(?i)(?:` + keywordAlternates + `)\s*=\s*([^\s"']{8,})$`),
}

func init() {
	detect.Register(&KeywordDetector{})
}

// KeywordDetector flags values assigned to password-like variable names.
// It is deliberately noisy; the filter stack removes templated values,
// sequential strings, and allowlisted lines.
type KeywordDetector struct {
	exclude *regexp.Regexp
}

// Type implements detect.Detector.
func (d *KeywordDetector) Type() string { return "KeywordDetector" }

// Description implements detect.Detector.
func (d *KeywordDetector) Description() string {
	return "value assigned to a password-like variable name"
}

// Settings implements detect.Tunable.
func (d *KeywordDetector) Settings() map[string]any {
	if d.exclude == nil {
		return nil
	}
	return map[string]any{"exclude": d.exclude.String()}
}

// Configure implements detect.Configurable.
func (d *KeywordDetector) Configure(s detect.Settings) (detect.Detector, error) {
	if s.KeywordExclude == "" {
		return d, nil
	}
	re, err := regexp.Compile(s.KeywordExclude)
	if err != nil {
		return nil, fmt.Errorf("invalid keyword exclude pattern: %w", err)
	}
	return &KeywordDetector{exclude: re}, nil
}

// Analyze implements detect.Detector.
func (d *KeywordDetector) Analyze(line detect.Line) []detect.Candidate {
	if d.exclude != nil && d.exclude.MatchString(line.Text) {
		return nil
	}

	var candidates []detect.Candidate
	for _, pattern := range keywordPatterns {
		for _, match := range pattern.FindAllStringSubmatch(line.Text, -1) {
			candidates = append(candidates, detect.Candidate{
				Type:       "KeywordDetector",
				Raw:        match[1],
				LineNumber: line.Number,
			})
		}
	}
	return candidates
}

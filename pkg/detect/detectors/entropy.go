package detectors

import (
	"math"
	"regexp"
	"strings"

	"github.com/stillwater-labs/secretsift/pkg/detect"
)

// Default entropy limits. Base64 strings carry more bits per character than
// hex, so the thresholds differ.
const (
	DefaultBase64Limit = 4.5
	DefaultHexLimit    = 3.0
)

func init() {
	detect.Register(&EntropyDetector{
		name:    "Base64HighEntropyString",
		summary: "high-entropy base64 string",
		charset: "A-Za-z0-9+/=",
		pattern: regexp.MustCompile(`[A-Za-z0-9+/=]{20,}`),
		limit:   DefaultBase64Limit,
	})
	detect.Register(&EntropyDetector{
		name:    "HexHighEntropyString",
		summary: "high-entropy hex string",
		charset: "0-9a-fA-F",
		pattern: regexp.MustCompile(`[0-9a-fA-F]{16,}`),
		limit:   DefaultHexLimit,
	})
}

// EntropyDetector flags strings whose Shannon entropy exceeds a limit.
type EntropyDetector struct {
	name    string
	summary string
	charset string
	pattern *regexp.Regexp
	limit   float64
}

// Type implements detect.Detector.
func (d *EntropyDetector) Type() string { return d.name }

// Description implements detect.Detector.
func (d *EntropyDetector) Description() string { return d.summary }

// Settings implements detect.Tunable.
func (d *EntropyDetector) Settings() map[string]any {
	return map[string]any{"limit": d.limit}
}

// Configure implements detect.Configurable, returning a copy with the
// limit from scan settings applied.
func (d *EntropyDetector) Configure(s detect.Settings) (detect.Detector, error) {
	limit := d.limit
	switch d.name {
	case "Base64HighEntropyString":
		if s.Base64Limit > 0 {
			limit = s.Base64Limit
		}
	case "HexHighEntropyString":
		if s.HexLimit > 0 {
			limit = s.HexLimit
		}
	}
	tuned := *d
	tuned.limit = limit
	return &tuned, nil
}

// Analyze implements detect.Detector. Every maximal run of the charset on
// the line is measured; only runs above the entropy limit become candidates.
func (d *EntropyDetector) Analyze(line detect.Line) []detect.Candidate {
	var candidates []detect.Candidate
	for _, match := range d.pattern.FindAllString(line.Text, -1) {
		if ShannonEntropy(match) <= d.limit {
			continue
		}
		candidates = append(candidates, detect.Candidate{
			Type:       d.name,
			Raw:        match,
			LineNumber: line.Number,
		})
	}
	return candidates
}

// ShannonEntropy returns the Shannon entropy of s in bits per character.
func ShannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	var entropy float64
	length := float64(len(s))
	for _, c := range uniqueChars(s) {
		p := float64(strings.Count(s, string(c))) / length
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func uniqueChars(s string) []rune {
	seen := make(map[rune]bool, len(s))
	var out []rune
	for _, c := range s {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Package detect defines the secret detector plugin system.
//
// Detectors are stateless and registered from init() functions in the
// detectors subpackage, mirroring how lint tools register rules: importing
// the package for side effects populates the global registry.
package detect

import "regexp"

// Line is one line of input under analysis.
type Line struct {
	Filename string
	Number   int
	Text     string
}

// Candidate is a raw secret value found on a line. The raw value stays in
// memory only; persistence layers store its hash.
type Candidate struct {
	Type       string
	Raw        string
	LineNumber int
}

// Detector analyzes a line and reports candidate secrets.
type Detector interface {
	// Type returns the unique identifier, e.g. "AWSAccessKey".
	Type() string

	// Description returns a human-readable summary.
	Description() string

	// Analyze returns candidate secrets found on the line.
	Analyze(line Line) []Candidate
}

// RegexDetector is a data-driven detector defined entirely by patterns.
// Most concrete detectors are values of this type.
type RegexDetector struct {
	Name     string
	Summary  string
	Patterns []*regexp.Regexp

	// Verify optionally rejects a matched value (e.g. JWT segment checks).
	Verify func(match string) bool
}

// Type implements Detector.
func (d *RegexDetector) Type() string { return d.Name }

// Description implements Detector.
func (d *RegexDetector) Description() string { return d.Summary }

// Analyze implements Detector.
func (d *RegexDetector) Analyze(line Line) []Candidate {
	var candidates []Candidate
	for _, pattern := range d.Patterns {
		for _, match := range pattern.FindAllStringSubmatch(line.Text, -1) {
			value := match[0]
			if len(match) > 1 && match[1] != "" {
				value = match[1]
			}
			if d.Verify != nil && !d.Verify(value) {
				continue
			}
			candidates = append(candidates, Candidate{
				Type:       d.Name,
				Raw:        value,
				LineNumber: line.Number,
			})
		}
	}
	return candidates
}

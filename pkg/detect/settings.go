package detect

import (
	"fmt"

	"github.com/stillwater-labs/secretsift/pkg/baseline"
)

// Settings selects and tunes the active detector set for a scan.
type Settings struct {
	// Disabled lists detector types to exclude.
	Disabled []string

	// Base64Limit and HexLimit override the entropy thresholds.
	// Zero means use the detector default.
	Base64Limit float64
	HexLimit    float64

	// KeywordExclude is a regex; keyword findings whose line matches it
	// are suppressed at detection time.
	KeywordExclude string
}

// Validate checks threshold ranges before a scan starts.
func (s Settings) Validate() error {
	for _, limit := range []float64{s.Base64Limit, s.HexLimit} {
		if limit < 0 || limit > 8 {
			return fmt.Errorf("entropy limit must be within [0, 8], got %v", limit)
		}
	}
	return nil
}

// Configurable is implemented by detectors that produce a tuned copy of
// themselves from scan settings.
type Configurable interface {
	Configure(s Settings) (Detector, error)
}

// Build resolves the active detectors from the global registry, applying
// disables and per-detector tuning.
func (s Settings) Build() ([]Detector, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	disabled := make(map[string]bool, len(s.Disabled))
	for _, name := range s.Disabled {
		disabled[name] = true
	}

	var active []Detector
	for _, d := range All() {
		if disabled[d.Type()] {
			continue
		}
		if c, ok := d.(Configurable); ok {
			tuned, err := c.Configure(s)
			if err != nil {
				return nil, fmt.Errorf("failed to configure %s: %w", d.Type(), err)
			}
			active = append(active, tuned)
			continue
		}
		active = append(active, d)
	}
	return active, nil
}

// PluginUsage records the active detectors for baseline bookkeeping.
func PluginUsage(detectors []Detector) []baseline.PluginUsage {
	usage := make([]baseline.PluginUsage, 0, len(detectors))
	for _, d := range detectors {
		u := baseline.PluginUsage{Name: d.Type()}
		if t, ok := d.(Tunable); ok {
			u.Settings = t.Settings()
		}
		usage = append(usage, u)
	}
	return usage
}

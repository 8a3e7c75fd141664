// Package baseline defines the on-disk format for recorded findings and the
// operations that keep audit history stable across re-scans.
//
// A baseline file is JSON with findings sorted by (filename, line_number,
// hashed_secret). That ordering is an invariant of Save, and it is what lets
// Compare walk two baselines as a linear merge.
package baseline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Version is the current baseline format version.
const Version = "1.0"

// Sentinel errors surfaced to the CLI.
var (
	ErrSameFile     = errors.New("cannot compare a baseline with itself")
	ErrNoLineNumber = errors.New("baseline has no line numbers; re-scan before comparing")
	ErrUnsupported  = errors.New("unsupported baseline version")
)

// PluginUsage records a detector and the settings it ran with.
type PluginUsage struct {
	Name     string         `json:"name"`
	Settings map[string]any `json:"settings,omitempty"`
}

// FilterUsage records an active false-positive filter.
type FilterUsage struct {
	Name string `json:"name"`
}

// Baseline is the persisted scan result.
type Baseline struct {
	Version     string                        `json:"version"`
	GeneratedAt time.Time                     `json:"generated_at"`
	Plugins     []PluginUsage                 `json:"plugins_used"`
	Filters     []FilterUsage                 `json:"filters_used"`
	Results     map[string][]*PotentialSecret `json:"results"`
}

// New builds a baseline from a collection.
func New(c *Collection, plugins []PluginUsage, filters []FilterUsage) *Baseline {
	results := make(map[string][]*PotentialSecret, len(c.files))
	for _, name := range c.Files() {
		results[name] = c.Secrets(name)
	}
	return &Baseline{
		Version:     Version,
		GeneratedAt: time.Now().UTC(),
		Plugins:     plugins,
		Filters:     filters,
		Results:     results,
	}
}

// Collection rebuilds a Collection from the stored results.
func (b *Baseline) Collection() *Collection {
	c := NewCollection()
	for filename, secrets := range b.Results {
		for _, s := range secrets {
			s.Filename = filename
			c.Add(s)
		}
	}
	return c
}

// SecretCount returns the total number of recorded findings.
func (b *Baseline) SecretCount() int {
	n := 0
	for _, secrets := range b.Results {
		n += len(secrets)
	}
	return n
}

// Load reads and upgrades a baseline file.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse baseline %s: %w", path, err)
	}
	if err := b.upgrade(); err != nil {
		return nil, err
	}

	// Filenames live on the map key in the file; hydrate the structs.
	for filename, secrets := range b.Results {
		for _, s := range secrets {
			s.Filename = filename
		}
	}
	return &b, nil
}

// upgrade accepts baselines written by older releases. Baselines predating
// filter tracking simply have no filters_used section.
func (b *Baseline) upgrade() error {
	switch b.Version {
	case "", "0.9":
		b.Version = Version
		if b.Filters == nil {
			b.Filters = []FilterUsage{}
		}
	case Version:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupported, b.Version)
	}
	if b.Results == nil {
		b.Results = make(map[string][]*PotentialSecret)
	}
	return nil
}

// Save writes the baseline with sorted results and a trailing newline.
func (b *Baseline) Save(path string) error {
	// Re-sort through a collection so the ordering invariant holds no matter
	// how callers mutated Results.
	c := b.Collection()
	sorted := make(map[string][]*PotentialSecret, len(b.Results))
	for _, name := range c.Files() {
		sorted[name] = c.Secrets(name)
	}
	out := Baseline{
		Version:     b.Version,
		GeneratedAt: b.GeneratedAt,
		Plugins:     b.Plugins,
		Filters:     b.Filters,
		Results:     sorted,
	}
	if out.Filters == nil {
		out.Filters = []FilterUsage{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode baseline: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create baseline directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	return nil
}

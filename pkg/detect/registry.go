package detect

import (
	"sort"
	"sync"
)

// globalRegistry is the single global registry for all detectors.
var globalRegistry = &Registry{
	detectors: make(map[string]Detector),
}

// Registry stores registered detectors for discovery.
type Registry struct {
	mu        sync.RWMutex
	detectors map[string]Detector // keyed by Type
}

// Register adds a detector to the global registry.
// Call this from init() functions in detector packages.
func Register(d Detector) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.detectors[d.Type()] = d
}

// All returns every registered detector, sorted by type.
func All() []Detector {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	detectors := make([]Detector, 0, len(globalRegistry.detectors))
	for _, d := range globalRegistry.detectors {
		detectors = append(detectors, d)
	}
	sort.Slice(detectors, func(i, j int) bool {
		return detectors[i].Type() < detectors[j].Type()
	})
	return detectors
}

// Get returns a detector by its type.
func Get(name string) (Detector, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	d, ok := globalRegistry.detectors[name]
	return d, ok
}

// Count returns the number of registered detectors.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.detectors)
}

// Clear removes all registered detectors. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.detectors = make(map[string]Detector)
}

// Info provides detector metadata for documentation and tooling.
type Info struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// GetInfo extracts metadata from a detector.
func GetInfo(d Detector) Info {
	info := Info{
		Type:        d.Type(),
		Description: d.Description(),
	}
	if t, ok := d.(Tunable); ok {
		info.Settings = t.Settings()
	}
	return info
}

// Tunable is implemented by detectors with runtime-configurable settings
// (entropy limits, keyword exclude patterns). Settings are recorded in the
// baseline so a later run can tell what configuration produced it.
type Tunable interface {
	Settings() map[string]any
}

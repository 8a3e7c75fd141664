// Package filter defines false-positive filters applied to detector output.
//
// Filters only ever suppress candidates; they never create findings. Like
// detectors, built-ins register themselves from init() and are resolved
// through a global registry.
package filter

import (
	"sort"
	"sync"

	"github.com/stillwater-labs/secretsift/pkg/baseline"
	"github.com/stillwater-labs/secretsift/pkg/detect"
)

// Context carries everything a filter may want to inspect. Filters receive
// the whole context and read only the fields they care about.
type Context struct {
	Candidate detect.Candidate
	Filename  string
	Line      string
	PrevLine  string
}

// Filter decides whether a candidate should be excluded from results.
type Filter interface {
	// Name returns the unique identifier, e.g. "heuristic.sequential-string".
	Name() string

	// Description returns a human-readable summary.
	Description() string

	// ShouldExclude reports whether the candidate is a false positive.
	ShouldExclude(ctx Context) bool
}

var globalRegistry = struct {
	mu      sync.RWMutex
	filters map[string]Filter
}{filters: make(map[string]Filter)}

// Register adds a filter to the global registry.
func Register(f Filter) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.filters[f.Name()] = f
}

// All returns every registered filter, sorted by name.
func All() []Filter {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	filters := make([]Filter, 0, len(globalRegistry.filters))
	for _, f := range globalRegistry.filters {
		filters = append(filters, f)
	}
	sort.Slice(filters, func(i, j int) bool {
		return filters[i].Name() < filters[j].Name()
	})
	return filters
}

// Get returns a filter by name.
func Get(name string) (Filter, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	f, ok := globalRegistry.filters[name]
	return f, ok
}

// Clear removes all registered filters. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.filters = make(map[string]Filter)
}

// Active resolves the filter chain: every registered filter minus disables,
// plus any extra config-driven filters.
func Active(disabled []string, extra ...Filter) []Filter {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	var active []Filter
	for _, f := range All() {
		if !skip[f.Name()] {
			active = append(active, f)
		}
	}
	active = append(active, extra...)
	return active
}

// Usage records the active filters for baseline bookkeeping.
func Usage(filters []Filter) []baseline.FilterUsage {
	usage := make([]baseline.FilterUsage, 0, len(filters))
	for _, f := range filters {
		usage = append(usage, baseline.FilterUsage{Name: f.Name()})
	}
	return usage
}

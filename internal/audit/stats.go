package audit

import (
	"sort"

	"github.com/stillwater-labs/secretsift/pkg/baseline"
)

// DetectorStats summarizes audit outcomes for one detector type. Precision
// is real / (real + false); it is meaningful only once findings are audited.
type DetectorStats struct {
	Type      string  `json:"type"`
	Total     int     `json:"total"`
	Real      int     `json:"real"`
	False     int     `json:"false"`
	Unaudited int     `json:"unaudited"`
	Precision float64 `json:"precision"`
}

// ComputeStats aggregates audit outcomes per detector, sorted by type.
func ComputeStats(b *baseline.Baseline) []DetectorStats {
	byType := make(map[string]*DetectorStats)

	for _, secret := range b.Collection().All() {
		stats, ok := byType[secret.Type]
		if !ok {
			stats = &DetectorStats{Type: secret.Type}
			byType[secret.Type] = stats
		}
		stats.Total++
		switch {
		case !secret.Audited():
			stats.Unaudited++
		case *secret.IsSecret:
			stats.Real++
		default:
			stats.False++
		}
	}

	out := make([]DetectorStats, 0, len(byType))
	for _, stats := range byType {
		if audited := stats.Real + stats.False; audited > 0 {
			stats.Precision = float64(stats.Real) / float64(audited)
		}
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

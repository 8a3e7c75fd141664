package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwater-labs/secretsift/pkg/baseline"
)

func labeledSecret(detectorType, filename, raw string, line int, isSecret *bool) *baseline.PotentialSecret {
	s := baseline.NewPotentialSecret(detectorType, filename, raw, line)
	s.IsSecret = isSecret
	return s
}

func boolPtr(v bool) *bool { return &v }

func statsBaseline() *baseline.Baseline {
	c := baseline.NewCollection()
	c.Add(labeledSecret("KeywordDetector", "a.go", "v1", 1, boolPtr(true)))
	c.Add(labeledSecret("KeywordDetector", "a.go", "v2", 2, boolPtr(false)))
	c.Add(labeledSecret("KeywordDetector", "b.go", "v3", 3, boolPtr(false)))
	c.Add(labeledSecret("EntropyDetector", "a.go", "v4", 4, nil))
	return baseline.New(c, nil, nil)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(statsBaseline())
	require.Len(t, stats, 2)

	entropy := stats[0]
	assert.Equal(t, "EntropyDetector", entropy.Type)
	assert.Equal(t, 1, entropy.Total)
	assert.Equal(t, 1, entropy.Unaudited)
	assert.Equal(t, 0.0, entropy.Precision, "no audited findings, no precision")

	keyword := stats[1]
	assert.Equal(t, "KeywordDetector", keyword.Type)
	assert.Equal(t, 3, keyword.Total)
	assert.Equal(t, 1, keyword.Real)
	assert.Equal(t, 2, keyword.False)
	assert.InDelta(t, 1.0/3.0, keyword.Precision, 0.001)
}

func TestCountPending(t *testing.T) {
	assert.Equal(t, 1, CountPending(statsBaseline()))

	empty := baseline.New(baseline.NewCollection(), nil, nil)
	assert.Equal(t, 0, CountPending(empty))
}

func TestGenerateReport(t *testing.T) {
	b := statsBaseline()

	report := GenerateReport("baseline.json", b, ClassAll)
	assert.Equal(t, "baseline.json", report.GeneratedFrom)
	assert.Equal(t, 4, report.Stats.Total)
	assert.Equal(t, 1, report.Stats.Real)
	assert.Equal(t, 2, report.Stats.False)
	assert.Equal(t, 1, report.Stats.Unaudited)
	assert.Len(t, report.Secrets, 4)

	report = GenerateReport("baseline.json", b, ClassReal)
	require.Len(t, report.Secrets, 1)
	assert.Equal(t, "KeywordDetector", report.Secrets[0].Type)
	require.NotNil(t, report.Secrets[0].IsSecret)
	assert.True(t, *report.Secrets[0].IsSecret)

	report = GenerateReport("baseline.json", b, ClassFalse)
	assert.Len(t, report.Secrets, 2)

	report = GenerateReport("baseline.json", b, ClassUnaudited)
	require.Len(t, report.Secrets, 1)
	assert.Equal(t, "EntropyDetector", report.Secrets[0].Type)
}

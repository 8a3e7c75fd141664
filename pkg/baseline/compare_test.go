package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectionOf(secrets ...*PotentialSecret) *Collection {
	c := NewCollection()
	for _, s := range secrets {
		c.Add(s)
	}
	return c
}

func TestCompareIdentical(t *testing.T) {
	old := collectionOf(NewPotentialSecret("KeywordDetector", "a.go", "v1", 3))
	fresh := collectionOf(NewPotentialSecret("KeywordDetector", "a.go", "v1", 3))

	entries, err := Compare(old, fresh)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompareAddedAndRemoved(t *testing.T) {
	old := collectionOf(
		NewPotentialSecret("KeywordDetector", "a.go", "shared", 1),
		NewPotentialSecret("KeywordDetector", "a.go", "removed", 5),
	)
	fresh := collectionOf(
		NewPotentialSecret("KeywordDetector", "a.go", "shared", 1),
		NewPotentialSecret("KeywordDetector", "a.go", "added", 9),
	)

	entries, err := Compare(old, fresh)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.False(t, entries[0].Added())
	assert.Equal(t, 5, entries[0].Secret().LineNumber)
	assert.True(t, entries[1].Added())
	assert.Equal(t, 9, entries[1].Secret().LineNumber)
}

func TestCompareInterleavesByLine(t *testing.T) {
	old := collectionOf(
		NewPotentialSecret("KeywordDetector", "a.go", "x", 2),
		NewPotentialSecret("KeywordDetector", "a.go", "y", 8),
	)
	fresh := collectionOf(
		NewPotentialSecret("KeywordDetector", "a.go", "z", 5),
	)

	entries, err := Compare(old, fresh)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Combined line order: 2 (removed), 5 (added), 8 (removed).
	assert.Equal(t, 2, entries[0].Secret().LineNumber)
	assert.False(t, entries[0].Added())
	assert.Equal(t, 5, entries[1].Secret().LineNumber)
	assert.True(t, entries[1].Added())
	assert.Equal(t, 8, entries[2].Secret().LineNumber)
	assert.False(t, entries[2].Added())
}

func TestCompareAcrossFiles(t *testing.T) {
	old := collectionOf(NewPotentialSecret("KeywordDetector", "a.go", "v1", 1))
	fresh := collectionOf(NewPotentialSecret("KeywordDetector", "b.go", "v2", 1))

	entries, err := Compare(old, fresh)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.go", entries[0].Filename)
	assert.False(t, entries[0].Added())
	assert.Equal(t, "b.go", entries[1].Filename)
	assert.True(t, entries[1].Added())
}

func TestCompareSkipsDuplicateHashRuns(t *testing.T) {
	// The same value caught by two detectors on each side counts once and
	// produces no diff entries at all.
	old := collectionOf(
		NewPotentialSecret("KeywordDetector", "a.go", "v1", 4),
		NewPotentialSecret("EntropyDetector", "a.go", "v1", 4),
	)
	fresh := collectionOf(
		NewPotentialSecret("KeywordDetector", "a.go", "v1", 4),
	)

	entries, err := Compare(old, fresh)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCompareRequiresLineNumbers(t *testing.T) {
	old := NewCollection()
	old.Add(&PotentialSecret{Type: "KeywordDetector", Filename: "a.go", SecretHash: "abc"})
	fresh := collectionOf(NewPotentialSecret("KeywordDetector", "a.go", "v1", 1))

	_, err := Compare(old, fresh)
	assert.ErrorIs(t, err, ErrNoLineNumber)
}

func TestCompareEmptySides(t *testing.T) {
	fresh := collectionOf(NewPotentialSecret("KeywordDetector", "a.go", "v1", 1))

	entries, err := Compare(NewCollection(), fresh)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Added())

	entries, err = Compare(fresh, NewCollection())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Added())
}

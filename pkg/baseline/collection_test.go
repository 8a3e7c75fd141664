package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionAddDedupes(t *testing.T) {
	c := NewCollection()
	c.Add(NewPotentialSecret("KeywordDetector", "main.go", "hunter2", 10))
	c.Add(NewPotentialSecret("KeywordDetector", "main.go", "hunter2", 3))
	c.Add(NewPotentialSecret("KeywordDetector", "main.go", "hunter2", 20))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Secrets("main.go")[0].LineNumber, "earliest line wins")
}

func TestCollectionAddKeepsDistinctTypes(t *testing.T) {
	c := NewCollection()
	c.Add(NewPotentialSecret("KeywordDetector", "main.go", "hunter2", 10))
	c.Add(NewPotentialSecret("EntropyDetector", "main.go", "hunter2", 10))

	assert.Equal(t, 2, c.Len(), "same value found by two detectors is two findings")
}

func TestCollectionIgnoresInvalid(t *testing.T) {
	c := NewCollection()
	c.Add(nil)
	c.Add(&PotentialSecret{Type: "KeywordDetector", SecretHash: "abc"})

	assert.Equal(t, 0, c.Len())
}

func TestCollectionOrdering(t *testing.T) {
	c := NewCollection()
	c.Add(NewPotentialSecret("KeywordDetector", "b.go", "v1", 5))
	c.Add(NewPotentialSecret("KeywordDetector", "a.go", "v2", 9))
	c.Add(NewPotentialSecret("KeywordDetector", "a.go", "v3", 2))

	assert.Equal(t, []string{"a.go", "b.go"}, c.Files())

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a.go", all[0].Filename)
	assert.Equal(t, 2, all[0].LineNumber)
	assert.Equal(t, 9, all[1].LineNumber)
	assert.Equal(t, "b.go", all[2].Filename)
}

func TestCollectionCountByType(t *testing.T) {
	c := NewCollection()
	c.Add(NewPotentialSecret("KeywordDetector", "a.go", "v1", 1))
	c.Add(NewPotentialSecret("KeywordDetector", "b.go", "v2", 1))
	c.Add(NewPotentialSecret("EntropyDetector", "a.go", "v3", 2))

	counts := c.CountByType()
	assert.Equal(t, 2, counts["KeywordDetector"])
	assert.Equal(t, 1, counts["EntropyDetector"])
}

func TestCollectionTrim(t *testing.T) {
	tmpDir := t.TempDir()
	kept := filepath.Join(tmpDir, "kept.go")
	require.NoError(t, os.WriteFile(kept, []byte("package main\n"), 0644))
	gone := filepath.Join(tmpDir, "deleted.go")

	c := NewCollection()
	c.Add(NewPotentialSecret("KeywordDetector", kept, "v1", 1))
	c.Add(NewPotentialSecret("KeywordDetector", gone, "v2", 1))

	c.Trim("")

	assert.Equal(t, []string{kept}, c.Files())
}

func TestCollectionTrimRelativeRoot(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "config"), 0755))
	rel := filepath.Join("config", "app.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, rel),
		[]byte("key: value\n"), 0644))

	c := NewCollection()
	c.Add(NewPotentialSecret("KeywordDetector", rel, "v1", 1))

	// The relative name only exists under tmpDir, not under the process CWD.
	c.Trim(tmpDir)
	assert.Equal(t, []string{rel}, c.Files())

	c.Trim(t.TempDir())
	assert.Empty(t, c.Files())
}

func TestMergeLabels(t *testing.T) {
	yes, no := true, false

	old := NewCollection()
	labeled := NewPotentialSecret("KeywordDetector", "a.go", "v1", 3)
	labeled.IsSecret = &yes
	old.Add(labeled)
	falsePositive := NewPotentialSecret("EntropyDetector", "a.go", "v2", 7)
	falsePositive.IsSecret = &no
	old.Add(falsePositive)

	// Re-scan: v1 moved to a new line, v2 survived, v3 is new.
	fresh := NewCollection()
	fresh.Add(NewPotentialSecret("KeywordDetector", "a.go", "v1", 30))
	fresh.Add(NewPotentialSecret("EntropyDetector", "a.go", "v2", 7))
	fresh.Add(NewPotentialSecret("KeywordDetector", "b.go", "v3", 1))

	newCount := fresh.MergeLabels(old)

	assert.Equal(t, 1, newCount)
	moved := fresh.Find(labeled)
	require.NotNil(t, moved)
	require.NotNil(t, moved.IsSecret)
	assert.True(t, *moved.IsSecret)
	assert.Equal(t, 30, moved.LineNumber, "label moves, line stays fresh")

	survivor := fresh.Find(falsePositive)
	require.NotNil(t, survivor)
	require.NotNil(t, survivor.IsSecret)
	assert.False(t, *survivor.IsSecret)
}

func TestMergeLabelsNilOld(t *testing.T) {
	fresh := NewCollection()
	fresh.Add(NewPotentialSecret("KeywordDetector", "a.go", "v1", 1))

	assert.Equal(t, 1, fresh.MergeLabels(nil))
}

func TestCollectionRemove(t *testing.T) {
	c := NewCollection()
	s := NewPotentialSecret("KeywordDetector", "a.go", "v1", 1)
	c.Add(s)
	c.Add(NewPotentialSecret("KeywordDetector", "a.go", "v2", 2))

	c.Remove(s)

	assert.Equal(t, 1, c.Len())
	assert.Nil(t, c.Find(s))

	c.Remove(NewPotentialSecret("KeywordDetector", "a.go", "v2", 2))
	assert.Empty(t, c.Files(), "empty file entries are dropped")
}

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwater-labs/secretsift/pkg/filter"
)

func TestWalkFilesSkipsGitDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "objects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "config"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main"), 0644))

	files, err := walkFiles(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "main.go")}, files)
}

func TestWalkFilesExcludes(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "dep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "dep", "a.go"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("x"), 0644))

	excludes, err := filter.NewFileExcludes([]string{`^vendor/`})
	require.NoError(t, err)

	files, err := walkFiles(root, excludes)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "b.go")}, files)
}

func TestWalkFilesMissingRoot(t *testing.T) {
	_, err := walkFiles(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestIsBinary(t *testing.T) {
	assert.True(t, isBinary([]byte{'a', 0x00, 'b'}))
	assert.False(t, isBinary([]byte("plain text\n")))
	assert.False(t, isBinary(nil))
}

func TestRelativeTo(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b.go"), relativeTo("/root", "/root/a/b.go"))
	assert.Equal(t, "/elsewhere/c.go", relativeTo("/root", "/elsewhere/c.go"),
		"paths outside the root stay absolute")
}

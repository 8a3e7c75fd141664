package scan

import (
	"bytes"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/stillwater-labs/secretsift/pkg/filter"
)

// maxFileSize guards against scanning huge artifacts line by line.
const maxFileSize = 5 << 20

// listFiles returns the files to scan under root. Inside a git repository
// only tracked files are scanned unless allFiles is set, matching what a
// pre-commit style workflow cares about.
func listFiles(root string, allFiles bool, excludes *filter.FileExcludes) ([]string, error) {
	if !allFiles && isGitRepo(root) {
		if files, err := gitTrackedFiles(root, excludes); err == nil {
			return files, nil
		}
		// git missing or failed; fall through to the walk
	}
	return walkFiles(root, excludes)
}

func isGitRepo(root string) bool {
	info, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil && info.IsDir()
}

func gitTrackedFiles(root string, excludes *filter.FileExcludes) ([]string, error) {
	out, err := exec.Command("git", "-C", root, "ls-files", "-z").Output()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, name := range bytes.Split(out, []byte{0}) {
		if len(name) == 0 {
			continue
		}
		rel := string(name)
		if excludes.Match(rel) {
			continue
		}
		path := filepath.Join(root, rel)
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() || info.Size() > maxFileSize {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func walkFiles(root string, excludes *filter.FileExcludes) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if d.Name() == ".git" || excludes.Match(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || excludes.Match(rel) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxFileSize {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// isBinary sniffs the first chunk of content for null bytes.
func isBinary(chunk []byte) bool {
	return bytes.IndexByte(chunk, 0) >= 0
}

// relativeTo makes a scanned path relative to the project root so baselines
// stay portable across checkouts.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

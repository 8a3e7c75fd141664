package baseline

import (
	"os"
	"path/filepath"
	"sort"
)

// Collection holds findings grouped by file, with deterministic ordering.
// Iteration order is always (filename, line_number, hashed_secret), which is
// what makes side-by-side comparison of two collections a linear merge.
type Collection struct {
	files map[string][]*PotentialSecret
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{files: make(map[string][]*PotentialSecret)}
}

// Add inserts a finding. Duplicates (same type and hash within a file) are
// collapsed, keeping the earliest line number.
func (c *Collection) Add(secret *PotentialSecret) {
	if secret == nil || secret.Filename == "" {
		return
	}
	existing := c.files[secret.Filename]
	for _, s := range existing {
		if s.Type == secret.Type && s.SecretHash == secret.SecretHash {
			if secret.LineNumber > 0 && (s.LineNumber == 0 || secret.LineNumber < s.LineNumber) {
				s.LineNumber = secret.LineNumber
			}
			return
		}
	}
	c.files[secret.Filename] = append(existing, secret.clone())
}

// Files returns the filenames in sorted order.
func (c *Collection) Files() []string {
	names := make([]string, 0, len(c.files))
	for name := range c.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Secrets returns the findings for a file, sorted by (line, hash).
func (c *Collection) Secrets(filename string) []*PotentialSecret {
	secrets := append([]*PotentialSecret(nil), c.files[filename]...)
	sortSecrets(secrets)
	return secrets
}

// All returns every finding sorted by (filename, line, hash).
func (c *Collection) All() []*PotentialSecret {
	var out []*PotentialSecret
	for _, name := range c.Files() {
		out = append(out, c.Secrets(name)...)
	}
	return out
}

// Len returns the total number of findings.
func (c *Collection) Len() int {
	n := 0
	for _, secrets := range c.files {
		n += len(secrets)
	}
	return n
}

// CountByType returns finding counts keyed by detector type.
func (c *Collection) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, secrets := range c.files {
		for _, s := range secrets {
			counts[s.Type]++
		}
	}
	return counts
}

// Trim removes files that no longer exist on disk and drops empty entries.
// Baselines record filenames relative to the directory they were scanned
// from, so relative names are resolved against root before the existence
// check. Findings in surviving files are kept untouched.
func (c *Collection) Trim(root string) {
	for name, secrets := range c.files {
		if len(secrets) == 0 {
			delete(c.files, name)
			continue
		}
		path := name
		if root != "" && !filepath.IsAbs(name) {
			path = filepath.Join(root, name)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			delete(c.files, name)
		}
	}
}

// MergeLabels copies audit labels from old onto matching findings. A finding
// matches when type, filename, and hash agree; line numbers may differ.
// Returns the number of findings in c that have no counterpart in old.
func (c *Collection) MergeLabels(old *Collection) int {
	if old == nil {
		return c.Len()
	}
	newCount := 0
	for name, secrets := range c.files {
		oldSecrets := old.files[name]
		for _, s := range secrets {
			matched := false
			for _, o := range oldSecrets {
				if s.Equal(o) {
					matched = true
					if o.IsSecret != nil {
						v := *o.IsSecret
						s.IsSecret = &v
					}
					s.IsVerified = o.IsVerified
					break
				}
			}
			if !matched {
				newCount++
			}
		}
	}
	return newCount
}

// Remove deletes a finding from the collection.
func (c *Collection) Remove(secret *PotentialSecret) {
	secrets := c.files[secret.Filename]
	for i, s := range secrets {
		if s.Equal(secret) {
			c.files[secret.Filename] = append(secrets[:i], secrets[i+1:]...)
			break
		}
	}
	if len(c.files[secret.Filename]) == 0 {
		delete(c.files, secret.Filename)
	}
}

// Find returns the stored finding equal to secret, or nil.
func (c *Collection) Find(secret *PotentialSecret) *PotentialSecret {
	for _, s := range c.files[secret.Filename] {
		if s.Equal(secret) {
			return s
		}
	}
	return nil
}

func sortSecrets(secrets []*PotentialSecret) {
	sort.Slice(secrets, func(i, j int) bool {
		a, b := secrets[i], secrets[j]
		if a.LineNumber != b.LineNumber {
			return a.LineNumber < b.LineNumber
		}
		return a.SecretHash < b.SecretHash
	})
}

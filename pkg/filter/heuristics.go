package filter

import (
	"path/filepath"
	"regexp"
	"strings"
)

func init() {
	Register(SequentialString{})
	Register(PotentialUUID{})
	Register(LikelyIDString{})
	Register(TemplatedSecret{})
	Register(LockFile{})
}

// SequentialString suppresses values that are runs of consecutive
// characters, e.g. "abcdefgh" or "12345678". These are placeholders,
// not secrets, no matter how long.
type SequentialString struct{}

// Name implements Filter.
func (SequentialString) Name() string { return "heuristic.sequential-string" }

// Description implements Filter.
func (SequentialString) Description() string {
	return "value is a run of sequential characters"
}

// ShouldExclude implements Filter.
func (SequentialString) ShouldExclude(ctx Context) bool {
	s := strings.ToLower(ctx.Candidate.Raw)
	if len(s) < 4 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[i-1]+1 && s[i] != s[i-1] {
			return false
		}
	}
	return true
}

var uuidPattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{4}-?[0-9a-fA-F]{12}$`,
)

// PotentialUUID suppresses values shaped like UUIDs. They trip the hex
// entropy detector but identify resources, not credentials.
type PotentialUUID struct{}

// Name implements Filter.
func (PotentialUUID) Name() string { return "heuristic.uuid" }

// Description implements Filter.
func (PotentialUUID) Description() string { return "value looks like a UUID" }

// ShouldExclude implements Filter.
func (PotentialUUID) ShouldExclude(ctx Context) bool {
	return uuidPattern.MatchString(ctx.Candidate.Raw)
}

var idAssignmentPattern = regexp.MustCompile(`(?i)[\w.-]*id[\w.-]*["']?\s*(?::=|[:=]|=>)`)

// LikelyIDString suppresses values assigned to identifier-named variables
// (user_id, sessionId, GUID fields and the like).
type LikelyIDString struct{}

// Name implements Filter.
func (LikelyIDString) Name() string { return "heuristic.id-string" }

// Description implements Filter.
func (LikelyIDString) Description() string {
	return "value is assigned to an identifier-like variable"
}

// ShouldExclude implements Filter.
func (LikelyIDString) ShouldExclude(ctx Context) bool {
	loc := idAssignmentPattern.FindStringIndex(ctx.Line)
	if loc == nil {
		return false
	}
	// The assignment must precede the candidate on the line.
	return strings.Index(ctx.Line, ctx.Candidate.Raw) > loc[0]
}

var templatedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\$\{[^}]*\}$`),
	regexp.MustCompile(`^\{\{[^}]*\}\}$`),
	regexp.MustCompile(`^<[^>]*>$`),
	regexp.MustCompile(`^%\([^)]*\)s$`),
}

// TemplatedSecret suppresses placeholder values that will be substituted
// at deploy time.
type TemplatedSecret struct{}

// Name implements Filter.
func (TemplatedSecret) Name() string { return "heuristic.templated-secret" }

// Description implements Filter.
func (TemplatedSecret) Description() string {
	return "value is a template placeholder"
}

// ShouldExclude implements Filter.
func (TemplatedSecret) ShouldExclude(ctx Context) bool {
	for _, p := range templatedPatterns {
		if p.MatchString(ctx.Candidate.Raw) {
			return true
		}
	}
	return false
}

// lockFileNames holds dependency lock files whose hashes are all noise.
var lockFileNames = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"Gemfile.lock":      true,
	"Pipfile.lock":      true,
	"poetry.lock":       true,
	"uv.lock":           true,
	"Cargo.lock":        true,
	"composer.lock":     true,
	"go.sum":            true,
	"flake.lock":        true,
}

// LockFile suppresses every finding inside dependency lock files.
type LockFile struct{}

// Name implements Filter.
func (LockFile) Name() string { return "heuristic.lock-file" }

// Description implements Filter.
func (LockFile) Description() string {
	return "file is a dependency lock file"
}

// ShouldExclude implements Filter.
func (LockFile) ShouldExclude(ctx Context) bool {
	return lockFileNames[filepath.Base(ctx.Filename)]
}

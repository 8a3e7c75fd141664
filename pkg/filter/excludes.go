package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// LineExcludes suppresses findings on lines matching project-configured
// patterns. Unlike the built-ins this is constructed per scan from config,
// not registered globally.
type LineExcludes struct {
	patterns []*regexp.Regexp
}

// NewLineExcludes compiles line exclude patterns from config.
func NewLineExcludes(patterns []string) (*LineExcludes, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid line exclude pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &LineExcludes{patterns: compiled}, nil
}

// Name implements Filter.
func (e *LineExcludes) Name() string {
	pats := make([]string, len(e.patterns))
	for i, p := range e.patterns {
		pats[i] = p.String()
	}
	return "config.exclude-lines(" + strings.Join(pats, ",") + ")"
}

// Description implements Filter.
func (e *LineExcludes) Description() string {
	return "line matches a configured exclude pattern"
}

// ShouldExclude implements Filter.
func (e *LineExcludes) ShouldExclude(ctx Context) bool {
	for _, p := range e.patterns {
		if p.MatchString(ctx.Line) {
			return true
		}
	}
	return false
}

// FileExcludes decides which files are skipped entirely. It runs during
// the walk, before any detector sees the file.
type FileExcludes struct {
	patterns []*regexp.Regexp
}

// NewFileExcludes compiles file exclude patterns from config.
func NewFileExcludes(patterns []string) (*FileExcludes, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid file exclude pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return &FileExcludes{patterns: compiled}, nil
}

// Match reports whether the path should be skipped.
func (e *FileExcludes) Match(path string) bool {
	if e == nil {
		return false
	}
	for _, p := range e.patterns {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}

// Patterns returns the configured pattern sources.
func (e *FileExcludes) Patterns() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.patterns))
	for i, p := range e.patterns {
		out[i] = p.String()
	}
	return out
}

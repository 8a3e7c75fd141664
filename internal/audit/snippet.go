package audit

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/stillwater-labs/secretsift/internal/cli/output"
)

// snippetPadding is the number of context lines shown around a finding.
const snippetPadding = 2

// Snippet is a few lines of source around a finding.
type Snippet struct {
	Lines     []string // raw lines, Lines[0] is line number Start
	Start     int      // 1-based line number of Lines[0]
	Target    int      // 1-based line number of the finding
}

// ReadSnippet extracts the lines around lineNumber from the file at path.
func ReadSnippet(path string, lineNumber int) (*Snippet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if lineNumber < 1 || lineNumber > len(lines) {
		return nil, fmt.Errorf("line %d out of range for %s", lineNumber, path)
	}

	start := lineNumber - snippetPadding
	if start < 1 {
		start = 1
	}
	end := lineNumber + snippetPadding
	if end > len(lines) {
		end = len(lines)
	}

	return &Snippet{
		Lines:  lines[start-1 : end],
		Start:  start,
		Target: lineNumber,
	}, nil
}

// TargetLine returns the line the finding is on.
func (s *Snippet) TargetLine() string {
	return s.Lines[s.Target-s.Start]
}

// Render formats the snippet with line numbers, highlighting the target.
func (s *Snippet) Render(styles *output.Styles) string {
	var b strings.Builder
	for i, line := range s.Lines {
		number := s.Start + i
		prefix := fmt.Sprintf("%4d: ", number)
		if number == s.Target {
			b.WriteString(styles.Warning.Render(prefix + line))
		} else {
			b.WriteString(styles.Muted.Render(prefix) + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

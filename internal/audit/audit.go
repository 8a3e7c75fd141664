// Package audit implements the interactive labeling and comparison flows
// over baseline files.
package audit

import (
	"fmt"
	"path/filepath"

	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/pkg/baseline"
)

// Options configures an audit session.
type Options struct {
	// IncludeAudited re-presents findings that already carry a label.
	IncludeAudited bool
}

// Session drives an interactive audit of one baseline file.
type Session struct {
	path     string
	root     string // directory the baseline lives in; resolves filenames
	base     *baseline.Baseline
	renderer *output.Renderer
	opts     Options
}

// NewSession loads the baseline at path.
func NewSession(path string, r *output.Renderer, opts Options) (*Session, error) {
	base, err := baseline.Load(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Session{
		path:     path,
		root:     filepath.Dir(abs),
		base:     base,
		renderer: r,
		opts:     opts,
	}, nil
}

// Run presents each finding and persists labels after every decision, so an
// interrupted audit loses nothing.
func (s *Session) Run() error {
	collection := s.base.Collection()

	var pending []*baseline.PotentialSecret
	for _, secret := range collection.All() {
		if !s.opts.IncludeAudited && secret.Audited() {
			continue
		}
		pending = append(pending, secret)
	}
	if len(pending) == 0 {
		s.renderer.Success("Nothing to audit")
		return nil
	}

	prompt, err := newPrompter("")
	if err != nil {
		return err
	}
	defer func() { _ = prompt.Close() }()

	w := s.renderer.Out()
	styles := s.renderer.Styles()

	it := NewIterator(pending)
	for {
		secret, ok := it.Next()
		if !ok {
			break
		}

		ctx := SecretContext{
			CurrentIndex: it.Index() + 1,
			Total:        it.Len(),
			Secret:       secret,
		}
		if _, err := RawSecretFromFile(s.root, secret); err != nil {
			ctx.Err = err
		} else {
			ctx.Snippet, _ = ReadSnippet(resolvePath(s.root, secret.Filename), secret.LineNumber)
		}
		_, _ = fmt.Fprintln(w)
		printContext(w, styles, ctx)

		decision, err := prompt.decide(true, it.CanStepBack())
		if err != nil {
			return err
		}

		switch decision {
		case DecisionReal, DecisionNotSecret:
			isSecret := decision == DecisionReal
			secret.IsSecret = &isSecret
			if err := s.persist(collection); err != nil {
				return err
			}
		case DecisionBack:
			it.StepBackOnNextIteration()
		case DecisionQuit:
			_, _ = fmt.Fprintln(w, "Quitting...")
			return nil
		case DecisionSkip:
		}
	}

	s.renderer.Success("Audit complete")
	return nil
}

// persist writes the labeled collection back to the baseline file.
func (s *Session) persist(c *baseline.Collection) error {
	updated := baseline.New(c, s.base.Plugins, s.base.Filters)
	updated.GeneratedAt = s.base.GeneratedAt
	if err := updated.Save(s.path); err != nil {
		return fmt.Errorf("failed to save audit progress: %w", err)
	}
	return nil
}

// CountPending returns how many findings remain unaudited, for callers that
// want a summary without an interactive session.
func CountPending(b *baseline.Baseline) int {
	n := 0
	for _, secrets := range b.Results {
		for _, secret := range secrets {
			if !secret.Audited() {
				n++
			}
		}
	}
	return n
}

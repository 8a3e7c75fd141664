package audit

import (
	"fmt"
	"path/filepath"

	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/pkg/baseline"
)

// loadDiff loads both baselines and computes their diff. Stored filenames
// are relative to the directory each baseline lives in, so each side is
// trimmed against its own root; the returned roots resolve snippet reads.
func loadDiff(oldPath, newPath string) (entries []baseline.DiffEntry, oldRoot, newRoot string, err error) {
	oldAbs, _ := filepath.Abs(oldPath)
	newAbs, _ := filepath.Abs(newPath)
	if oldAbs == newAbs {
		return nil, "", "", baseline.ErrSameFile
	}

	oldBase, err := baseline.Load(oldPath)
	if err != nil {
		return nil, "", "", err
	}
	newBase, err := baseline.Load(newPath)
	if err != nil {
		return nil, "", "", err
	}

	oldRoot = filepath.Dir(oldAbs)
	newRoot = filepath.Dir(newAbs)

	oldCollection := oldBase.Collection()
	newCollection := newBase.Collection()

	// Files may have been deleted since either scan; keep the comparison to
	// what is still on disk so snippets can be shown.
	oldCollection.Trim(oldRoot)
	newCollection.Trim(newRoot)

	entries, err = baseline.Compare(oldCollection, newCollection)
	if err != nil {
		return nil, "", "", err
	}
	return entries, oldRoot, newRoot, nil
}

// CompareBaselines walks the differences between two baseline files side by
// side. Both baselines must come from the same codebase snapshot; entries
// are only ever shown as added or removed.
func CompareBaselines(oldPath, newPath string, r *output.Renderer) error {
	entries, oldRoot, newRoot, err := loadDiff(oldPath, newPath)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		r.Success("Baselines are identical")
		return nil
	}

	prompt, err := newPrompter("")
	if err != nil {
		return err
	}
	defer func() { _ = prompt.Close() }()

	w := r.Out()
	styles := r.Styles()

	it := NewIterator(entries)
	for {
		entry, ok := it.Next()
		if !ok {
			break
		}

		secret := entry.Secret()
		root := oldRoot
		status := styles.Removed.Render(">> REMOVED <<")
		if entry.Added() {
			root = newRoot
			status = styles.Added.Render(">> ADDED <<")
		}

		ctx := SecretContext{
			CurrentIndex: it.Index() + 1,
			Total:        it.Len(),
			Secret:       secret,
			Header:       fmt.Sprintf("%s      %s", styles.Bold.Render("Status:"), status),
		}
		if _, err := RawSecretFromFile(root, secret); err != nil {
			ctx.Err = err
		} else {
			ctx.Snippet, _ = ReadSnippet(resolvePath(root, secret.Filename), secret.LineNumber)
		}
		_, _ = fmt.Fprintln(w)
		printContext(w, styles, ctx)

		decision, err := prompt.decide(false, it.CanStepBack())
		if err != nil {
			return err
		}
		switch decision {
		case DecisionBack:
			it.StepBackOnNextIteration()
		case DecisionQuit:
			_, _ = fmt.Fprintln(w, "Quitting...")
			return nil
		default:
		}
	}
	return nil
}

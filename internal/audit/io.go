package audit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/pkg/baseline"
)

// Decision is an operator's answer at an audit prompt.
type Decision int

// Possible decisions. Labeling answers (Real/NotSecret) are only offered
// while auditing; compare mode navigates without labeling.
const (
	DecisionSkip Decision = iota
	DecisionReal
	DecisionNotSecret
	DecisionBack
	DecisionQuit
)

// SecretContext is everything shown for one finding.
type SecretContext struct {
	CurrentIndex int
	Total        int
	Secret       *baseline.PotentialSecret
	Header       string
	Snippet      *Snippet
	Err          error
}

// printContext renders one finding to the terminal.
func printContext(w io.Writer, styles *output.Styles, ctx SecretContext) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		styles.Bold.Render(fmt.Sprintf("Secret %d of %d", ctx.CurrentIndex, ctx.Total)),
		styles.Muted.Render(fmt.Sprintf("(%s)", ctx.Secret.Type)),
	)
	if ctx.Header != "" {
		_, _ = fmt.Fprintln(w, ctx.Header)
	}
	_, _ = fmt.Fprintf(w, "%s %s:%d\n",
		styles.Muted.Render("Location:"),
		styles.FilePath.Render(ctx.Secret.Filename),
		ctx.Secret.LineNumber,
	)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
	if ctx.Err != nil {
		_, _ = fmt.Fprintln(w, styles.Error.Render(ctx.Err.Error()))
	} else if ctx.Snippet != nil {
		_, _ = fmt.Fprint(w, ctx.Snippet.Render(styles))
	}
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))
}

// prompter reads audit decisions from the terminal.
type prompter struct {
	rl *readline.Instance
}

func newPrompter(prompt string) (*prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %w", err)
	}
	return &prompter{rl: rl}, nil
}

func (p *prompter) Close() error { return p.rl.Close() }

// decide prompts until it gets a valid answer. withLabels controls whether
// y/n labeling answers are accepted; canStepBack whether b is offered.
func (p *prompter) decide(withLabels, canStepBack bool) (Decision, error) {
	options := "s"
	if withLabels {
		options = "y/n/" + options
	}
	if canStepBack {
		options += "/b"
	}
	options += "/q"
	p.rl.SetPrompt(fmt.Sprintf("Decision [%s]: ", options))

	for {
		line, err := p.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return DecisionQuit, nil
		}
		if err != nil {
			return DecisionQuit, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			if withLabels {
				return DecisionReal, nil
			}
		case "n", "no":
			if withLabels {
				return DecisionNotSecret, nil
			}
		case "s", "skip", "":
			return DecisionSkip, nil
		case "b", "back":
			if canStepBack {
				return DecisionBack, nil
			}
		case "q", "quit":
			return DecisionQuit, nil
		}
		// Anything else: re-prompt.
	}
}

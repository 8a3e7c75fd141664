package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int    // Maximum runs to show
	Format string // Output format
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scan runs",
		Long: `Show recent scan runs recorded in the local state database, newest
first, with file and finding counts per run.`,
		Example: `  # Last 20 runs
  secretsift history

  # Last 5 runs as JSON
  secretsift history --limit 5 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum runs to show")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// HistoryJSONOutput is the JSON output for the history command.
type HistoryJSONOutput struct {
	Runs  []*state.ScanRun `json:"runs"`
	Count int              `json:"count"`
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	runs, err := cmdCtx.Store.ListScanRuns(opts.Limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(HistoryJSONOutput{Runs: runs, Count: len(runs)})
	}

	if len(runs) == 0 {
		r.Println("No scan runs recorded yet")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Started", "Duration", "Files", "Findings", "New", "Baseline"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond),
			run.FilesScanned,
			run.SecretsFound,
			run.NewSecrets,
			run.BaselinePath,
		})
	}
	t.Render()
	return nil
}

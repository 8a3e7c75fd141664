package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/audit"
	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/pkg/baseline"
	_ "github.com/stillwater-labs/secretsift/pkg/detect/detectors" // register detectors for raw secret lookup
)

// AuditOptions holds options for the audit command.
type AuditOptions struct {
	Baseline       string // Baseline to audit, defaults to the configured path
	Stats          bool   // Print per-detector precision instead of auditing
	Report         bool   // Emit a JSON report instead of auditing
	Class          string // Report class: all, real, false, unaudited
	IncludeAudited bool   // Re-present already labeled findings
	Format         string // Output format override
}

// NewAuditCommand creates the audit command.
func NewAuditCommand() *cobra.Command {
	opts := &AuditOptions{}
	cmd := &cobra.Command{
		Use:   "audit [baseline]",
		Short: "Label baseline findings as real or false positives",
		Long: `Walk through baseline findings one at a time and label each as a real
secret or a false positive. Progress is saved after every answer, so an
interrupted audit can be resumed.

With --stats, prints per-detector precision computed from existing labels.
With --report, emits a machine-readable report of the labeled findings.`,
		Example: `  # Audit the configured baseline
  secretsift audit

  # Audit a specific baseline file
  secretsift audit ci/.secretsift.baseline

  # Re-check findings that were already labeled
  secretsift audit --include-audited

  # Precision per detector
  secretsift audit --stats

  # Everything still confirmed as a real secret
  secretsift audit --report --class real`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Baseline = args[0]
			}
			return runAudit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "Print per-detector audit statistics")
	cmd.Flags().BoolVar(&opts.Report, "report", false, "Emit a JSON audit report")
	cmd.Flags().StringVar(&opts.Class, "class", "all", "Report class: all, real, false, unaudited")
	cmd.Flags().BoolVar(&opts.IncludeAudited, "include-audited", false, "Re-present findings that already have a label")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

func runAudit(cmd *cobra.Command, opts *AuditOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	path := opts.Baseline
	if path == "" {
		path = cmdCtx.Cfg.BaselinePath
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no baseline at %s; run `secretsift scan` first", path)
	}

	switch {
	case opts.Stats:
		return auditStats(r, path)
	case opts.Report:
		return auditReport(r, path, audit.SecretClass(opts.Class))
	}

	session, err := audit.NewSession(path, r, audit.Options{IncludeAudited: opts.IncludeAudited})
	if err != nil {
		return err
	}
	return session.Run()
}

func auditStats(r *output.Renderer, path string) error {
	b, err := baseline.Load(path)
	if err != nil {
		return err
	}
	stats := audit.ComputeStats(b)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(stats)
	}
	if len(stats) == 0 {
		r.Success("Baseline is empty")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Detector", "Total", "Real", "False", "Unaudited", "Precision"})
	for _, s := range stats {
		precision := "-"
		if s.Real+s.False > 0 {
			precision = fmt.Sprintf("%.0f%%", s.Precision*100)
		}
		t.AppendRow(table.Row{s.Type, s.Total, s.Real, s.False, s.Unaudited, precision})
	}
	t.Render()

	if pending := audit.CountPending(b); pending > 0 {
		r.Printf("%d findings still need auditing\n", pending)
	}
	return nil
}

func auditReport(r *output.Renderer, path string, class audit.SecretClass) error {
	switch class {
	case audit.ClassAll, audit.ClassReal, audit.ClassFalse, audit.ClassUnaudited:
	default:
		return fmt.Errorf("unknown class %q (want all, real, false, or unaudited)", class)
	}

	b, err := baseline.Load(path)
	if err != nil {
		return err
	}
	return r.JSON(audit.GenerateReport(path, b, class))
}

package commands

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/cli/config"
	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/internal/scan"
	"github.com/stillwater-labs/secretsift/internal/state"
	"github.com/stillwater-labs/secretsift/pkg/baseline"
	"github.com/stillwater-labs/secretsift/pkg/detect"
	_ "github.com/stillwater-labs/secretsift/pkg/detect/detectors" // register detectors
	"github.com/stillwater-labs/secretsift/pkg/filter"
)

// ScanOptions holds options for the scan command.
type ScanOptions struct {
	Path          string   // Directory or file to scan
	AllFiles      bool     // Scan all files, not just git-tracked ones
	Workers       int      // Concurrent scan workers
	Format        string   // Output format: text, json
	Watch         bool     // Re-scan on file changes
	NoFailOnNew   bool     // Exit zero even when new secrets appear
	DisablePlugin []string // Detector types to disable
	ExcludeFiles  []string // Additional file exclude patterns
	ExcludeLines  []string // Additional line exclude patterns
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	opts := &ScanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan for secrets and write a baseline",
		Long: `Scan a source tree for secrets and record findings in the baseline file.

Inside a git repository only tracked files are scanned unless --all-files
is given. When the baseline already exists, audit labels are carried over
for findings that survive the re-scan, and the scan exits non-zero when it
finds secrets the baseline did not know about. A plain re-scan therefore
works as a CI gate; pass --no-fail-on-new to update the baseline without
failing the build.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Scan the current project
  secretsift scan

  # Scan everything, including untracked files
  secretsift scan --all-files

  # Accept new findings into the baseline without failing
  secretsift scan --no-fail-on-new

  # Keep scanning as files change
  secretsift scan --watch

  # Disable a noisy detector
  secretsift scan --disable-plugin KeywordDetector`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runScan(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.AllFiles, "all-files", false, "Scan all files, not only git-tracked ones")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent scan workers (default: GOMAXPROCS)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-scan when files change")
	cmd.Flags().BoolVar(&opts.NoFailOnNew, "no-fail-on-new", false, "Exit zero even when new secrets appear against an existing baseline")
	cmd.Flags().StringSliceVar(&opts.DisablePlugin, "disable-plugin", nil, "Detector types to disable")
	cmd.Flags().StringSliceVar(&opts.ExcludeFiles, "exclude-files", nil, "Regex patterns of files to skip")
	cmd.Flags().StringSliceVar(&opts.ExcludeLines, "exclude-lines", nil, "Regex patterns of lines to skip")

	return cmd
}

func runScan(cmd *cobra.Command, opts *ScanOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	scanner, detectors, filters, err := buildScanner(cmdCtx.Cfg, cmdCtx, opts)
	if err != nil {
		return err
	}

	// The CI gate only applies to re-scans; the first scan of a project is
	// expected to find secrets and just records them.
	_, statErr := os.Stat(cmdCtx.Cfg.BaselinePath)
	hadBaseline := statErr == nil

	runOnce := func() (int, error) {
		return executeScan(cmd, cmdCtx, r, scanner, detectors, filters, opts)
	}

	newSecrets, err := runOnce()
	if err != nil {
		return err
	}

	if opts.Watch {
		root := scanRoot(cmdCtx.Cfg, opts)
		r.Println("Watching for changes... (Ctrl-C to stop)")
		return scan.Watch(cmd.Context(), root, cmdCtx.Logger, func() {
			if _, err := runOnce(); err != nil {
				r.Error(err.Error())
			}
		})
	}

	if hadBaseline && !opts.NoFailOnNew && newSecrets > 0 {
		return fmt.Errorf("%d new potential secrets found; audit the baseline", newSecrets)
	}
	return nil
}

func scanRoot(cfg *config.Config, opts *ScanOptions) string {
	if opts.Path != "" {
		return opts.Path
	}
	if cfg.ProjectRoot != "" {
		return cfg.ProjectRoot
	}
	return "."
}

// buildScanner resolves the detector set and filter chain from config plus
// CLI overrides and constructs the scanner.
func buildScanner(cfg *config.Config, cmdCtx *CommandContext, opts *ScanOptions) (*scan.Scanner, []detect.Detector, []filter.Filter, error) {
	settings := detect.Settings{
		Disabled:       append(append([]string{}, cfg.Detect.Disabled...), opts.DisablePlugin...),
		Base64Limit:    cfg.Detect.Base64Limit,
		HexLimit:       cfg.Detect.HexLimit,
		KeywordExclude: cfg.Detect.KeywordExclude,
	}
	detectors, err := settings.Build()
	if err != nil {
		return nil, nil, nil, err
	}

	fileExcludes, err := filter.NewFileExcludes(append(append([]string{}, cfg.Exclude.Files...), opts.ExcludeFiles...))
	if err != nil {
		return nil, nil, nil, err
	}

	var extra []filter.Filter
	linePatterns := append(append([]string{}, cfg.Exclude.Lines...), opts.ExcludeLines...)
	if len(linePatterns) > 0 {
		lineExcludes, err := filter.NewLineExcludes(linePatterns)
		if err != nil {
			return nil, nil, nil, err
		}
		extra = append(extra, lineExcludes)
	}
	filters := filter.Active(cfg.Filters.Disabled, extra...)

	workers := opts.Workers
	if workers == 0 {
		workers = cfg.Workers
	}
	allFiles := opts.AllFiles || cfg.AllFiles

	scanner, err := scan.New(scan.Options{
		Root:      scanRoot(cfg, opts),
		AllFiles:  allFiles,
		Workers:   workers,
		Detectors: detectors,
		Filters:   filters,
		Excludes:  fileExcludes,
		Logger:    cmdCtx.Logger,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return scanner, detectors, filters, nil
}

// executeScan runs one scan, persists the baseline and history, and renders
// the summary. Returns the number of findings absent from the old baseline.
func executeScan(cmd *cobra.Command, cmdCtx *CommandContext, r *output.Renderer,
	scanner *scan.Scanner, detectors []detect.Detector, filters []filter.Filter,
	opts *ScanOptions) (int, error) {

	startedAt := time.Now()
	collection, stats, err := scanner.Scan(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("scan failed: %w", err)
	}

	baselinePath := cmdCtx.Cfg.BaselinePath

	// Carry audit labels over from any existing baseline.
	newSecrets := collection.Len()
	if _, statErr := os.Stat(baselinePath); statErr == nil {
		old, loadErr := baseline.Load(baselinePath)
		if loadErr != nil {
			return 0, fmt.Errorf("existing baseline is unreadable: %w", loadErr)
		}
		newSecrets = collection.MergeLabels(old.Collection())
	}

	b := baseline.New(collection, detect.PluginUsage(detectors), filter.Usage(filters))
	if err := b.Save(baselinePath); err != nil {
		return 0, err
	}

	if err := recordRun(cmdCtx.Store, startedAt, baselinePath, stats, collection, newSecrets); err != nil {
		cmdCtx.Logger.Warn("failed to record scan history", "error", err)
	}

	renderScanSummary(r, baselinePath, stats, collection, newSecrets)
	return newSecrets, nil
}

func recordRun(store state.Store, startedAt time.Time, baselinePath string,
	stats scan.Stats, collection *baseline.Collection, newSecrets int) error {

	run := &state.ScanRun{
		StartedAt:    startedAt,
		CompletedAt:  time.Now(),
		BaselinePath: baselinePath,
		FilesScanned: stats.FilesScanned,
		SecretsFound: stats.SecretsFound,
		NewSecrets:   newSecrets,
	}
	var counts []state.DetectorCount
	for detectorType, count := range collection.CountByType() {
		counts = append(counts, state.DetectorCount{Type: detectorType, Count: count})
	}
	return store.SaveScanRun(run, counts)
}

// ScanOutput is the JSON output for the scan command.
type ScanOutput struct {
	Baseline     string         `json:"baseline"`
	FilesScanned int            `json:"files_scanned"`
	SecretsFound int            `json:"secrets_found"`
	NewSecrets   int            `json:"new_secrets"`
	ElapsedMS    int64          `json:"elapsed_ms"`
	ByType       map[string]int `json:"by_type"`
}

func renderScanSummary(r *output.Renderer, baselinePath string, stats scan.Stats,
	collection *baseline.Collection, newSecrets int) {

	byType := collection.CountByType()

	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(ScanOutput{
			Baseline:     baselinePath,
			FilesScanned: stats.FilesScanned,
			SecretsFound: stats.SecretsFound,
			NewSecrets:   newSecrets,
			ElapsedMS:    stats.Elapsed.Milliseconds(),
			ByType:       byType,
		})
		return
	}

	r.Printf("Scanned %d files in %s\n", stats.FilesScanned, stats.Elapsed.Round(time.Millisecond))

	if stats.SecretsFound == 0 {
		r.Success("No secrets found")
		r.Printf("Baseline written to %s\n", baselinePath)
		return
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Detector", "Findings"})
	for _, detectorType := range types {
		t.AppendRow(table.Row{detectorType, byType[detectorType]})
	}
	t.AppendFooter(table.Row{"Total", stats.SecretsFound})
	t.Render()

	if newSecrets > 0 {
		r.Println(r.Styles().Warning.Render(fmt.Sprintf("%d findings are new since the last baseline", newSecrets)))
	}
	r.Printf("Baseline written to %s\n", baselinePath)
}

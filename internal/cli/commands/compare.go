package commands

import (
	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/audit"
	_ "github.com/stillwater-labs/secretsift/pkg/detect/detectors" // register detectors for raw secret lookup
)

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <old-baseline> <new-baseline>",
		Short: "Review findings that differ between two baselines",
		Long: `Walk through the findings that appear in only one of two baseline files,
for example after loosening a detector setting, and label the ones worth
keeping. Findings present in both baselines are skipped.`,
		Example: `  # What changed after tuning entropy limits?
  secretsift compare .secretsift.baseline .secretsift.baseline.new`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutStore(cmd)
			return audit.CompareBaselines(args[0], args[1], cmdCtx.Renderer)
		},
	}
}

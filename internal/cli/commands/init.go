package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/cli/config"
)

const configTemplate = `# secretsift configuration
# All keys are optional; shown values are the defaults.

baseline_path: .secretsift.baseline
state_path: .secretsift/state.db

# Output format: auto, text, markdown, json
output: auto

# Concurrent scan workers. 0 means one per CPU.
workers: 0

# Scan all files instead of only git-tracked ones.
all_files: false

exclude:
  # Regex patterns of file paths to skip.
  files: []
  #  - "testdata/.*"
  #  - ".*\\.min\\.js$"

  # Regex patterns of lines to skip.
  lines: []
  #  - "integrity=.*"

detect:
  # Detector types to disable. See 'secretsift plugins'.
  disabled: []

  # Shannon entropy limits for the entropy detector.
  base64_limit: 4.5
  hex_limit: 3.0

  # Regex of keyword values to ignore, e.g. placeholders.
  keyword_exclude: ""

filters:
  # Filter names to disable. See 'secretsift plugins --type filter'.
  disabled: []
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter configuration file",
		Long: `Write a commented .secretsift.yaml configuration file with every option
listed at its default value.`,
		Example: `  # Initialize in the current directory
  secretsift init

  # Initialize a new directory
  secretsift init my-project

  # Overwrite an existing config
  secretsift init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cmdCtx := NewCommandContextWithoutStore(cmd)
			r := cmdCtx.Renderer

			if dir != "." {
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			configPath := filepath.Join(dir, config.DefaultConfigFile)
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists. Use --force to overwrite", config.DefaultConfigFile)
			}

			if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			r.StatusLine(configPath, "success", "")

			r.Println("")
			r.Success("Configuration written!")
			r.Println("")
			r.Println("Next steps:")
			r.Println("  1. Adjust excludes and detector settings in " + config.DefaultConfigFile)
			r.Println("  2. Run 'secretsift scan' to build the baseline")
			r.Println("  3. Run 'secretsift audit' to label the findings")

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

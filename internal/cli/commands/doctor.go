package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/audit"
	"github.com/stillwater-labs/secretsift/internal/cli/config"
	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/internal/state"
	"github.com/stillwater-labs/secretsift/pkg/baseline"
	"github.com/stillwater-labs/secretsift/pkg/detect"
	_ "github.com/stillwater-labs/secretsift/pkg/detect/detectors" // register detectors
	"github.com/stillwater-labs/secretsift/pkg/filter"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the scanning setup for problems",
		Long: `Check the project setup: configuration, baseline health, git
availability, the state database, and the plugin registry.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run the checks
  secretsift doctor

  # Output as JSON
  secretsift doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorCheck is a single check result.
type DoctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pass", "warn", "fail"
	Detail string `json:"detail,omitempty"`
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks  []DoctorCheck `json:"checks"`
	Healthy bool          `json:"healthy"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	cfg := cmdCtx.Cfg

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	out := DoctorOutput{Healthy: true}
	add := func(c DoctorCheck) {
		if c.Status == "fail" {
			out.Healthy = false
		}
		out.Checks = append(out.Checks, c)
	}

	add(checkConfig())
	add(checkBaseline(cfg.BaselinePath))
	add(checkGit())
	add(checkStore(cfg))
	add(checkRegistry())

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Println("")
	r.Header(1, "Environment Checks")
	r.Println("")
	for _, c := range out.Checks {
		r.StatusLine(c.Name, c.Status, c.Detail)
	}
	r.Println("")
	if out.Healthy {
		r.Success("Everything looks good")
	} else {
		return fmt.Errorf("some checks failed")
	}
	return nil
}

func checkConfig() DoctorCheck {
	path := config.GetConfigFileUsed()
	if path == "" {
		return DoctorCheck{Name: "config", Status: "warn", Detail: "no config file found, using defaults"}
	}
	return DoctorCheck{Name: "config", Status: "pass", Detail: path}
}

func checkBaseline(path string) DoctorCheck {
	if _, err := os.Stat(path); err != nil {
		return DoctorCheck{Name: "baseline", Status: "warn", Detail: "no baseline yet, run `secretsift scan`"}
	}
	b, err := baseline.Load(path)
	if err != nil {
		return DoctorCheck{Name: "baseline", Status: "fail", Detail: err.Error()}
	}
	if pending := audit.CountPending(b); pending > 0 {
		return DoctorCheck{
			Name:   "baseline",
			Status: "warn",
			Detail: fmt.Sprintf("%d of %d findings unaudited", pending, b.SecretCount()),
		}
	}
	return DoctorCheck{Name: "baseline", Status: "pass", Detail: fmt.Sprintf("%d findings, all audited", b.SecretCount())}
}

func checkGit() DoctorCheck {
	if _, err := exec.LookPath("git"); err != nil {
		return DoctorCheck{Name: "git", Status: "warn", Detail: "git not found, every scan uses --all-files behavior"}
	}
	return DoctorCheck{Name: "git", Status: "pass", Detail: "available"}
}

func checkStore(cfg *config.Config) DoctorCheck {
	store, err := openStore(cfg)
	if err != nil {
		return DoctorCheck{Name: "state", Status: "fail", Detail: err.Error()}
	}
	defer func() { _ = store.Close() }()

	version, err := migrationVersionOf(store)
	if err != nil {
		return DoctorCheck{Name: "state", Status: "fail", Detail: err.Error()}
	}
	return DoctorCheck{Name: "state", Status: "pass", Detail: fmt.Sprintf("%s (schema v%d)", cfg.StatePath, version)}
}

func migrationVersionOf(store state.Store) (int64, error) {
	s, ok := store.(*state.SQLiteStore)
	if !ok {
		return 0, nil
	}
	return s.MigrationVersion()
}

func checkRegistry() DoctorCheck {
	detectors := detect.Count()
	filters := len(filter.All())
	if detectors == 0 {
		return DoctorCheck{Name: "plugins", Status: "fail", Detail: "no detectors registered"}
	}
	return DoctorCheck{Name: "plugins", Status: "pass", Detail: fmt.Sprintf("%d detectors, %d filters", detectors, filters)}
}

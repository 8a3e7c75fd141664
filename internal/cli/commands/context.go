package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/cli/config"
	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Store    state.Store
}

// NewCommandContext creates a CommandContext with an opened state store.
// Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	store, err := openStore(cmdCtx.Cfg)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Store = store

	cleanup := func() {
		_ = store.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without touching
// the state database. Useful for commands that only read baselines.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to environment
// variables when no config was loaded (e.g. in tests that call commands
// directly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		ProjectRoot:  ".",
		BaselinePath: getEnvOrDefault("SECRETSIFT_BASELINE_PATH", config.DefaultBaselineFile),
		StatePath:    getEnvOrDefault("SECRETSIFT_STATE_PATH", config.DefaultStateFile),
		Verbose:      os.Getenv("SECRETSIFT_VERBOSE") == "true",
		OutputFormat: os.Getenv("SECRETSIFT_OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens (and migrates) the scan history database.
func openStore(cfg *config.Config) (state.Store, error) {
	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stillwater-labs/secretsift/internal/cli/output"
	"github.com/stillwater-labs/secretsift/pkg/detect"
	_ "github.com/stillwater-labs/secretsift/pkg/detect/detectors" // register detectors
	"github.com/stillwater-labs/secretsift/pkg/filter"
)

// PluginsOptions holds options for the plugins command.
type PluginsOptions struct {
	Type   string // Filter by kind: detector, filter
	Format string // Output format
}

// NewPluginsCommand creates the plugins command.
func NewPluginsCommand() *cobra.Command {
	opts := &PluginsOptions{}
	cmd := &cobra.Command{
		Use:   "plugins [name]",
		Short: "List available detectors and filters",
		Long: `List every registered secret detector and false-positive filter.

Detectors produce candidate findings; filters suppress candidates that are
almost certainly noise. Both can be disabled per project in the config file.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all plugins
  secretsift plugins

  # Show details for one detector
  secretsift plugins Base64HighEntropyString

  # Detectors only
  secretsift plugins --type detector

  # Output as JSON
  secretsift plugins --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showPlugin(cmd, args[0], opts)
			}
			return listPlugins(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by kind: detector, filter")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// PluginInfo describes one detector or filter for listings.
type PluginInfo struct {
	Kind        string         `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// PluginsJSONOutput is the JSON output structure for the plugins listing.
type PluginsJSONOutput struct {
	Plugins []PluginInfo `json:"plugins"`
	Count   struct {
		Detectors int `json:"detectors"`
		Filters   int `json:"filters"`
		Total     int `json:"total"`
	} `json:"count"`
}

func collectPlugins(kind string) []PluginInfo {
	var plugins []PluginInfo
	if kind == "" || kind == "detector" {
		for _, d := range detect.All() {
			info := detect.GetInfo(d)
			plugins = append(plugins, PluginInfo{
				Kind:        "detector",
				Name:        info.Type,
				Description: info.Description,
				Settings:    info.Settings,
			})
		}
	}
	if kind == "" || kind == "filter" {
		for _, f := range filter.All() {
			plugins = append(plugins, PluginInfo{
				Kind:        "filter",
				Name:        f.Name(),
				Description: f.Description(),
			})
		}
	}
	sort.Slice(plugins, func(i, j int) bool {
		if plugins[i].Kind != plugins[j].Kind {
			return plugins[i].Kind < plugins[j].Kind
		}
		return plugins[i].Name < plugins[j].Name
	})
	return plugins
}

func listPlugins(cmd *cobra.Command, opts *PluginsOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if opts.Type != "" && opts.Type != "detector" && opts.Type != "filter" {
		return fmt.Errorf("unknown plugin type %q (want detector or filter)", opts.Type)
	}
	plugins := collectPlugins(opts.Type)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listPluginsJSON(r, plugins)
	case output.ModeMarkdown:
		return listPluginsMarkdown(r, plugins)
	default:
		return listPluginsText(r, plugins)
	}
}

func listPluginsText(r *output.Renderer, plugins []PluginInfo) error {
	styles := r.Styles()

	detectors, filters := 0, 0
	for _, p := range plugins {
		if p.Kind == "detector" {
			detectors++
		} else {
			filters++
		}
	}

	r.Println("")
	r.Header(1, fmt.Sprintf("Plugins (%d detectors, %d filters)", detectors, filters))
	r.Println("")

	currentKind := ""
	for _, p := range plugins {
		if p.Kind != currentKind {
			currentKind = p.Kind
			label := "Detectors"
			if currentKind == "filter" {
				label = "Filters"
			}
			r.Println(styles.Bold.Render("  " + label))
		}
		r.Printf("    %s  %s\n", styles.Info.Render(p.Name), styles.Muted.Render(p.Description))
		for _, key := range sortedKeys(p.Settings) {
			r.Println(styles.Muted.Render(fmt.Sprintf("      %s: %v", key, p.Settings[key])))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'secretsift plugins <name>' for details"))
	r.Println("")
	return nil
}

func listPluginsMarkdown(r *output.Renderer, plugins []PluginInfo) error {
	r.Println("# Plugins")
	r.Println("")

	currentKind := ""
	for _, p := range plugins {
		if p.Kind != currentKind {
			currentKind = p.Kind
			label := "Detectors"
			if currentKind == "filter" {
				label = "Filters"
			}
			r.Println("## " + label)
			r.Println("")
		}
		r.Printf("- **%s** - %s\n", p.Name, p.Description)
	}

	r.Println("")
	return nil
}

func listPluginsJSON(r *output.Renderer, plugins []PluginInfo) error {
	out := PluginsJSONOutput{Plugins: plugins}
	for _, p := range plugins {
		if p.Kind == "detector" {
			out.Count.Detectors++
		} else {
			out.Count.Filters++
		}
	}
	out.Count.Total = len(plugins)
	return r.JSON(out)
}

func showPlugin(cmd *cobra.Command, name string, opts *PluginsOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	var found *PluginInfo
	for _, p := range collectPlugins("") {
		if p.Name == name {
			found = &p
			break
		}
	}
	if found == nil {
		return fmt.Errorf("plugin %q not found", name)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(found)
	case output.ModeMarkdown:
		r.Printf("# %s\n\n", found.Name)
		r.Printf("**Kind:** %s\n\n", found.Kind)
		r.Println(found.Description)
		for _, key := range sortedKeys(found.Settings) {
			r.Printf("- `%s`: %v\n", key, found.Settings[key])
		}
		return nil
	default:
		styles := r.Styles()
		r.Println("")
		r.Header(1, found.Name)
		r.Printf("  %s: %s\n", styles.Bold.Render("Kind"), found.Kind)
		r.Println("")
		r.Println("  " + found.Description)
		if len(found.Settings) > 0 {
			r.Println("")
			r.Println(styles.Bold.Render("  Settings"))
			for _, key := range sortedKeys(found.Settings) {
				r.Printf("    %s: %v\n", key, found.Settings[key])
			}
		}
		r.Println("")
		return nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

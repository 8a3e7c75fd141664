package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles shared by all commands.
type Styles struct {
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	FilePath lipgloss.Style
	Added    lipgloss.Style
	Removed  lipgloss.Style
}

// newStyles builds the style set. When color is off every style renders
// plain text, so piped output stays free of escape codes.
func newStyles(color bool) *Styles {
	if !color || termenv.EnvColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return &Styles{
			Bold: plain, Muted: plain, Error: plain, Warning: plain,
			Info: plain, Success: plain, FilePath: plain,
			Added: plain, Removed: plain,
		}
	}
	return &Styles{
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		FilePath: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Added:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Removed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

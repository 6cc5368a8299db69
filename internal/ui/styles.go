package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors for the stage labels.
var (
	ColorPrompt  = lipgloss.Color("11") // Bright yellow
	ColorPlanner = lipgloss.Color("14") // Bright cyan
	ColorExec    = lipgloss.Color("10") // Bright green
	ColorFinal   = lipgloss.Color("13") // Bright magenta
	ColorError   = lipgloss.Color("9")  // Bright red
	ColorWarning = lipgloss.Color("#D97706")
)

// Styles holds the lipgloss styles used by the Printer.
type Styles struct {
	Prompt     lipgloss.Style
	Planner    lipgloss.Style
	ExecLabel  lipgloss.Style
	Dim        lipgloss.Style
	FinalLabel lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
}

// NewStyles creates styles bound to r so color output follows the
// destination rather than os.Stdout.
func NewStyles(r *lipgloss.Renderer) *Styles {
	// Command output is shown as-is, tabs included.
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return &Styles{
		Prompt:     base.Foreground(ColorPrompt).Bold(true),
		Planner:    base.Foreground(ColorPlanner),
		ExecLabel:  base.Foreground(ColorExec),
		Dim:        base.Faint(true),
		FinalLabel: base.Foreground(ColorFinal).Bold(true),
		Error:      base.Foreground(ColorError).Bold(true),
		Warning:    base.Foreground(ColorWarning),
	}
}

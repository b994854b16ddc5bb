package browse

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the browser.
type Theme struct {
	Crumb     lipgloss.Style
	Row       lipgloss.Style
	Highlight lipgloss.Style
	Panel     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Crumb:     lipgloss.NewStyle().Bold(true),
		Row:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

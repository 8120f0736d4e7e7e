package tui

import "github.com/charmbracelet/lipgloss"

// Palette: amber accents for titles, slate for chrome.
const (
	colorAccent = lipgloss.Color("214")
	colorBorder = lipgloss.Color("60")
	colorMuted  = lipgloss.Color("245")
)

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Subtitle: lipgloss.NewStyle().Foreground(colorMuted),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder),
	}
}

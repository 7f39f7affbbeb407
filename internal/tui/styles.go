package tui

import (
	"github.com/charmbracelet/lipgloss"

	"ebb/internal/config"
)

// Styles carries every lipgloss style the list view uses, built once from
// the configured colors.
type Styles struct {
	Border   lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Time     lipgloss.Style
}

func NewStyles(cfg *config.Config) Styles {
	c := cfg.UI.Colors
	return Styles{
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.FeedTitle)).
			Bold(true),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Text)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Selected)).
			Background(lipgloss.Color(c.Text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Muted)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)).
			Bold(true),
		Time: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Muted)),
	}
}

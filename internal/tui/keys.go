package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"ebb/internal/config"
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Open     key.Binding
	MarkRead key.Binding
	Search   key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

func newKeyMap(cfg *config.Config) keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "j", "n"),
			key.WithHelp("↓/j/n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "k", "p"),
			key.WithHelp("↑/k/p", "prev"),
		),
		Open: key.NewBinding(
			key.WithKeys(cfg.Keys.Open),
			key.WithHelp(cfg.Keys.Open, "open"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys(cfg.Keys.MarkRead),
			key.WithHelp(cfg.Keys.MarkRead, "mark read"),
		),
		Search: key.NewBinding(
			key.WithKeys(cfg.Keys.Search),
			key.WithHelp(cfg.Keys.Search, "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Quit: key.NewBinding(
			key.WithKeys(cfg.Keys.Quit, "ctrl+c"),
			key.WithHelp(cfg.Keys.Quit, "quit"),
		),
	}
}

// ShortHelp satisfies help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Open, k.MarkRead, k.Search, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Open, k.MarkRead},
		{k.Search, k.Clear, k.Quit},
	}
}

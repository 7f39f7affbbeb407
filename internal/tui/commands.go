package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ebb/internal/feed"
	"ebb/internal/fetch"
)

type fetchDoneMsg struct {
	results []fetch.Result
	items   []feed.Item
}

type openFinishedMsg struct {
	err error
}

type errorMsg struct {
	err error
}

// fetchAll runs the whole batch to completion off the UI goroutine. The
// list only appears once every source has resolved.
func (a *App) fetchAll() tea.Cmd {
	return func() tea.Msg {
		results := a.orchestrator.FetchAll(context.Background(), a.sources)
		items := feed.Merge(fetch.Feeds(results))
		return fetchDoneMsg{results: results, items: items}
	}
}

// openEntry hands the terminal to the opener subprocess and blocks the
// event loop until it exits.
func (a *App) openEntry(link string) tea.Cmd {
	cmd, err := a.launcher.Command(link)
	if err != nil {
		return func() tea.Msg { return errorMsg{err: err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return openFinishedMsg{err: err}
	})
}

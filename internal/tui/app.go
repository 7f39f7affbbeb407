package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ebb/internal/config"
	"ebb/internal/debuglog"
	"ebb/internal/feed"
	"ebb/internal/fetch"
	"ebb/internal/launcher"
	"ebb/internal/readstate"
	"ebb/internal/search"
)

const listTitle = "Feed Entries"

type App struct {
	config       *config.Config
	sources      []string
	orchestrator *fetch.Orchestrator
	tracker      *readstate.Tracker
	launcher     *launcher.Launcher
	engine       *search.Engine

	list        *FeedList
	keys        keyMap
	styles      Styles
	help        help.Model
	spinner     spinner.Model
	searchInput textinput.Model

	fetching  bool
	searching bool
	matches   map[string]struct{}
	failures  int
	status    string
	statusErr bool
	width     int
	height    int
}

func NewApp(cfg *config.Config, sources []string, orch *fetch.Orchestrator, tracker *readstate.Tracker) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	si := textinput.New()
	si.Placeholder = "Search entries..."
	si.Prompt = "/ "

	return &App{
		config:       cfg,
		sources:      sources,
		orchestrator: orch,
		tracker:      tracker,
		launcher:     launcher.NewLauncher(cfg),
		keys:         newKeyMap(cfg),
		styles:       NewStyles(cfg),
		help:         help.New(),
		spinner:      sp,
		searchInput:  si,
		fetching:     true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.fetchAll(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.searchInput.Width = msg.Width - 6
		return a, nil

	case spinner.TickMsg:
		if !a.fetching {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case fetchDoneMsg:
		a.fetching = false
		a.list = NewFeedList(msg.items)
		a.failures = len(fetch.Failures(msg.results))
		for _, r := range fetch.Failures(msg.results) {
			debuglog.Errorf("source %s: %v", r.Source, r.Err)
		}
		engine, err := search.NewEngine(msg.items)
		if err != nil {
			debuglog.Warnf("building search index: %v", err)
		} else {
			a.engine = engine
		}
		a.refilter()
		if a.failures > 0 {
			a.setStatus(fmt.Sprintf("%d source(s) failed", a.failures), true)
		}
		return a, nil

	case openFinishedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("open failed: %v", msg.err), true)
		}
		return a, nil

	case errorMsg:
		a.setStatus(msg.err.Error(), true)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case a.fetching:
		// Navigation waits for the join barrier.
		return a, nil

	case key.Matches(msg, a.keys.Next):
		a.list.Next()
		return a, nil

	case key.Matches(msg, a.keys.Prev):
		a.list.Prev()
		return a, nil

	case key.Matches(msg, a.keys.Open):
		item, ok := a.list.Selected()
		if !ok {
			return a, nil
		}
		if item.Link == "" {
			a.setStatus("entry has no link", true)
			return a, nil
		}
		return a, a.openEntry(item.Link)

	case key.Matches(msg, a.keys.MarkRead):
		item, ok := a.list.Selected()
		if !ok || item.Link == "" {
			return a, nil
		}
		if err := a.tracker.MarkRead(item.Link); err != nil {
			// The mark did not persist; the user needs to know.
			a.setStatus(fmt.Sprintf("mark read failed: %v", err), true)
			return a, nil
		}
		a.refilter()
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.searchInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Clear):
		if a.matches != nil {
			a.matches = nil
			a.searchInput.Reset()
			a.refilter()
			a.setStatus("", false)
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.searching = false
		a.matches = nil
		a.searchInput.Reset()
		a.searchInput.Blur()
		a.refilter()
		a.setStatus("", false)
		return a, nil
	case "enter":
		a.searching = false
		a.searchInput.Blur()
		return a, a.applySearch(a.searchInput.Value())
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) applySearch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" || a.engine == nil {
		a.matches = nil
		a.refilter()
		return nil
	}
	matches, err := a.engine.Search(query, 500)
	if err != nil {
		return func() tea.Msg { return errorMsg{err: fmt.Errorf("search: %w", err)} }
	}
	a.matches = matches
	a.refilter()
	a.setStatus(fmt.Sprintf("%d match(es) for %q", a.list.Len(), query), false)
	return nil
}

// refilter recomputes the visible list: read entries are hidden, and an
// active search restricts it further. The aggregate keeps everything.
func (a *App) refilter() {
	if a.list == nil {
		return
	}
	a.list.Refilter(func(it feed.Item) bool {
		if it.Link != "" && a.tracker.IsRead(it.Link) {
			return true
		}
		if a.matches != nil {
			if _, ok := a.matches[it.Link]; !ok {
				return true
			}
		}
		return false
	})
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a *App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.fetching {
		msg := fmt.Sprintf("%s Fetching %d feeds…", a.spinner.View(), len(a.sources))
		return lipgloss.NewStyle().
			Width(a.width).
			Height(a.height - 1).
			Align(lipgloss.Center, lipgloss.Center).
			Render(msg)
	}

	chrome := 2 // status + help
	if a.searching {
		chrome++
	}
	listHeight := a.height - chrome - 2 // border rows
	if listHeight < 3 {
		listHeight = 3
	}

	content := a.renderList(listHeight)
	box := a.styles.Border.Width(a.width - 2).Render(content)

	rows := []string{box}
	if a.searching {
		rows = append(rows, a.searchInput.View())
	}
	rows = append(rows, a.statusLine(), a.help.View(a.keys))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderList(height int) string {
	lines := []string{a.styles.Title.Render(listTitle)}
	height--

	visible := a.list.Visible()
	if len(visible) == 0 {
		lines = append(lines, a.styles.Muted.Render("No unread entries."))
		return strings.Join(lines, "\n")
	}

	// Keep the cursor inside the window.
	offset := 0
	if a.list.Cursor() >= height {
		offset = a.list.Cursor() - height + 1
	}

	for i := offset; i < len(visible) && i-offset < height; i++ {
		it := visible[i]
		row := truncateEnd(it.Display(), a.width-24)
		timeStr := ""
		if !it.Published.IsZero() {
			timeStr = " • " + it.Published.Format("Jan 2, 15:04")
		}
		if i == a.list.Cursor() {
			lines = append(lines, a.styles.Selected.Render("> "+row+timeStr))
		} else {
			lines = append(lines, a.styles.Item.Render("  "+row)+a.styles.Time.Render(timeStr))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) statusLine() string {
	left := fmt.Sprintf("%d/%d unread", a.list.Len(), a.list.Total())
	if a.status != "" {
		style := a.styles.Muted
		if a.statusErr {
			style = a.styles.Error
		}
		left += " • " + style.Render(a.status)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(left)
}

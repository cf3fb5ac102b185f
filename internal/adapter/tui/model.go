package tui

import (
	"context"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
)

type focus int

const (
	focusSearch focus = iota
	focusCategory
	focusGrid
	focusCount
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// loadedMsg reports the end of the catalog load.
type loadedMsg struct {
	err error
}

// Model is the catalog browser. Every key event that touches the filter
// recomputes the view synchronously through the session.
type Model struct {
	ctx     context.Context
	loader  port.CatalogLoader
	session port.FilterSession

	styles   Styles
	keys     keyMap
	help     help.Model
	search   textinput.Model
	spinner  spinner.Model
	detail   viewport.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	focus    focus
	cursor   int
	offset   int
	selected *domain.Product
	view     domain.View
}

func NewModel(
	ctx context.Context,
	loader port.CatalogLoader,
	session port.FilterSession,
	styles Styles,
) Model {
	ti := textinput.New()
	ti.Placeholder = "Search by title or category..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.Width = 40
	ti.PromptStyle = styles.SearchPrompt
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	h := help.New()
	h.Styles.ShortKey = styles.Muted
	h.Styles.ShortDesc = styles.Muted

	m := Model{
		ctx:     ctx,
		loader:  loader,
		session: session,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    h,
		search:  ti,
		spinner: sp,
		view:    session.View(),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func newRenderer(style string, wordWrap int) *glamour.TermRenderer {
	const op = "tui.newRenderer"

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		slog.Warn("markdown renderer is unavailable", "op", op, "err", err)
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), textinput.Blink)
}

func (m Model) load() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return loadedMsg{loader.Load(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case loadedMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.view.State != domain.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.view.State != domain.StateReady {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.selected != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ClearAll):
		m.clearFilters()
		return m, nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.setSearch("")
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusCategory:
		return m.handleCategoryKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Open) {
		return m, m.setFocus(focusGrid)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.session.SetSearchTerm(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.shiftCategory(-1)
	case key.Matches(msg, m.keys.Right):
		m.shiftCategory(1)
	case key.Matches(msg, m.keys.Open):
		return m, m.setFocus(focusGrid)
	}
	return m, nil
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.columns()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		m.openDetail()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.selected = nil
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusSearch {
		return m.search.Focus()
	}
	m.search.Blur()
	return nil
}

func (m *Model) setSearch(term string) {
	m.search.SetValue(term)
	m.session.SetSearchTerm(term)
	m.refresh()
}

func (m *Model) clearFilters() {
	m.session.ClearFilters()
	m.search.SetValue(m.session.Filter().SearchTerm)
	m.refresh()
}

func (m *Model) shiftCategory(delta int) {
	options := m.categoryOptions()
	i := slices.Index(options, m.view.Filter.Category)
	if i < 0 {
		i = 0
	}
	n := len(options)
	i = ((i+delta)%n + n) % n
	m.session.SelectCategory(options[i])
	m.refresh()
}

func (m Model) categoryOptions() []string {
	return append([]string{domain.AllCategories}, m.view.Categories...)
}

// refresh pulls the current view from the session. The grid cursor
// returns to the first card whenever the filter changes.
func (m *Model) refresh() {
	prev := m.view.Filter
	m.view = m.session.View()
	if m.view.Filter != prev {
		m.cursor, m.offset = 0, 0
	}
	if n := m.view.Count(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.scroll()
}

func (m *Model) moveCursor(delta int) {
	n := m.view.Count()
	if n == 0 {
		return
	}
	c := m.cursor + delta
	if c < 0 {
		return
	}
	m.cursor = min(c, n-1)
	m.scroll()
}

// scroll keeps the cursor row inside the visible window of rows.
func (m *Model) scroll() {
	row := m.cursor / m.columns()
	rows := m.visibleRows()
	switch {
	case row < m.offset:
		m.offset = row
	case row >= m.offset+rows:
		m.offset = row - rows + 1
	}
}

func (m *Model) openDetail() {
	if m.view.Count() == 0 {
		return
	}
	p := m.view.Products[m.cursor]
	m.selected = &p
	m.detail.SetContent(m.renderDetail(p))
	m.detail.GotoTop()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.search.Width = max(width/2, 20)

	w := max(width-detailFrameWidth, 10)
	h := max(height-detailChromeHeight, 3)
	m.detail = viewport.New(w, h)
	m.renderer = newRenderer(m.styles.Theme.Name, w)
	if m.selected != nil {
		m.detail.SetContent(m.renderDetail(*m.selected))
	}
	m.scroll()
}

func (m Model) columns() int {
	return max(m.width/cardOuterWidth, 1)
}

func (m Model) visibleRows() int {
	return max((m.height-pageChromeHeight)/cardOuterHeight, 1)
}

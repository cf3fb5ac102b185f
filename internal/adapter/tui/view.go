package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/niksmo/catalog/internal/core/domain"
)

const (
	cardContentWidth = 24
	// content, padding, border and the right margin
	cardOuterWidth  = cardContentWidth + 2 + 2 + 1
	cardOuterHeight = 4 + 2

	// title, filter bar and footer
	pageChromeHeight = 2 + 6 + 2

	detailFrameWidth   = 2 + 4
	detailChromeHeight = 2 + 2 + 2
)

const ellipsis = "…"

func (m Model) View() string {
	switch m.view.State {
	case domain.StateLoading:
		return m.viewLoading()
	case domain.StateFailed:
		return m.viewError()
	}

	if m.selected != nil {
		return m.viewDetail()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Our Products"),
		m.viewFilterBar(),
		m.viewResults(),
		m.viewFooter(),
	)
}

func (m Model) viewLoading() string {
	body := m.spinner.View() + " Loading products..."
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) viewError() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Error.Render("Error Loading Products"),
		m.styles.Muted.Render(m.view.Err),
		m.styles.Footer.Render(m.help.ShortHelpView([]key.Binding{m.keys.Quit})),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) viewFilterBar() string {
	f := m.view.Filter

	search := m.search.View()
	if f.SearchTerm != "" {
		search += m.styles.Muted.Render("  × ctrl+u")
	}

	categoryStyle := m.styles.Blurred
	if m.focus == focusCategory {
		categoryStyle = m.styles.Focused
	}
	category := "Category: " + categoryStyle.Render(fmt.Sprintf("‹ %s ›", domain.CategoryTitle(f.Category)))

	clear := m.styles.Disabled.Render("Clear")
	if f.Active() {
		clear = m.styles.Blurred.Render("Clear (ctrl+r)")
	}

	readout := m.styles.Readout.Render(
		fmt.Sprintf("Showing %d of %d products", m.view.Count(), m.view.Total))

	controls := strings.Join([]string{category, clear, readout}, "   ")

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Subtitle.Render("Search & Filter Products"),
		search,
		controls,
	)
	return m.styles.FilterBar.Width(max(m.width-2, 0)).Render(body)
}

func (m Model) viewResults() string {
	if m.view.Empty() {
		return m.viewEmpty()
	}
	return m.viewGrid()
}

func (m Model) viewEmpty() string {
	lines := []string{m.styles.Subtitle.Render("No products found")}
	if m.view.Filter.Active() {
		lines = append(lines,
			"We couldn't find any products matching your search criteria. Try adjusting your filters.",
			m.styles.Focused.Render("Clear All Filters (ctrl+r)"),
		)
	} else {
		lines = append(lines, "No products are currently available.")
	}
	return m.styles.Empty.Width(max(m.width-2, 0)).Render(
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) viewGrid() string {
	ps := m.view.Products
	cols := m.columns()
	last := min(m.offset+m.visibleRows(), (len(ps)+cols-1)/cols)

	rows := make([]string, 0, max(last-m.offset, 0))
	for r := m.offset; r < last; r++ {
		cards := make([]string, 0, cols)
		for i := r * cols; i < min((r+1)*cols, len(ps)); i++ {
			cards = append(cards, m.viewCard(ps[i], m.focus == focusGrid && i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewCard(p domain.Product, selected bool) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.CardCategory.Render(truncate(strings.ToUpper(p.CategoryLabel()))),
		m.styles.CardTitle.Render(truncate(p.TitleLabel())),
		truncate(p.RatingLabel()),
		m.styles.Price.Render(p.PriceLabel()),
	)

	style := m.styles.Card
	if selected {
		style = m.styles.CardSelected
	}
	return style.Width(cardContentWidth + 2).MarginRight(1).Render(body)
}

func truncate(s string) string {
	return ansi.Truncate(s, cardContentWidth, ellipsis)
}

func (m Model) viewFooter() string {
	var bindings []key.Binding
	switch m.focus {
	case focusSearch:
		bindings = []key.Binding{m.keys.Next, m.keys.ClearSearch, m.keys.ClearAll, m.keys.ForceQuit}
	case focusCategory:
		bindings = []key.Binding{m.keys.Left, m.keys.Right, m.keys.Next, m.keys.ClearAll, m.keys.Quit}
	default:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Next, m.keys.ClearAll, m.keys.Quit}
	}
	return m.styles.Footer.Render(m.help.ShortHelpView(bindings))
}

func (m Model) viewDetail() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Subtitle.Render("Product Details"),
		"",
		m.detail.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Detail.Width(max(m.width-2, 0)).Render(body),
		m.styles.Footer.Render(m.help.ShortHelpView([]key.Binding{m.keys.Close, m.keys.Up, m.keys.Down})),
	)
}

func (m Model) renderDetail(p domain.Product) string {
	image := domain.NotAvailable
	if p.HasImage() {
		image = p.Image
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Chip.Render(p.CategoryChip()),
		m.styles.Title.Render(p.TitleLabel()),
		"Rating: "+p.RatingLabel(),
		"Price:  "+m.styles.Price.Render(p.PriceLabel()),
		"Image:  "+image,
		"",
		m.styles.Subtitle.Render("Description"),
		m.renderDescription(p.DescriptionLabel()),
	)
}

func (m Model) renderDescription(text string) string {
	const op = "Model.renderDescription"

	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(escapeMarkdown(text))
	if err != nil {
		slog.Warn("failed to render description", "op", op, "err", err)
		return text
	}
	return strings.Trim(out, "\n")
}

// markdownPunct is the ASCII punctuation CommonMark lets a backslash escape.
const markdownPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// escapeMarkdown makes a plain description render verbatim, so product
// text never turns into headings, lists, links or emphasis.
func escapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownPunct, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

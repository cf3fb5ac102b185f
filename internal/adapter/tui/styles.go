package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNoTTY = "notty"
)

var (
	lightForeground = lipgloss.Color("#101F38")
	lightAccent     = lipgloss.Color("#1E88E5")
	lightMuted      = lipgloss.Color("#6B7280")
	lightBorder     = lipgloss.Color("#DCE0E5")

	darkForeground = lipgloss.Color("#F2F2F2")
	darkAccent     = lipgloss.Color("#8BC34A")
	darkMuted      = lipgloss.Color("#8A94A6")
	darkBorder     = lipgloss.Color("#2A3850")

	destructive = lipgloss.Color("#E53935")
)

// Theme is the color scheme of the terminal UI. Name doubles as the
// glamour standard style used for product descriptions.
type Theme struct {
	Name        string
	Foreground  lipgloss.TerminalColor
	Accent      lipgloss.TerminalColor
	Muted       lipgloss.TerminalColor
	Border      lipgloss.TerminalColor
	Destructive lipgloss.TerminalColor
}

func LightTheme() Theme {
	return Theme{
		Name:        styles.LightStyle,
		Foreground:  lightForeground,
		Accent:      lightAccent,
		Muted:       lightMuted,
		Border:      lightBorder,
		Destructive: destructive,
	}
}

func DarkTheme() Theme {
	return Theme{
		Name:        styles.DarkStyle,
		Foreground:  darkForeground,
		Accent:      darkAccent,
		Muted:       darkMuted,
		Border:      darkBorder,
		Destructive: destructive,
	}
}

// NoTTYTheme renders without colors.
func NoTTYTheme() Theme {
	return Theme{
		Name:        styles.NoTTYStyle,
		Foreground:  lipgloss.NoColor{},
		Accent:      lipgloss.NoColor{},
		Muted:       lipgloss.NoColor{},
		Border:      lipgloss.NoColor{},
		Destructive: lipgloss.NoColor{},
	}
}

func ThemeByName(name string) (Theme, error) {
	switch name {
	case ThemeDark:
		return DarkTheme(), nil
	case ThemeLight:
		return LightTheme(), nil
	case ThemeNoTTY:
		return NoTTYTheme(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Spinner  lipgloss.Style

	FilterBar      lipgloss.Style
	Focused        lipgloss.Style
	Blurred        lipgloss.Style
	Disabled       lipgloss.Style
	Readout        lipgloss.Style
	SearchPrompt   lipgloss.Style
	CategoryActive lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardCategory lipgloss.Style
	CardTitle    lipgloss.Style
	Price        lipgloss.Style

	Empty  lipgloss.Style
	Detail lipgloss.Style
	Chip   lipgloss.Style
	Footer lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Destructive).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		FilterBar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			MarginBottom(1),

		Focused: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Blurred: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Readout: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		SearchPrompt: lipgloss.NewStyle().
			Foreground(theme.Accent),

		CategoryActive: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Underline(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		CardCategory: lipgloss.NewStyle().
			Foreground(theme.Muted),

		CardTitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(1, 4).
			Align(lipgloss.Center),

		Detail: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2),

		Chip: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Foreground).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),
	}
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bmg/internal/storage"
)

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Counter      lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemActive   lipgloss.Style // folder currently filtering the grid
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	URL          lipgloss.Style
	Date         lipgloss.Style
	IconLoaded   lipgloss.Style
	IconPending  lipgloss.Style
	Page         lipgloss.Style
	PageCurrent  lipgloss.Style
	PageDisabled lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Notice       lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "open", "move")
	HintLabel    lipgloss.Style
}

// palette is the small set of colors a theme is built from.
type palette struct {
	primary  lipgloss.Color // main text
	subtle   lipgloss.Color // secondary text
	accent   lipgloss.Color // desaturated teal
	border   lipgloss.Color // inactive borders
	inverse  lipgloss.Color // text on accent
	warning  lipgloss.Color
	disabled lipgloss.Color
}

var (
	lightPalette = palette{
		primary:  "#505050",
		subtle:   "#888888",
		accent:   "#4A7070",
		border:   "#BBBBBB",
		inverse:  "#F5F5F5",
		warning:  "#CC8800",
		disabled: "#CCCCCC",
	}
	darkPalette = palette{
		primary:  "#A0A0A0",
		subtle:   "#606060",
		accent:   "#5F8787",
		border:   "#505050",
		inverse:  "#1A1A1A",
		warning:  "#FFAA00",
		disabled: "#3A3A3A",
	}
)

// DefaultStyles returns the light theme styles.
func DefaultStyles() Styles {
	return StylesFor(storage.ThemeLight)
}

// StylesFor returns the styles for a theme.
// Industrial design: grayscale with single desaturated teal accent.
func StylesFor(theme storage.Theme) Styles {
	p := lightPalette
	if theme.Dark() {
		p = darkPalette
	}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		Counter: lipgloss.NewStyle().
			Foreground(p.subtle),

		Item: lipgloss.NewStyle().
			Foreground(p.primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(p.accent).
			Foreground(p.inverse),

		ItemActive: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(p.accent),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),

		URL: lipgloss.NewStyle().
			Foreground(p.subtle),

		Date: lipgloss.NewStyle().
			Foreground(p.subtle),

		IconLoaded: lipgloss.NewStyle().
			Foreground(p.accent),

		IconPending: lipgloss.NewStyle().
			Foreground(p.subtle),

		Page: lipgloss.NewStyle().
			Foreground(p.primary),

		PageCurrent: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		PageDisabled: lipgloss.NewStyle().
			Foreground(p.disabled),

		Help: lipgloss.NewStyle().
			Foreground(p.subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(p.subtle),

		Notice: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.warning),

		HintKey: lipgloss.NewStyle().
			Foreground(p.accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(p.subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(p.subtle),
	}
}

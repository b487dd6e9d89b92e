package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move tab:pane"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Action []Hint // Action hints (Enter, Y, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeLoading:
		return HintSet{
			System: []Hint{{Key: "q", Desc: "quit"}},
		}
	case ModeNormal:
		if a.focus == FocusSidebar {
			return a.getSidebarHints()
		}
		return a.getGridHints()
	case ModeSearch:
		return a.getSearchModeHints()
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getGridHints returns hints for browsing cards.
func (a App) getGridHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "hjkl", Desc: "move"},
			{Key: "[/]", Desc: "page"},
			{Key: "tab", Desc: "folders"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "open"},
			{Key: "Y", Desc: "yank"},
			{Key: "/", Desc: "search"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// getSidebarHints returns hints for the folder sidebar.
func (a App) getSidebarHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "tab", Desc: "cards"},
		},
		Action: []Hint{
			{Key: "Enter", Desc: "select"},
			{Key: "/", Desc: "search"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// getSearchModeHints returns hints while typing a search term.
func (a App) getSearchModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "search"},
		},
		System: []Hint{
			{Key: "Enter/Esc", Desc: "done"},
		},
	}
}

// getGlobalHints returns the toggles that apply in every pane.
func (a App) getGlobalHints() []Hint {
	return []Hint{
		{Key: "o", Desc: "sort:" + a.state.Sort.Label()},
		{Key: "t", Desc: "theme:" + string(a.theme)},
	}
}

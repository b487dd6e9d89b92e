package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/bmg/internal/favicon"
	"github.com/nikbrunner/bmg/internal/tui/layout"
)

// Mode is the top-level interaction mode.
type Mode int

const (
	ModeLoading Mode = iota
	ModeNormal
	ModeSearch
	ModeHelp
)

// Focus is the pane receiving navigation keys in ModeNormal.
type Focus int

const (
	FocusGrid Focus = iota
	FocusSidebar
)

// MessageType determines the styling of the flash message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// IconStatus is the favicon state of one card.
type IconStatus int

const (
	IconResolving IconStatus = iota
	IconLoaded
	IconFallback
)

// Glyph returns the marker drawn in front of a card title.
func (s IconStatus) Glyph() string {
	switch s {
	case IconLoaded:
		return "●"
	case IconFallback:
		return "◇"
	default:
		return "◌"
	}
}

// SearchState holds the search box.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search bookmarks..."
	input.Prompt = "/ "
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// IconState tracks favicon resolution for the visible page. Results carry the
// generation they were requested for, so anything from an older view is
// dropped.
type IconState struct {
	Generation int
	Status     []IconStatus
	URIs       []string
}

// Reset starts a new generation sized for n cards.
func (s *IconState) Reset(n int) {
	s.Generation++
	s.Status = make([]IconStatus, n)
	s.URIs = make([]string, n)
}

// Apply records a resolution. It reports false for stale or out-of-range
// results.
func (s *IconState) Apply(generation, index int, resolved string) bool {
	if generation != s.Generation || index < 0 || index >= len(s.Status) {
		return false
	}
	s.URIs[index] = resolved
	if resolved == favicon.FallbackGlyph {
		s.Status[index] = IconFallback
	} else {
		s.Status[index] = IconLoaded
	}
	return true
}

// SidebarState holds the folder sidebar cursor.
type SidebarState struct {
	Cursor int // 0 = "All Bookmarks"
}

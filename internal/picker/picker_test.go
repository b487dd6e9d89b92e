package picker

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmg/internal/model"
	"github.com/nikbrunner/bmg/internal/search"
)

func twoResults() []search.Result {
	return []search.Result{
		{Bookmark: model.Bookmark{ID: "b1", Title: "GitHub", URL: "https://github.com", Folder: " > toolbar"}},
		{Bookmark: model.Bookmark{ID: "b2", Title: "GitLab", URL: "https://gitlab.com/explore"}},
	}
}

func press(p Picker, msg tea.KeyMsg) (Picker, tea.Cmd) {
	m, cmd := p.Update(msg)
	return m.(Picker), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(twoResults(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_NavigateDownAndUp(t *testing.T) {
	p := New(twoResults(), "git")

	p, _ = press(p, runes("j"))
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	p, _ = press(p, runes("k"))
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_BoundsCheck(t *testing.T) {
	p := New(twoResults()[:1], "git")

	p, _ = press(p, runes("k"))
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	p, _ = press(p, runes("j"))
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 (only 1 item), got %d", p.cursor)
	}
}

func TestPicker_TopAndBottom(t *testing.T) {
	p := New(twoResults(), "git")

	p, _ = press(p, runes("G"))
	if p.cursor != 1 {
		t.Errorf("expected cursor at bottom, got %d", p.cursor)
	}
	p, _ = press(p, runes("g"))
	if p.cursor != 0 {
		t.Errorf("expected cursor at top, got %d", p.cursor)
	}
}

func TestPicker_SelectItem(t *testing.T) {
	p := New(twoResults(), "git")
	p.cursor = 1

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})

	if !p.selected {
		t.Error("expected selected to be true after Enter")
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	if got := p.SelectedBookmark(); got == nil || got.ID != "b2" {
		t.Errorf("expected GitLab to be selected, got %+v", got)
	}
}

func TestPicker_EnterWithoutResultsCancels(t *testing.T) {
	p := New(nil, "nothing")

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})

	if !p.Cancelled() {
		t.Error("expected cancel when there is nothing to select")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
	if p.SelectedBookmark() != nil {
		t.Error("expected no selection")
	}
}

func TestPicker_Cancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("q")} {
		p := New(twoResults(), "git")

		p, cmd := press(p, msg)

		if !p.cancelled {
			t.Errorf("expected cancelled after %q", msg.String())
		}
		if cmd == nil {
			t.Error("expected quit command after cancel")
		}
		if p.SelectedBookmark() != nil {
			t.Error("expected nil when cancelled")
		}
	}
}

func TestPicker_ArrowKeys(t *testing.T) {
	p := New(twoResults(), "git")

	p, _ = press(p, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after down arrow, got %d", p.cursor)
	}

	p, _ = press(p, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after up arrow, got %d", p.cursor)
	}
}

func TestPicker_ScrollsWithCursor(t *testing.T) {
	var results []search.Result
	for i := range 20 {
		results = append(results, search.Result{Bookmark: model.Bookmark{
			ID:    fmt.Sprint(i),
			Title: fmt.Sprintf("Result %02d", i),
			URL:   "https://example.com",
		}})
	}
	p := New(results, "result")
	m, _ := p.Update(tea.WindowSizeMsg{Width: 80, Height: 11}) // 3 rows
	p = m.(Picker)

	for range 5 {
		p, _ = press(p, runes("j"))
	}

	if p.offset != 3 {
		t.Errorf("expected offset 3 with cursor 5 and 3 rows, got %d", p.offset)
	}
	view := p.View()
	if !strings.Contains(view, "Result 05") || strings.Contains(view, "Result 02") {
		t.Errorf("unexpected window:\n%s", view)
	}
}

func TestPicker_ViewShowsDisplayURLAndFolder(t *testing.T) {
	view := New(twoResults(), "git").View()

	for _, want := range []string{"Search: git (2 results)", "github.com/", "toolbar", "gitlab.com/explore"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, " > toolbar") {
		t.Error("folder should be shown without the root separator")
	}
}

package search

import (
	"testing"

	"github.com/nikbrunner/bmg/internal/model"
)

func bookmarks() []model.Bookmark {
	return []model.Bookmark{
		{ID: "b1", Title: "GitHub", URL: "https://github.com"},
		{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"},
		{ID: "b3", Title: "TanStack Router", URL: "https://tanstack.com/router"},
		{ID: "b4", Title: "Release notes", URL: "https://go.dev/doc/devel/release"},
	}
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
	if len(results[0].TitleMatches) != len("GitHub") {
		t.Errorf("expected every title rune highlighted, got %v", results[0].TitleMatches)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "tsr")

	if len(results) == 0 {
		t.Fatal("expected a fuzzy match")
	}
	if results[0].Bookmark.ID != "b3" {
		t.Errorf("expected TanStack Router first, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_MatchesHost(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "go.dev")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.ID != "b4" {
		t.Errorf("expected Release notes, got %s", results[0].Bookmark.Title)
	}
	for _, idx := range results[0].TitleMatches {
		if idx >= len(results[0].Bookmark.Title) {
			t.Errorf("title match index %d outside title", idx)
		}
	}
}

func TestFuzzySearchBookmarks_MultipleMatches(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "git")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_CaseInsensitive(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "github")

	if len(results) == 0 {
		t.Fatal("expected case-insensitive match")
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_SortedByScore(t *testing.T) {
	results := FuzzySearchBookmarks(bookmarks(), "git")

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d", results[i].Score, results[i-1].Score)
		}
	}
}

func TestTitleIndexes(t *testing.T) {
	got := titleIndexes([]int{0, 2, 5, 9}, 6)
	want := []int{0, 2, 5}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

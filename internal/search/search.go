package search

import (
	"github.com/nikbrunner/bmg/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark model.Bookmark
	// TitleMatches are the matched indexes that fall inside Bookmark.Title.
	TitleMatches []int
	Score        int
}

// haystack is what a bookmark is matched against: its title, then its host.
type haystack []model.Bookmark

func (h haystack) String(i int) string {
	return h[i].Title + " " + h[i].Host()
}

func (h haystack) Len() int {
	return len(h)
}

// FuzzySearchBookmarks searches bookmarks by title and host using fuzzy
// matching. Returns results sorted by match score (best first). An empty query
// returns nothing.
func FuzzySearchBookmarks(bookmarks []model.Bookmark, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, haystack(bookmarks))

	results := make([]Result, len(matches))
	for i, m := range matches {
		b := bookmarks[m.Index]
		results[i] = Result{
			Bookmark:     b,
			TitleMatches: titleIndexes(m.MatchedIndexes, len(b.Title)),
			Score:        m.Score,
		}
	}
	return results
}

// titleIndexes keeps the matched indexes that fall inside the title.
func titleIndexes(indexes []int, titleLen int) []int {
	out := make([]int, 0, len(indexes))
	for _, idx := range indexes {
		if idx < titleLen {
			out = append(out, idx)
		}
	}
	return out
}

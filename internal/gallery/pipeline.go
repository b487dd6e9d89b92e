package gallery

import (
	"slices"
	"strings"

	"github.com/nikbrunner/bmg/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Pipeline derives views from the authoritative bookmark list.
type Pipeline struct {
	lang language.Tag
}

// New creates a Pipeline that sorts titles using the collation rules of lang.
func New(lang language.Tag) *Pipeline {
	return &Pipeline{lang: lang}
}

// NewForLocale parses a BCP 47 tag, falling back to English.
func NewForLocale(tag string) *Pipeline {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.English
	}
	return New(lang)
}

// View is one computed page of the gallery.
type View struct {
	Items      []model.Bookmark // visible page
	Total      int              // matches before pagination
	TotalPages int
	State      State
}

// Apply filters, sorts and paginates bookmarks. The input slice is never
// modified.
func (p *Pipeline) Apply(bookmarks []model.Bookmark, st State) View {
	filtered := Filter(bookmarks, st.Search, st.Folder)
	p.Sort(filtered, st.Sort)

	return View{
		Items:      Paginate(filtered, st.Page),
		Total:      len(filtered),
		TotalPages: TotalPages(len(filtered)),
		State:      st,
	}
}

// Filter keeps bookmarks whose title or URL contains term (case-insensitive)
// and whose folder matches. An empty term matches everything. The result is a
// fresh slice.
func Filter(bookmarks []model.Bookmark, term string, folder FolderFilter) []model.Bookmark {
	needle := strings.ToLower(term)
	result := make([]model.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		matchesSearch := strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.URL), needle)
		matchesFolder := folder.Matches(b.Folder)
		if matchesSearch && matchesFolder {
			result = append(result, b)
		}
	}
	return result
}

// Sort orders bookmarks in place with a stable sort.
func (p *Pipeline) Sort(bookmarks []model.Bookmark, mode SortMode) {
	if mode == SortTitle {
		// Collators keep scratch buffers, so each sort gets its own.
		c := collate.New(p.lang)
		slices.SortStableFunc(bookmarks, func(a, b model.Bookmark) int {
			return c.CompareString(a.Title, b.Title)
		})
		return
	}

	slices.SortStableFunc(bookmarks, func(a, b model.Bookmark) int {
		switch {
		case a.DateAdded > b.DateAdded:
			return -1
		case a.DateAdded < b.DateAdded:
			return 1
		}
		return 0
	})
}

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Paginate returns the 1-based page of items. Pages outside the range yield an
// empty slice.
func Paginate(items []model.Bookmark, page int) []model.Bookmark {
	if page < 1 {
		return []model.Bookmark{}
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []model.Bookmark{}
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// Pager describes the page controls for a view.
type Pager struct {
	Current int
	Total   int
	Prev    bool  // previous page is reachable
	Next    bool  // next page is reachable
	Pages   []int // window of page numbers around Current
}

// Visible reports whether controls should be shown at all.
func (p Pager) Visible() bool {
	return p.Total > 1
}

// Controls computes the pager for the view. Views with a single page (or
// none) have no controls.
func (v View) Controls() Pager {
	page := v.State.Page
	pager := Pager{Current: page, Total: v.TotalPages}
	if v.TotalPages <= 1 {
		return pager
	}

	pager.Prev = page > 1
	pager.Next = page < v.TotalPages

	start := max(1, page-pagerSpan)
	end := min(v.TotalPages, page+pagerSpan)
	for i := start; i <= end; i++ {
		pager.Pages = append(pager.Pages, i)
	}
	return pager
}

// Empty reports whether the visible page has nothing to show.
func (v View) Empty() bool {
	return len(v.Items) == 0
}

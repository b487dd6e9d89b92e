package gallery

import "strings"

const (
	// PageSize is the number of bookmarks shown per page.
	PageSize = 12

	// AllAlias is the name "All Bookmarks" goes by on the command line and in
	// exported pages.
	AllAlias = "root"

	// pagerSpan is how many page numbers are shown either side of the current page.
	pagerSpan = 2
)

// SortMode orders the filtered bookmarks.
type SortMode string

const (
	SortDate  SortMode = "date"  // newest first
	SortTitle SortMode = "title" // locale-aware ascending
)

// ParseSortMode maps a user-supplied mode name. Unknown names sort by date.
func ParseSortMode(s string) SortMode {
	if strings.EqualFold(strings.TrimSpace(s), string(SortTitle)) {
		return SortTitle
	}
	return SortDate
}

// Next cycles to the other sort mode.
func (m SortMode) Next() SortMode {
	if m == SortTitle {
		return SortDate
	}
	return SortTitle
}

// Label returns a short display name.
func (m SortMode) Label() string {
	if m == SortTitle {
		return "title"
	}
	return "newest"
}

// FolderFilter selects every folder or exactly one folder path. "All" is kept
// apart from Path so that any string, "root" included, can be a real folder.
type FolderFilter struct {
	All  bool
	Path string
}

// AllFolders matches every bookmark.
func AllFolders() FolderFilter {
	return FolderFilter{All: true}
}

// InFolder matches bookmarks stored directly in path.
func InFolder(path string) FolderFilter {
	return FolderFilter{Path: path}
}

// Matches reports whether a bookmark stored in folder passes the filter.
func (f FolderFilter) Matches(folder string) bool {
	return f.All || f.Path == folder
}

// State is everything a view is derived from.
type State struct {
	Search string
	Folder FolderFilter
	Sort   SortMode
	Page   int // 1-based
}

// NewState returns the initial state: all folders, newest first, page 1.
func NewState() State {
	return State{
		Folder: AllFolders(),
		Sort:   SortDate,
		Page:   1,
	}
}

// SelectFolder switches folder and returns to the first page.
func (s State) SelectFolder(folder FolderFilter) State {
	s.Folder = folder
	s.Page = 1
	return s
}

// WithSearch changes the search term. The page is kept unless resetPage is set.
func (s State) WithSearch(term string, resetPage bool) State {
	s.Search = term
	if resetPage {
		s.Page = 1
	}
	return s
}

// WithSort changes the sort mode. The page is kept unless resetPage is set.
func (s State) WithSort(mode SortMode, resetPage bool) State {
	s.Sort = mode
	if resetPage {
		s.Page = 1
	}
	return s
}

// NextPage advances one page if totalPages allows it.
func (s State) NextPage(totalPages int) State {
	if s.Page < totalPages {
		s.Page++
	}
	return s
}

// PrevPage goes back one page, stopping at 1.
func (s State) PrevPage() State {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

// GoToPage jumps to page when it lies within [1, totalPages].
func (s State) GoToPage(page, totalPages int) State {
	if page >= 1 && page <= totalPages {
		s.Page = page
	}
	return s
}

// AllSelected reports whether every folder is shown.
func (s State) AllSelected() bool {
	return s.Folder.All
}

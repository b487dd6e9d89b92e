package tui

import (
	"github.com/nikbrunner/bmg/internal/gallery"
	"github.com/nikbrunner/bmg/internal/model"
)

// FolderEntry is one row of the folder sidebar.
type FolderEntry struct {
	Folder gallery.FolderFilter
	Label  string
	Count  int
}

// IsAll returns true for the "All Bookmarks" entry.
func (e FolderEntry) IsAll() bool {
	return e.Folder.All
}

// buildFolderEntries lists "All Bookmarks" followed by every folder that
// holds at least one bookmark, in first-seen order.
func buildFolderEntries(records []model.Bookmark) []FolderEntry {
	counts := model.CountByFolder(records)
	folders := model.Folders(records)

	entries := make([]FolderEntry, 0, len(folders)+1)
	entries = append(entries, FolderEntry{
		Folder: gallery.AllFolders(),
		Label:  "All Bookmarks",
		Count:  len(records),
	})
	for _, f := range folders {
		entries = append(entries, FolderEntry{
			Folder: gallery.InFolder(f),
			Label:  model.DisplayFolder(f),
			Count:  counts[f],
		})
	}
	return entries
}

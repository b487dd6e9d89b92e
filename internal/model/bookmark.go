package model

import (
	"net/url"
	"strings"
	"time"
)

// FolderSeparator joins container titles into a folder path.
const FolderSeparator = " > "

// Bookmark is one flattened link, annotated with its folder path.
type Bookmark struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Favicon   string `json:"favicon"`   // source hint or derived default
	DateAdded int64  `json:"dateAdded"` // microseconds since epoch
	Folder    string `json:"folder"`    // FolderSeparator-joined ancestor titles
}

// AddedAt converts DateAdded to a time.
func (b Bookmark) AddedAt() time.Time {
	return time.UnixMicro(b.DateAdded)
}

// FormatDate renders DateAdded as a local calendar date.
func (b Bookmark) FormatDate() string {
	return b.AddedAt().Local().Format("2006-01-02")
}

// DisplayURL returns host+path for well-formed URLs, the raw string otherwise.
func (b Bookmark) DisplayURL() string {
	u, err := url.Parse(b.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return b.URL
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return u.Hostname() + path
}

// Host returns the URL hostname, or "" when the URL does not parse.
func (b Bookmark) Host() string {
	u, err := url.Parse(b.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// JoinFolderPath joins container titles into a folder path.
func JoinFolderPath(segments []string) string {
	return strings.Join(segments, FolderSeparator)
}

// DisplayFolder drops the empty root segment that most exports carry, so
// " > menu > Dev" shows as "menu > Dev". Matching always uses the raw path.
func DisplayFolder(path string) string {
	return strings.TrimPrefix(path, FolderSeparator)
}

// Folders returns the distinct non-empty folder paths in first-seen order.
func Folders(bookmarks []Bookmark) []string {
	seen := make(map[string]bool)
	var result []string
	for _, b := range bookmarks {
		if b.Folder == "" || seen[b.Folder] {
			continue
		}
		seen[b.Folder] = true
		result = append(result, b.Folder)
	}
	return result
}

// CountByFolder returns how many bookmarks sit directly in each folder path.
func CountByFolder(bookmarks []Bookmark) map[string]int {
	counts := make(map[string]int)
	for _, b := range bookmarks {
		counts[b.Folder]++
	}
	return counts
}

package importer

import (
	"fmt"
	"net/url"

	"github.com/nikbrunner/bmg/internal/model"
)

const (
	faviconService     = "https://www.google.com/s2/favicons?domain=%s&sz=64"
	PlaceholderFavicon = "https://via.placeholder.com/64x64?text=?"
)

// Flatten converts a bookmark tree into a flat list of bookmarks in source
// order. Each bookmark's Folder is the path of container titles from the root
// (inclusive, even when empty) down to its parent. A root that is not a
// container yields nothing.
func Flatten(root *model.RawNode) []model.Bookmark {
	if root == nil || !root.IsContainer() {
		return nil
	}
	return flatten(root, nil)
}

func flatten(node *model.RawNode, path []string) []model.Bookmark {
	if node.Children == nil {
		return nil
	}

	// Copy so sibling containers never share a backing array.
	folderPath := make([]string, len(path), len(path)+1)
	copy(folderPath, path)
	folderPath = append(folderPath, node.Title)
	folder := model.JoinFolderPath(folderPath)

	var bookmarks []model.Bookmark
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		switch child.TypeCode {
		case model.TypeLink:
			bookmarks = append(bookmarks, newBookmark(child, folder))
		case model.TypeContainer:
			bookmarks = append(bookmarks, flatten(child, folderPath)...)
		}
	}
	return bookmarks
}

func newBookmark(n *model.RawNode, folder string) model.Bookmark {
	id := string(n.ID)
	if id == "" {
		id = model.GenerateID()
	}

	favicon := n.IconURI
	if favicon == "" {
		favicon = DefaultFavicon(n.URI)
	}

	return model.Bookmark{
		ID:        id,
		Title:     n.Title,
		URL:       n.URI,
		Favicon:   favicon,
		DateAdded: n.DateAdded,
		Folder:    folder,
	}
}

// DefaultFavicon derives an icon lookup URL from the link's hostname.
// Addresses that do not parse as absolute URLs get the placeholder.
func DefaultFavicon(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return PlaceholderFavicon
	}
	return fmt.Sprintf(faviconService, url.QueryEscape(u.Hostname()))
}

package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmg/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-<kind>-YYYY-MM-DD.html
func DefaultExportPath(kind string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-%s-%s.html", kind, time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// folderNode is one level of the tree rebuilt from folder paths.
type folderNode struct {
	name      string
	children  []*folderNode
	byName    map[string]*folderNode
	bookmarks []model.Bookmark
}

func newFolderNode(name string) *folderNode {
	return &folderNode{name: name, byName: map[string]*folderNode{}}
}

func (n *folderNode) child(name string) *folderNode {
	if c, ok := n.byName[name]; ok {
		return c
	}
	c := newFolderNode(name)
	n.byName[name] = c
	n.children = append(n.children, c)
	return c
}

// buildTree nests bookmarks by their folder path. The first path segment is
// the export's root container and maps to the top level.
func buildTree(bookmarks []model.Bookmark) *folderNode {
	root := newFolderNode("")
	for _, b := range bookmarks {
		node := root
		segments := strings.Split(b.Folder, model.FolderSeparator)
		for _, seg := range segments[1:] {
			node = node.child(seg)
		}
		node.bookmarks = append(node.bookmarks, b)
	}
	return root
}

// ExportNetscape writes bookmarks as Netscape bookmark HTML, rebuilding the
// folder hierarchy from each bookmark's folder path.
func ExportNetscape(bookmarks []model.Bookmark) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, buildTree(bookmarks), 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItems recursively writes folders and bookmarks for one level.
func writeItems(b *strings.Builder, node *folderNode, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, folder := range node.children {
		fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(folder.name))
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)
		writeItems(b, folder, indent+1)
		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
	}

	for _, bookmark := range node.bookmarks {
		fmt.Fprintf(b, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"",
			prefix,
			html.EscapeString(bookmark.URL),
			bookmark.AddedAt().Unix(),
		)
		if bookmark.Favicon != "" {
			fmt.Fprintf(b, " ICON_URI=\"%s\"", html.EscapeString(bookmark.Favicon))
		}
		fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bookmark.Title))
	}
}

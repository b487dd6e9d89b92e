package exporter

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/nikbrunner/bmg/internal/favicon"
	"github.com/nikbrunner/bmg/internal/gallery"
	"github.com/nikbrunner/bmg/internal/model"
	"github.com/nikbrunner/bmg/internal/storage"
)

// GalleryParams describes one rendered page of the gallery.
type GalleryParams struct {
	View gallery.View
	// Icons holds the resolved favicon for each item of View.Items. Missing
	// entries fall back to the glyph.
	Icons   []string
	Folders []string
	Theme   storage.Theme
	// Notice is shown above the grid, e.g. why sample data is displayed.
	Notice string
}

const galleryCSS = `
:root { --bg: #f7f7f7; --card: #ffffff; --text: #303030; --subtle: #888888; --accent: #4a7070; --border: #e0e0e0; }
[data-theme="dark"] { --bg: #1a1a1a; --card: #242424; --text: #d0d0d0; --subtle: #707070; --accent: #5f8787; --border: #333333; }
body { margin: 0; font-family: system-ui, sans-serif; background: var(--bg); color: var(--text); }
header { padding: 1rem 2rem; border-bottom: 1px solid var(--border); }
.layout { display: flex; gap: 2rem; padding: 1rem 2rem; }
.folders { list-style: none; padding: 0; min-width: 14rem; }
.folder-item { padding: .25rem .5rem; color: var(--subtle); }
.folder-item.active { color: var(--accent); font-weight: bold; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(16rem, 1fr)); gap: 1rem; flex: 1; }
.bookmark-card { display: flex; gap: .75rem; padding: .75rem; background: var(--card); border: 1px solid var(--border); border-radius: 8px; }
.bookmark-favicon img { width: 32px; height: 32px; }
.bookmark-title { margin: 0; font-size: 1rem; }
.bookmark-title a { color: var(--text); text-decoration: none; }
.bookmark-url, .bookmark-meta { margin: .25rem 0 0; color: var(--subtle); font-size: .85rem; word-break: break-all; }
.pagination { display: flex; gap: .5rem; justify-content: center; padding: 1rem; }
.page-button { padding: .25rem .6rem; border: 1px solid var(--border); border-radius: 4px; }
.page-button.active { background: var(--accent); color: var(--card); }
.page-button.disabled { opacity: .4; }
.notice, .no-bookmarks { padding: 1rem; color: var(--subtle); }
`

// ExportGallery renders a self-contained HTML page for one view.
func ExportGallery(p GalleryParams) string {
	var b strings.Builder

	theme := "light"
	if p.Theme.Dark() {
		theme = "dark"
	}

	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=\"en\" data-theme=\"%s\">\n", theme)
	b.WriteString("<head>\n<meta charset=\"UTF-8\">\n<title>Bookmarks</title>\n")
	fmt.Fprintf(&b, "<style>%s</style>\n</head>\n<body>\n", galleryCSS)

	writeHeader(&b, p.View)

	b.WriteString("<div class=\"layout\">\n")
	writeFolders(&b, p.Folders, p.View.State.Folder)

	b.WriteString("<main>\n")
	if p.Notice != "" {
		fmt.Fprintf(&b, "<p class=\"notice\">%s</p>\n", html.EscapeString(p.Notice))
	}
	writeGrid(&b, p.View.Items, p.Icons)
	writePager(&b, p.View.Controls())
	b.WriteString("</main>\n</div>\n</body>\n</html>\n")

	return b.String()
}

func writeHeader(b *strings.Builder, v gallery.View) {
	b.WriteString("<header>\n<h1>Bookmarks</h1>\n")
	fmt.Fprintf(b, "<p class=\"counter\">%d bookmarks", v.Total)
	if v.State.Search != "" {
		fmt.Fprintf(b, " matching &quot;%s&quot;", html.EscapeString(v.State.Search))
	}
	fmt.Fprintf(b, " &middot; sorted by %s</p>\n</header>\n", v.State.Sort.Label())
}

func writeFolders(b *strings.Builder, folders []string, selected gallery.FolderFilter) {
	b.WriteString("<ul class=\"folders\">\n")
	writeFolderItem(b, gallery.AllFolders(), "All Bookmarks", selected.All)
	for _, f := range folders {
		label := model.DisplayFolder(f)
		if label == "" {
			label = "(top level)"
		}
		writeFolderItem(b, gallery.InFolder(f), label, selected == gallery.InFolder(f))
	}
	b.WriteString("</ul>\n")
}

func writeFolderItem(b *strings.Builder, folder gallery.FolderFilter, label string, active bool) {
	class := "folder-item"
	if active {
		class += " active"
	}
	attrs := fmt.Sprintf("data-folder=\"%s\"", html.EscapeString(folder.Path))
	if folder.All {
		attrs = fmt.Sprintf("data-folder=\"%s\" data-all=\"true\"", gallery.AllAlias)
	}
	fmt.Fprintf(b, "<li class=\"%s\" %s>%s</li>\n", class, attrs, html.EscapeString(label))
}

// linkable reports whether rawURL may be emitted as an href. Anything else,
// javascript: and data: included, is shown as text only.
func linkable(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
		return true
	}
	return false
}

func writeGrid(b *strings.Builder, items []model.Bookmark, icons []string) {
	b.WriteString("<div class=\"grid\">\n")
	if len(items) == 0 {
		b.WriteString("<div class=\"no-bookmarks\"><h3>No bookmarks found</h3>" +
			"<p>Try adjusting your search or filter criteria</p></div>\n")
	}

	for i, bm := range items {
		icon := favicon.FallbackGlyph
		if i < len(icons) && icons[i] != "" {
			icon = icons[i]
		}

		b.WriteString("<div class=\"bookmark-card\">\n")
		fmt.Fprintf(b, "<div class=\"bookmark-favicon\"><img src=\"%s\" alt=\"%s\"></div>\n",
			html.EscapeString(icon), html.EscapeString(bm.Title))
		b.WriteString("<div class=\"bookmark-info\">\n")
		if linkable(bm.URL) {
			fmt.Fprintf(b, "<h3 class=\"bookmark-title\"><a href=\"%s\" target=\"_blank\" rel=\"noopener\">%s</a></h3>\n",
				html.EscapeString(bm.URL), html.EscapeString(bm.Title))
		} else {
			fmt.Fprintf(b, "<h3 class=\"bookmark-title\">%s</h3>\n", html.EscapeString(bm.Title))
		}
		fmt.Fprintf(b, "<p class=\"bookmark-url\">%s</p>\n", html.EscapeString(bm.DisplayURL()))
		fmt.Fprintf(b, "<p class=\"bookmark-meta\">%s</p>\n", bm.FormatDate())
		b.WriteString("</div>\n</div>\n")
	}
	b.WriteString("</div>\n")
}

func writePager(b *strings.Builder, pager gallery.Pager) {
	if !pager.Visible() {
		return
	}

	b.WriteString("<nav class=\"pagination\">\n")
	writePageButton(b, "&lsaquo;", !pager.Prev, false)
	for _, page := range pager.Pages {
		writePageButton(b, fmt.Sprint(page), false, page == pager.Current)
	}
	writePageButton(b, "&rsaquo;", !pager.Next, false)
	b.WriteString("</nav>\n")
}

func writePageButton(b *strings.Builder, label string, disabled, active bool) {
	class := "page-button"
	switch {
	case disabled:
		class += " disabled"
	case active:
		class += " active"
	}
	fmt.Fprintf(b, "<span class=\"%s\">%s</span>\n", class, label)
}

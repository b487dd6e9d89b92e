package importer_test

import (
	"strings"
	"testing"

	"github.com/nikbrunner/bmg/internal/importer"
	"github.com/nikbrunner/bmg/internal/model"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890" ICON_URI="https://example.com/icon.png">Example Site</A>
</DL><p>`

	root, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !root.IsContainer() {
		t.Fatal("expected root to be a container")
	}

	bookmarks := importer.Flatten(root)
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}

	b := bookmarks[0]
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.Folder != "" {
		t.Errorf("expected root folder path \"\", got %q", b.Folder)
	}
	if b.DateAdded != 1234567890*1_000_000 {
		t.Errorf("expected ADD_DATE in microseconds, got %d", b.DateAdded)
	}
	if b.Favicon != "https://example.com/icon.png" {
		t.Errorf("expected ICON_URI as favicon, got %q", b.Favicon)
	}
	if b.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	root, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"React Docs": " > Development > React",
		"GitHub":     " > Development",
		"Google":     "",
	}

	bookmarks := importer.Flatten(root)
	if len(bookmarks) != len(want) {
		t.Fatalf("expected %d bookmarks, got %d", len(want), len(bookmarks))
	}
	for _, b := range bookmarks {
		if b.Folder != want[b.Title] {
			t.Errorf("%s: expected folder %q, got %q", b.Title, want[b.Title], b.Folder)
		}
	}
}

func TestParseHTML_SkipsLinksWithoutHref(t *testing.T) {
	html := `<DL><p>
    <DT><A>No link</A>
    <DT><A HREF="">Empty</A>
    <DT><A HREF="https://ok.example">OK</A>
</DL><p>`

	root, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bookmarks := importer.Flatten(root)
	if len(bookmarks) != 1 || bookmarks[0].Title != "OK" {
		t.Errorf("expected only the OK bookmark, got %+v", bookmarks)
	}
}

func TestParseHTML_TitleFallsBackToURL(t *testing.T) {
	html := `<DL><p><DT><A HREF="https://untitled.example"></A></DL><p>`

	root, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bookmarks := importer.Flatten(root)
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}
	if bookmarks[0].Title != "https://untitled.example" {
		t.Errorf("expected URL as title, got %q", bookmarks[0].Title)
	}
}

func TestParseHTML_EmptyFolderKept(t *testing.T) {
	html := `<DL><p>
    <DT><H3>Empty</H3>
    <DL><p></DL><p>
</DL><p>`

	root, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(root.Children) != 1 || root.Children[0].TypeCode != model.TypeContainer {
		t.Fatalf("expected one container child, got %+v", root.Children)
	}
	if n := len(importer.Flatten(root)); n != 0 {
		t.Errorf("expected no bookmarks, got %d", n)
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nikbrunner/bmg/internal/gallery"
	"github.com/nikbrunner/bmg/internal/model"
	"github.com/nikbrunner/bmg/internal/source"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var records = []model.Bookmark{
	{ID: "1", Title: "Go", URL: "https://go.dev/", DateAdded: 3_000_000, Folder: " > menu > Dev"},
	{ID: "2", Title: "Alpha", URL: "https://alpha.example.com/", DateAdded: 2_000_000, Folder: " > toolbar"},
	{ID: "3", Title: "Zeta", URL: "https://zeta.example.com/", DateAdded: 1_000_000, Folder: " > menu > Dev"},
}

func TestNewSource(t *testing.T) {
	src, err := newSource("/tmp/places.json", "https://example.com/b/", "/data")
	assert.NilError(t, err)
	fileSrc, ok := src.(*source.FileSource)
	assert.Assert(t, ok, "file should win, got %T", src)
	assert.Equal(t, fileSrc.Path, "/tmp/places.json")

	src, err = newSource("", "https://example.com/b", "/data")
	assert.NilError(t, err)
	assert.Equal(t, src.String(), "https://example.com/b/")

	src, err = newSource("", "", "/data")
	assert.NilError(t, err)
	_, ok = src.(*source.DirSource)
	assert.Assert(t, ok, "expected DirSource, got %T", src)

	_, err = newSource("", "ftp://example.com/", "/data")
	assert.ErrorContains(t, err, "scheme must be http or https")
}

func TestResolveFolder(t *testing.T) {
	tests := []struct {
		name string
		want gallery.FolderFilter
	}{
		{"root", gallery.AllFolders()},
		{"menu > Dev", gallery.InFolder(" > menu > Dev")},
		{" > toolbar", gallery.InFolder(" > toolbar")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFolder(records, tt.name)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}

	_, err := resolveFolder(records, "nope")
	assert.ErrorContains(t, err, `unknown folder "nope"`)
}

func TestResolveFolder_RealFolderNamedRoot(t *testing.T) {
	rooted := []model.Bookmark{
		{ID: "x", Title: "X", URL: "https://x.example/", DateAdded: 2, Folder: "root"},
		{ID: "y", Title: "Y", URL: "https://y.example/", DateAdded: 1, Folder: "root > sub"},
	}

	got, err := resolveFolder(rooted, "root")
	assert.NilError(t, err)
	assert.Equal(t, got, gallery.InFolder("root"))

	st, err := viewFlags{folder: "root", page: 1}.state(rooted)
	assert.NilError(t, err)
	view := gallery.NewForLocale("en").Apply(rooted, st)
	assert.Equal(t, view.Total, 1)
	assert.Equal(t, view.Items[0].Title, "X")
}

func TestViewFlagsState(t *testing.T) {
	f := viewFlags{search: "go", folder: "menu > Dev", sort: "title", page: 2}

	st, err := f.state(records)
	assert.NilError(t, err)
	assert.DeepEqual(t, st, gallery.State{
		Search: "go",
		Folder: gallery.InFolder(" > menu > Dev"),
		Sort:   gallery.SortTitle,
		Page:   2,
	})

	_, err = viewFlags{folder: "missing", page: 1}.state(records)
	assert.Assert(t, err != nil)
}

func TestWriteView(t *testing.T) {
	st := gallery.NewState().SelectFolder(gallery.InFolder(" > menu > Dev"))
	view := gallery.NewForLocale("en").Apply(records, st)

	var buf bytes.Buffer
	writeView(&buf, view)
	out := buf.String()

	assert.Assert(t, strings.HasPrefix(out, "2 bookmarks · sorted by newest\n"), out)
	assert.Assert(t, is.Contains(out, "Go\n  https://go.dev/\n"))
	assert.Assert(t, is.Contains(out, "menu > Dev"))
	assert.Assert(t, !strings.Contains(out, "Alpha"))
	// Newest first
	assert.Assert(t, strings.Index(out, "Go") < strings.Index(out, "Zeta"))
}

func TestWriteViewEmpty(t *testing.T) {
	view := gallery.NewForLocale("en").Apply(records, gallery.NewState().WithSearch("nothing", false))

	var buf bytes.Buffer
	writeView(&buf, view)

	assert.Equal(t, buf.String(), "0 bookmarks matching \"nothing\" · sorted by newest\nNo bookmarks found\n")
}

package importer

import "github.com/nikbrunner/bmg/internal/model"

// SampleTree returns the small tree shown when no export can be loaded.
func SampleTree() *model.RawNode {
	link := model.NewLink(8, "Hilfe und Anleitungen", "https://support.mozilla.org/de/products/firefox", 1607471488520000)
	link.IconURI = "fake-favicon-uri:https://support.mozilla.org/de/products/firefox"

	firefox := model.NewContainer(7, "Mozilla Firefox", 1607471488520000, link)
	menu := model.NewContainer(2, "menu", 1607471488288000, firefox)
	return model.NewContainer(1, "", 1607471488288000, menu)
}

// SampleBookmarks returns SampleTree flattened.
func SampleBookmarks() []model.Bookmark {
	return Flatten(SampleTree())
}

package importer

import (
	"bytes"
	"encoding/json"
	"path"
	"strings"

	"github.com/nikbrunner/bmg/internal/model"
)

// Format identifies a bookmark export format.
type Format int

const (
	FormatPlaces Format = iota // Firefox places JSON
	FormatChrome               // Chrome Bookmarks JSON
	FormatHTML                 // Netscape bookmark HTML
)

func (f Format) String() string {
	switch f {
	case FormatChrome:
		return "chrome"
	case FormatHTML:
		return "html"
	default:
		return "places"
	}
}

// DetectFormat guesses the export format from the file name and content.
func DetectFormat(name string, data []byte) Format {
	ext := strings.ToLower(path.Ext(name))
	if ext == ".html" || ext == ".htm" {
		return FormatHTML
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatHTML
	}

	var probe struct {
		Roots json.RawMessage `json:"roots"`
	}
	if json.Unmarshal(trimmed, &probe) == nil && len(probe.Roots) > 0 {
		return FormatChrome
	}
	return FormatPlaces
}

// Parse decodes an export of any supported format into a bookmark tree.
func Parse(name string, data []byte) (*model.RawNode, Format, error) {
	format := DetectFormat(name, data)

	var (
		root *model.RawNode
		err  error
	)
	switch format {
	case FormatHTML:
		root, err = ParseHTMLBookmarks(bytes.NewReader(data))
	case FormatChrome:
		root, err = ParseChromeJSON(bytes.NewReader(data))
	default:
		root, err = ParsePlacesJSON(bytes.NewReader(data))
	}
	return root, format, err
}

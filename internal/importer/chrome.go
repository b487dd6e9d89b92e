package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nikbrunner/bmg/internal/model"
)

// chromeEpochOffset is the distance between 1601-01-01 and the Unix epoch
// in microseconds.
const chromeEpochOffset = 11644473600000000

// chromeRootOrder is the order Chrome shows its top-level folders in.
var chromeRootOrder = []string{"bookmark_bar", "other", "synced"}

type chromeFile struct {
	Roots map[string]*chromeNode `json:"roots"`
}

type chromeNode struct {
	ID        model.NodeID  `json:"id"`
	Name      string        `json:"name"`
	Type      string        `json:"type"` // "folder" or "url"
	URL       string        `json:"url"`
	DateAdded string        `json:"date_added"`
	Children  []*chromeNode `json:"children"`
}

// ParseChromeJSON decodes a Chrome "Bookmarks" file into a bookmark tree.
// The synthetic root has an empty title; each entry of "roots" becomes one
// top-level container.
func ParseChromeJSON(r io.Reader) (*model.RawNode, error) {
	var file chromeFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return nil, fmt.Errorf("decode chrome json: %w", err)
	}
	if file.Roots == nil {
		return nil, fmt.Errorf("%w: missing roots", ErrUnexpectedShape)
	}

	root := &model.RawNode{TypeCode: model.TypeContainer, Children: []*model.RawNode{}}
	for _, key := range chromeRootKeys(file.Roots) {
		if node := file.Roots[key]; node != nil {
			root.Children = append(root.Children, node.toRaw())
		}
	}
	return root, nil
}

// chromeRootKeys returns the well-known roots first, then any others by name.
func chromeRootKeys(roots map[string]*chromeNode) []string {
	known := make(map[string]bool)
	var keys []string
	for _, k := range chromeRootOrder {
		known[k] = true
		if _, ok := roots[k]; ok {
			keys = append(keys, k)
		}
	}

	var extra []string
	for k := range roots {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func (n *chromeNode) toRaw() *model.RawNode {
	raw := &model.RawNode{
		ID:        n.ID,
		Title:     n.Name,
		DateAdded: chromeToUnixMicro(n.DateAdded),
	}

	switch n.Type {
	case "url":
		raw.TypeCode = model.TypeLink
		raw.URI = n.URL
	case "folder":
		raw.TypeCode = model.TypeContainer
		raw.Children = make([]*model.RawNode, 0, len(n.Children))
		for _, c := range n.Children {
			if c != nil {
				raw.Children = append(raw.Children, c.toRaw())
			}
		}
	}
	// Unknown types keep TypeCode 0 and are skipped by Flatten.
	return raw
}

func chromeToUnixMicro(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= chromeEpochOffset {
		return 0
	}
	return v - chromeEpochOffset
}

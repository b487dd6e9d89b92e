package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/nikbrunner/bmg/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into a bookmark tree whose
// root is an untitled container.
func ParseHTMLBookmarks(r io.Reader) (*model.RawNode, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	root := &model.RawNode{TypeCode: model.TypeContainer, Children: []*model.RawNode{}}

	// Track current container stack for hierarchy
	stack := []*model.RawNode{root}
	var pendingFolder *model.RawNode // folder waiting to be pushed on next DL

	current := func() *model.RawNode {
		return stack[len(stack)-1]
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				folder := &model.RawNode{
					TypeCode:  model.TypeContainer,
					Title:     name,
					DateAdded: parseAddDate(getAttr(n, "add_date")),
					Children:  []*model.RawNode{},
				}
				parent := current()
				parent.Children = append(parent.Children, folder)

				// Pushed when we see the next DL
				pendingFolder = folder
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href
				}

				icon := getAttr(n, "icon_uri")
				if icon == "" {
					icon = getAttr(n, "icon")
				}

				parent := current()
				parent.Children = append(parent.Children, &model.RawNode{
					TypeCode:  model.TypeLink,
					Title:     title,
					URI:       href,
					IconURI:   icon,
					DateAdded: parseAddDate(getAttr(n, "add_date")),
				})
				return

			case "dl":
				pushed := false
				if pendingFolder != nil {
					stack = append(stack, pendingFolder)
					pendingFolder = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					stack = stack[:len(stack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return root, nil
}

// parseAddDate converts an ADD_DATE attribute (Unix seconds) to microseconds.
func parseAddDate(s string) int64 {
	if s == "" {
		return 0
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return ts * 1_000_000
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}

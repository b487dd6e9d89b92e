package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// TypeCode discriminates nodes in a bookmark export tree.
type TypeCode int

const (
	TypeLink      TypeCode = 1
	TypeContainer TypeCode = 2
)

// NodeID is a node identifier. Firefox exports numeric ids, Chrome exports
// strings; both decode into the same form.
type NodeID string

// UnmarshalJSON accepts a JSON number, string or null.
func (id *NodeID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = NodeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = NodeID(n.String())
	return nil
}

// RawNode is one node of an exported bookmark tree. Only the fields relevant
// to the node's TypeCode are meaningful.
type RawNode struct {
	ID        NodeID     `json:"id"`
	TypeCode  TypeCode   `json:"typeCode"`
	Title     string     `json:"title"`
	URI       string     `json:"uri,omitempty"`
	IconURI   string     `json:"iconUri,omitempty"`
	DateAdded int64      `json:"dateAdded"`
	Children  []*RawNode `json:"children,omitempty"`
}

// IsLink returns true for leaf link nodes.
func (n *RawNode) IsLink() bool {
	return n.TypeCode == TypeLink
}

// IsContainer returns true for folder nodes.
func (n *RawNode) IsContainer() bool {
	return n.TypeCode == TypeContainer
}

// NewContainer builds a container node.
func NewContainer(id int, title string, dateAdded int64, children ...*RawNode) *RawNode {
	return &RawNode{
		ID:        NodeID(strconv.Itoa(id)),
		TypeCode:  TypeContainer,
		Title:     title,
		DateAdded: dateAdded,
		Children:  children,
	}
}

// NewLink builds a link node.
func NewLink(id int, title, uri string, dateAdded int64) *RawNode {
	return &RawNode{
		ID:        NodeID(strconv.Itoa(id)),
		TypeCode:  TypeLink,
		Title:     title,
		URI:       uri,
		DateAdded: dateAdded,
	}
}

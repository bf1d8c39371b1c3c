// Package resource parses localized string-resource documents, removes
// repeated entries and writes the documents back out.
package resource

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// DefaultTag is the element name of a string entry in a resource file.
const DefaultTag = "string"

// ErrNoRoot is returned when a document has no root element.
var ErrNoRoot = errors.New("document has no root element")

// Tree is an in-memory parsed resource document. It is built fresh per file,
// mutated in place and serialized once.
type Tree struct {
	doc *etree.Document
}

// Entry is one string entry of a Tree. The element reference stays valid
// after sibling entries are removed.
type Entry struct {
	Name    string
	HasName bool
	Tag     string
	Text    string
	Index   int

	el *etree.Element
}

// Parse builds a Tree from raw document bytes.
func Parse(data []byte) (*Tree, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	return &Tree{doc: doc}, nil
}

// RootTag returns the tag of the document's root element.
func (t *Tree) RootTag() string {
	return t.doc.Root().Tag
}

// Entries returns a snapshot of every element whose tag is one of tags, in
// document order. With no tags, DefaultTag is used. The returned slice does
// not change when entries are removed from the tree.
func (t *Tree) Entries(tags ...string) []Entry {
	if len(tags) == 0 {
		tags = []string{DefaultTag}
	}
	want := make(map[string]bool, len(tags))
	for _, tag := range tags {
		want[tag] = true
	}

	var entries []Entry
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if want[child.Tag] {
				attr := child.SelectAttr("name")
				e := Entry{
					Tag:   child.Tag,
					Text:  child.Text(),
					Index: len(entries),
					el:    child,
				}
				if attr != nil {
					e.Name = attr.Value
					e.HasName = true
				}
				entries = append(entries, e)
			}
			walk(child)
		}
	}
	walk(t.doc.Root())
	return entries
}

// Remove detaches the entry's element from its parent. The whitespace-only
// text node directly in front of it goes too, so no blank line is left.
// Removing an entry that is already detached is a no-op.
func (t *Tree) Remove(e Entry) {
	parent := e.el.Parent()
	if parent == nil {
		return
	}

	pos := -1
	for i, tok := range parent.Child {
		if tok == etree.Token(e.el) {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}

	if pos > 0 {
		if cd, ok := parent.Child[pos-1].(*etree.CharData); ok && strings.TrimSpace(cd.Data) == "" {
			parent.RemoveChild(cd)
		}
	}
	parent.RemoveChild(e.el)
}

// Bytes serializes the tree.
func (t *Tree) Bytes() ([]byte, error) {
	out, err := t.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return out, nil
}

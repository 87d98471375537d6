// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import "strconv"

// RawNode is a node of the tree built from indentation, before its line is classified.
type RawNode struct {
	Number        int
	Contents      []Term
	Children      []*RawNode
	BottomSpacing bool
}

// TreeDocument is the result of the second stage.
type TreeDocument struct {
	Header  map[string]string
	Options StandardOptions
	Nodes   []*RawNode
}

// Document is the fully classified document, ready for rendering.
type Document struct {
	// Header holds the header entries not consumed by the standard options
	Header  map[string]string
	Options StandardOptions
	Nodes   []*Node
}

// Node is an element of the document hierarchy.
// BottomSpacing asks for additional vertical space after the node and its children.
type Node struct {
	Number        int
	Line          LineKind
	Children      []*Node
	BottomSpacing bool
}

// Walk visits the nodes depth-first in document order.
// depth is 0 for the top level nodes. If fn returns false the children of
// that node are not visited.
func (d *Document) Walk(fn func(n *Node, depth int) bool) {
	for _, n := range d.Nodes {
		n.walk(fn, 0)
	}
}

func (n *Node) walk(fn func(n *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// LineKind is the semantic kind of a line. It is one of *TextLine,
// *TableLine, *CodeBlock, *DisplayMath, *DotGraph or *Image.
type LineKind interface {
	lineKind()
}

// TextLine is a line of running text, maybe with a bullet and a task prefix.
type TextLine struct {
	Bullet  BulletType
	Task    *TaskPrefix
	Content []Inline
}

// HasTag reports whether the line contains the tag %name.
func (t *TextLine) HasTag(name string) bool {
	for _, in := range t.Content {
		if in.Kind == TagInline && in.Text == name {
			return true
		}
	}
	return false
}

// FoldTag is the tag that makes a line collapsible, hiding its children.
const FoldTag = "-fold"

// IsFold reports whether the line should be rendered collapsed with its children inside.
func (t *TextLine) IsFold() bool {
	return t.HasTag(FoldTag)
}

// TableLine is a table. Columns is the number of cells in every row.
type TableLine struct {
	Columns int
	Items   []TableItem
}

// TableItem is either a row of cells or a separator.
type TableItem struct {
	Separator bool
	Cells     [][]Inline
}

// CodeBlock is a block of code, already de-indented.
// Lang is empty when the language was not given.
type CodeBlock struct {
	Lang string
	Code string
}

// DisplayMath is a formula on its own line.
type DisplayMath struct {
	Math string
}

// DotGraph is a graph description in the Graphviz DOT language.
type DotGraph struct {
	Source string
}

// Image is an image with an optional caption.
type Image struct {
	Caption []Inline
	URL     string
}

func (*TextLine) lineKind()    {}
func (*TableLine) lineKind()   {}
func (*CodeBlock) lineKind()   {}
func (*DisplayMath) lineKind() {}
func (*DotGraph) lineKind()    {}
func (*Image) lineKind()       {}

// An InlineKind is the kind of an Inline.
type InlineKind uint32

const (
	ErrorInline InlineKind = iota
	SpaceInline
	WordInline
	TagInline
	URLInline
	MathInline
	CodeInline
	BoldInline
	ItalicsInline
	// RefInline shows Content and links to Target
	RefInline
)

func (k InlineKind) String() string {
	switch k {
	case ErrorInline:
		return "Error"
	case SpaceInline:
		return "Space"
	case WordInline:
		return "Word"
	case TagInline:
		return "Tag"
	case URLInline:
		return "URL"
	case MathInline:
		return "Math"
	case CodeInline:
		return "Code"
	case BoldInline:
		return "Bold"
	case ItalicsInline:
		return "Italics"
	case RefInline:
		return "Ref"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

// Inline is a unit of classified text. Function calls and lists do not exist
// at this level: they have been resolved into line kinds, code or references.
type Inline struct {
	Kind    InlineKind
	Text    string
	Content []Inline
	Target  string
}

// PlainText returns the text of a sequence of inlines, without any markup.
func PlainText(ins []Inline) string {
	var b []byte
	for _, in := range ins {
		switch in.Kind {
		case SpaceInline:
			b = append(b, ' ')
		case TagInline:
			b = append(b, '%')
			b = append(b, in.Text...)
		case RefInline:
			b = append(b, PlainText(in.Content)...)
		default:
			b = append(b, in.Text...)
		}
	}
	return string(b)
}

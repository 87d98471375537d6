// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package dump writes a classified document as indented plain text, for debugging.
package dump

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/hesusruiz/acrylic/acrylic"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Each level of the tree is indented this many spaces.
const indentWidth = 2

// Options for the dump. A Width of zero disables wrapping.
type Options struct {
	Width int
}

// Write dumps the document to w.
func Write(w io.Writer, doc *acrylic.Document, opts Options) error {
	_, err := io.WriteString(w, String(doc, opts))
	return err
}

// String returns the dump of the document.
func String(doc *acrylic.Document, opts Options) string {
	var b strings.Builder

	b.WriteString("title: " + strconv.Quote(doc.Options.Title) + "\n")
	b.WriteString("indent: " + doc.Options.Indent.String() + "\n")
	b.WriteString("tags:")
	for _, tag := range doc.Options.Tags {
		b.WriteString(" " + tag)
	}
	b.WriteString("\n")

	keys := make([]string, 0, len(doc.Header))
	for k := range doc.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("header " + k + ": " + strconv.Quote(doc.Header[k]) + "\n")
	}

	doc.Walk(func(n *acrylic.Node, depth int) bool {
		b.WriteString(node(n, depth, opts.Width))
		return true
	})

	return b.String()
}

// node returns the description of a node, indented for its depth.
func node(n *acrylic.Node, depth int, width int) string {
	text := Line(n.Line)
	if n.BottomSpacing {
		text += "\n(spacing)"
	}

	margin := depth * indentWidth
	if width > 0 && width-margin > 0 {
		text = wordwrap.String(text, width-margin)
	}

	return indent.String(text, uint(margin)) + "\n"
}

// Line describes a classified line. Blocks take several lines,
// with their contents behind a "| " margin.
func Line(line acrylic.LineKind) string {
	switch l := line.(type) {
	case *acrylic.TextLine:
		head := "text"
		if l.Bullet != acrylic.NoBullet {
			head += " bullet=" + l.Bullet.String()
		}
		if l.Task != nil {
			head += " task=" + l.Task.State.String() + "," + l.Task.Format.String()
		}
		return head + ": " + Inlines(l.Content)

	case *acrylic.DisplayMath:
		return "math: " + strconv.Quote(l.Math)

	case *acrylic.CodeBlock:
		head := "code"
		if len(l.Lang) > 0 {
			head += " lang=" + l.Lang
		}
		return head + quoteLines(l.Code)

	case *acrylic.DotGraph:
		return "dot" + quoteLines(l.Source)

	case *acrylic.Image:
		s := "image " + strconv.Quote(l.URL)
		if len(l.Caption) > 0 {
			s += ": " + Inlines(l.Caption)
		}
		return s

	case *acrylic.TableLine:
		var b strings.Builder
		b.WriteString("table columns=" + strconv.Itoa(l.Columns))
		for _, item := range l.Items {
			if item.Separator {
				b.WriteString("\n| ---")
				continue
			}
			b.WriteString("\n|")
			for _, c := range item.Cells {
				b.WriteString(" " + Inlines(c) + " |")
			}
		}
		return b.String()
	}

	return fmt.Sprintf("unknown %T", line)
}

func quoteLines(s string) string {
	var b strings.Builder
	for _, l := range strings.Split(s, "\n") {
		b.WriteString("\n| ")
		b.WriteString(l)
	}
	return b.String()
}

// Inlines describes a sequence of inlines like [Word("a") Space Code("b")].
func Inlines(ins []acrylic.Inline) string {
	parts := make([]string, 0, len(ins))
	for _, in := range ins {
		parts = append(parts, inline(in))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func inline(in acrylic.Inline) string {
	switch in.Kind {
	case acrylic.SpaceInline:
		return "Space"
	case acrylic.RefInline:
		return "Ref(" + Inlines(in.Content) + ", " + strconv.Quote(in.Target) + ")"
	}
	return in.Kind.String() + "(" + strconv.Quote(in.Text) + ")"
}

// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package html writes acrylic documents as HTML pages.
package html

import (
	"context"
	"fmt"
	"strings"

	"github.com/hesusruiz/acrylic/acrylic"
	"github.com/hesusruiz/acrylic/sliceedit"
	"go.uber.org/zap"
)

// Each level of nesting moves the node this much to the right.
const spacePerIndentEm = 1.25

// Options configures a Renderer. The zero value is usable, except for
// documents with graphs, which need Graphs.
type Options struct {
	// KatexPath is the location of katex.min.css and katex.min.js, a relative path or an URL prefix
	KatexPath string

	// CodeStyle is the chroma style for code blocks
	CodeStyle string

	// Template is the page skeleton, DefaultTemplate if empty
	Template []byte

	Graphs GraphRenderer

	Log *zap.SugaredLogger
}

type Renderer struct {
	opts Options
	log  *zap.SugaredLogger
}

func NewRenderer(opts Options) *Renderer {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if len(opts.Template) == 0 {
		opts.Template = []byte(DefaultTemplate)
	}
	return &Renderer{opts: opts, log: log}
}

// RenderPage returns the complete HTML page for the document.
func (r *Renderer) RenderPage(ctx context.Context, doc *acrylic.Document) ([]byte, error) {
	body, err := r.RenderBody(ctx, doc)
	if err != nil {
		return nil, err
	}

	head := &ByteRenderer{}
	r.renderHead(head, doc)

	// All the edits refer to the original template
	b := sliceedit.NewBuffer(r.opts.Template)
	b.ReplaceAllString(HeadPlaceholder, string(head.Bytes()))
	b.ReplaceAllString(ContentPlaceholder, string(body))

	vars := map[string]string{TitlePlaceholder: Escape(doc.Options.Title)}
	for key, value := range doc.Header {
		vars["{#"+key+"}"] = Escape(value)
	}
	b.ReplaceMap(vars)

	return b.Bytes(), nil
}

func (r *Renderer) renderHead(br *ByteRenderer, doc *acrylic.Document) {
	br.Renderln(headerMetaTags)

	br.Render("<title>")
	br.Text(doc.Options.Title)
	br.Renderln("</title>")

	prefix := r.opts.KatexPath
	if len(prefix) > 0 && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	br.Render(`<link rel="stylesheet" href="`)
	br.Text(prefix + "katex.min.css")
	br.Renderln(`"/>`)
	br.Render(`<script src="`)
	br.Text(prefix + "katex.min.js")
	br.Renderln(`" defer="true"></script>`)
	br.Renderln("<script>", katexInitJS, "</script>")

	br.Renderln("<style>", DefaultStyle, "</style>")
}

// RenderBody returns the HTML of the document, without the page skeleton.
func (r *Renderer) RenderBody(ctx context.Context, doc *acrylic.Document) ([]byte, error) {
	br := &ByteRenderer{}

	if len(doc.Options.Title) > 0 {
		br.Render("<h1>")
		br.Text(doc.Options.Title)
		br.Renderln("</h1>")
	}

	for _, n := range doc.Nodes {
		if err := r.renderNode(ctx, br, n, 0); err != nil {
			return nil, err
		}
	}

	r.log.Debugw("html rendered", "bytes", br.Len())

	return br.Bytes(), nil
}

func indentStyle(depth int) string {
	if depth == 0 {
		return ""
	}
	return fmt.Sprintf(` style="margin-left: %.2fem"`, float64(depth)*spacePerIndentEm)
}

func (r *Renderer) renderNode(ctx context.Context, br *ByteRenderer, n *acrylic.Node, depth int) error {
	style := indentStyle(depth)

	renderChildren := func() error {
		for _, c := range n.Children {
			if err := r.renderNode(ctx, br, c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	switch line := n.Line.(type) {
	case *acrylic.TextLine:
		if line.IsFold() {
			br.Render("<details><summary", style, ">")
			r.renderTextLine(br, line)
			br.Renderln("</summary>")
			if err := renderChildren(); err != nil {
				return err
			}
			br.Renderln("</details>")
			break
		}

		br.Render("<p", style, ">")
		r.renderTextLine(br, line)
		br.Renderln("</p>")
		if err := renderChildren(); err != nil {
			return err
		}

	default:
		if err := r.renderBlock(ctx, br, n, style); err != nil {
			return err
		}
		if err := renderChildren(); err != nil {
			return err
		}
	}

	if n.BottomSpacing {
		br.Renderln(`<div class="acr-spacing"></div>`)
	}

	return nil
}

// renderBlock writes the lines that are not text.
func (r *Renderer) renderBlock(ctx context.Context, br *ByteRenderer, n *acrylic.Node, style string) error {
	switch line := n.Line.(type) {
	case *acrylic.DisplayMath:
		br.Render("<p", style, `><span class="katex-display">`)
		br.Text(line.Math)
		br.Renderln("</span></p>")

	case *acrylic.CodeBlock:
		br.Render("<pre", style, "><code>")
		code, err := highlight(line.Lang, line.Code, r.opts.CodeStyle)
		if err != nil {
			r.log.Warnw("code not highlighted", "line", n.Number, "error", err)
			br.Text(line.Code)
		} else {
			br.Render(code)
		}
		br.Renderln("</code></pre>")

	case *acrylic.DotGraph:
		if r.opts.Graphs == nil {
			return fmt.Errorf("line %d: %w", n.Number, ErrNoGraphRenderer)
		}
		svg, err := r.opts.Graphs.RenderGraph(ctx, line.Source)
		if err != nil {
			return fmt.Errorf("line %d: rendering graph: %w", n.Number, err)
		}
		br.Render(`<div class="acr-graph"`, style, ">")
		br.Render(svg)
		br.Renderln("</div>")

	case *acrylic.TableLine:
		r.renderTable(br, line, style)

	case *acrylic.Image:
		br.Render(`<figure class="acr-figure"`, style, `><img src="`)
		br.Text(line.URL)
		br.Render(`" alt="`)
		br.Text(acrylic.PlainText(line.Caption))
		br.Render(`"/>`)
		if len(line.Caption) > 0 {
			br.Render("<figcaption>")
			r.renderInlines(br, line.Caption)
			br.Render("</figcaption>")
		}
		br.Renderln("</figure>")

	default:
		return fmt.Errorf("line %d: unknown line kind %T", n.Number, n.Line)
	}

	return nil
}

// renderTable writes the rows before the first separator as the table header,
// when there is a separator. Each later separator starts a new table body.
func (r *Renderer) renderTable(br *ByteRenderer, t *acrylic.TableLine, style string) {
	hasSeparator := false
	for _, item := range t.Items {
		if item.Separator {
			hasSeparator = true
			break
		}
	}

	cell := "td"
	if hasSeparator {
		cell = "th"
	}

	br.Renderln(`<table class="acr-table"`, style, ">")
	if hasSeparator {
		br.Renderln("<thead>")
	} else {
		br.Renderln("<tbody>")
	}

	seenSeparator := false
	for _, item := range t.Items {
		if item.Separator {
			if seenSeparator {
				br.Renderln("</tbody>")
			} else {
				br.Renderln("</thead>")
			}
			br.Renderln("<tbody>")
			seenSeparator = true
			cell = "td"
			continue
		}

		br.Render("<tr>")
		for _, c := range item.Cells {
			br.Render("<", cell, ">")
			r.renderInlines(br, c)
			br.Render("</", cell, ">")
		}
		br.Renderln("</tr>")
	}

	br.Renderln("</tbody>")
	br.Renderln("</table>")
}

func (r *Renderer) renderTextLine(br *ByteRenderer, line *acrylic.TextLine) {
	switch line.Bullet {
	case acrylic.DashBullet:
		br.Render("- ")
	case acrylic.StarBullet:
		br.Render("&bull; ")
	}

	if line.Task == nil {
		r.renderInlines(br, line.Content)
		return
	}

	switch line.Task.State {
	case acrylic.TaskTodo:
		br.Render(`<input type="checkbox" disabled/> `)
		r.renderInlines(br, line.Content)
	case acrylic.TaskDone:
		br.Render(`<input type="checkbox" disabled checked/> `)
		r.renderInlines(br, line.Content)
	case acrylic.TaskCancelled:
		br.Render(`<input type="checkbox" disabled checked/> <s>`)
		r.renderInlines(br, line.Content)
		br.Render("</s>")
	}
}

func (r *Renderer) renderInlines(br *ByteRenderer, ins []acrylic.Inline) {
	for _, in := range ins {
		switch in.Kind {
		case acrylic.SpaceInline:
			br.Render(" ")
		case acrylic.WordInline:
			br.Text(in.Text)
		case acrylic.TagInline:
			br.Render(`<span class="acr-tag">%`)
			br.Text(in.Text)
			br.Render("</span>")
		case acrylic.URLInline:
			br.Render(`<a href="`)
			br.Text(in.Text)
			br.Render(`">`)
			br.Text(in.Text)
			br.Render("</a>")
		case acrylic.MathInline:
			br.Render(`<span class="katex-inline">`)
			br.Text(in.Text)
			br.Render("</span>")
		case acrylic.CodeInline:
			br.Render(`<code class="acr-inline-code">`)
			br.Text(in.Text)
			br.Render("</code>")
		case acrylic.BoldInline:
			br.Render("<b>")
			br.Text(in.Text)
			br.Render("</b>")
		case acrylic.ItalicsInline:
			br.Render("<i>")
			br.Text(in.Text)
			br.Render("</i>")
		case acrylic.RefInline:
			br.Render(`<a class="acr-href" href="`)
			br.Text(in.Target)
			br.Render(`">`)
			r.renderInlines(br, in.Content)
			br.Render("</a>")
		}
	}
}

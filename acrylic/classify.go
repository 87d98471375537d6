// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"strings"
)

// TableSeparator is the word separating groups of rows in a table.
const TableSeparator = "---"

// Classify is the third stage: it gives each node of the tree its meaning.
func (p *Parser) Classify(tree *TreeDocument) (*Document, error) {
	doc := &Document{
		Header:  tree.Header,
		Options: tree.Options,
	}

	for _, raw := range tree.Nodes {
		n, err := p.classifyNode(raw)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	p.log.Debugw("document classified", "file", p.fileName, "topLevelNodes", len(doc.Nodes))

	return doc, nil
}

func (p *Parser) classifyNode(raw *RawNode) (*Node, error) {
	line, err := p.classifyLine(raw.Number, raw.Contents)
	if err != nil {
		return nil, err
	}

	n := &Node{
		Number:        raw.Number,
		Line:          line,
		BottomSpacing: raw.BottomSpacing,
	}

	for _, child := range raw.Children {
		c, err := p.classifyNode(child)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}

	return n, nil
}

func (p *Parser) classifyLine(number int, terms []Term) (LineKind, error) {
	for len(terms) > 0 && terms[0].Kind == SpaceTerm {
		terms = terms[1:]
	}

	if len(terms) > 0 {
		first := terms[0]

		if first.Kind == DisplayMathTerm {
			if err := p.checkAlone(number, terms, "display math"); err != nil {
				return nil, err
			}
			return &DisplayMath{Math: first.Text}, nil
		}

		if first.Kind == FuncCallTerm && isLineFunction(first.Text) {
			if err := p.checkAlone(number, terms, "@"+first.Text); err != nil {
				return nil, err
			}
			switch first.Text {
			case FuncCode:
				return p.classifyCode(number, first)
			case FuncDot:
				return p.classifyDot(number, first)
			case FuncTable:
				return p.classifyTable(number, first)
			case FuncImage:
				return p.classifyImage(number, first)
			}
		}
	}

	text := &TextLine{}

	if len(terms) > 0 && terms[0].Kind == BulletTerm {
		text.Bullet = terms[0].Bullet
		terms = terms[1:]
	}
	if len(terms) > 0 && terms[0].Kind == TaskTerm {
		task := terms[0].Task
		text.Task = &task
		terms = terms[1:]
	}

	content, err := p.reduce(number, terms)
	if err != nil {
		return nil, err
	}
	text.Content = content

	return text, nil
}

// checkAlone fails if the line has anything after its first term.
func (p *Parser) checkAlone(number int, terms []Term, what string) error {
	for _, t := range terms[1:] {
		if t.Kind != SpaceTerm {
			return nodeError(p.fileName, number, ErrUnexpectedTerm, "%s must be alone in its line, found %s", what, t)
		}
	}
	return nil
}

func (p *Parser) classifyCode(number int, t Term) (LineKind, error) {
	if len(t.Args) != 1 && len(t.Args) != 2 {
		return nil, nodeError(p.fileName, number, ErrArity, "@%s expects 1 or 2 arguments, got %d", t.Text, len(t.Args))
	}

	block := &CodeBlock{}

	if len(t.Args) == 2 {
		lang, err := p.stringify(number, t.Text, t.Args[0])
		if err != nil {
			return nil, err
		}
		block.Lang = strings.TrimSpace(lang)
	}

	code, err := p.stringify(number, t.Text, t.Args[len(t.Args)-1])
	if err != nil {
		return nil, err
	}
	block.Code = dedent(code)

	return block, nil
}

func (p *Parser) classifyDot(number int, t Term) (LineKind, error) {
	if len(t.Args) != 1 {
		return nil, nodeError(p.fileName, number, ErrArity, "@%s expects 1 argument, got %d", t.Text, len(t.Args))
	}

	src, err := p.stringify(number, t.Text, t.Args[0])
	if err != nil {
		return nil, err
	}

	return &DotGraph{Source: src}, nil
}

// classifyTable reads rows written as lists, {a}{b}, and "---" separators.
// Every row must have as many cells as the first one.
func (p *Parser) classifyTable(number int, t Term) (LineKind, error) {
	if len(t.Args) != 1 {
		return nil, nodeError(p.fileName, number, ErrArity, "@%s expects 1 argument, got %d", t.Text, len(t.Args))
	}

	table := &TableLine{}
	firstRow := true

	for _, term := range t.Args[0] {
		switch {
		case term.Kind == SpaceTerm:
			continue

		case term.Kind == WordTerm && term.Text == TableSeparator:
			table.Items = append(table.Items, TableItem{Separator: true})

		case term.Kind == ListTerm:
			row := TableItem{}
			for _, cell := range term.Args {
				content, err := p.reduce(number, bracedWords(cell))
				if err != nil {
					return nil, err
				}
				row.Cells = append(row.Cells, trimSpaces(content))
			}

			if firstRow {
				table.Columns = len(row.Cells)
				firstRow = false
			} else if len(row.Cells) != table.Columns {
				return nil, nodeError(p.fileName, number, ErrTableWidth,
					"expected %d cells, got %d", table.Columns, len(row.Cells))
			}

			table.Items = append(table.Items, row)

		default:
			return nil, nodeError(p.fileName, number, ErrUnexpectedTerm, "in @%s, found %s", t.Text, term)
		}
	}

	return table, nil
}

func (p *Parser) classifyImage(number int, t Term) (LineKind, error) {
	img := &Image{}

	var urlArg []Term
	switch len(t.Args) {
	case 1:
		urlArg = t.Args[0]
	case 2:
		caption, err := p.reduce(number, bracedWords(t.Args[0]))
		if err != nil {
			return nil, err
		}
		img.Caption = trimSpaces(caption)
		urlArg = t.Args[1]
	default:
		return nil, nodeError(p.fileName, number, ErrArity, "@%s expects 1 or 2 arguments, got %d", t.Text, len(t.Args))
	}

	url, err := p.stringify(number, t.Text, urlArg)
	if err != nil {
		return nil, err
	}
	img.URL = strings.TrimSpace(url)

	return img, nil
}

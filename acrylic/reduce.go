// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"strings"
)

// The reserved function names
const (
	FuncCode  = "code"
	FuncDot   = "dot"
	FuncTable = "table"
	FuncImage = "image"
	FuncC     = "c"
	FuncRef   = "ref"
)

// isLineFunction reports whether the function can only be the whole content of a line.
func isLineFunction(name string) bool {
	switch name {
	case FuncCode, FuncDot, FuncTable, FuncImage:
		return true
	}
	return false
}

// reduce converts the terms of a line, a table cell or an argument into inlines.
// number is the source line, for error messages.
//
// Consecutive words and delimiters are joined in a single word, which then
// becomes a URL if it looks like one.
func (p *Parser) reduce(number int, terms []Term) ([]Inline, error) {
	var out []Inline
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		text := word.String()
		word.Reset()
		if isURL(text) {
			out = append(out, Inline{Kind: URLInline, Text: text})
		} else {
			out = append(out, Inline{Kind: WordInline, Text: text})
		}
	}

	for _, t := range terms {
		switch t.Kind {
		case WordTerm, DelimTerm:
			word.WriteString(t.Text)
			continue
		}

		flush()

		switch t.Kind {
		case SpaceTerm:
			out = append(out, Inline{Kind: SpaceInline})
		case TagTerm:
			out = append(out, Inline{Kind: TagInline, Text: t.Text})
		case URLTerm:
			out = append(out, Inline{Kind: URLInline, Text: t.Text})
		case InlineMathTerm:
			out = append(out, Inline{Kind: MathInline, Text: t.Text})
		case InlineCodeTerm:
			out = append(out, Inline{Kind: CodeInline, Text: t.Text})
		case InlineBoldTerm:
			out = append(out, Inline{Kind: BoldInline, Text: t.Text})
		case InlineItalicsTerm:
			out = append(out, Inline{Kind: ItalicsInline, Text: t.Text})

		case FuncCallTerm:
			in, err := p.reduceCall(number, t)
			if err != nil {
				return nil, err
			}
			out = append(out, in)

		default:
			return nil, nodeError(p.fileName, number, ErrUnexpectedTerm, "%s", t)
		}
	}

	flush()

	return out, nil
}

// reduceCall handles the functions allowed in the middle of text.
func (p *Parser) reduceCall(number int, t Term) (Inline, error) {
	switch {
	case t.Text == FuncC:
		if len(t.Args) != 1 {
			return Inline{}, nodeError(p.fileName, number, ErrArity, "@%s expects 1 argument, got %d", t.Text, len(t.Args))
		}
		code, err := p.stringify(number, t.Text, t.Args[0])
		if err != nil {
			return Inline{}, err
		}
		return Inline{Kind: CodeInline, Text: code}, nil

	case t.Text == FuncRef:
		return p.reduceRef(number, t)

	case isLineFunction(t.Text):
		return Inline{}, nodeError(p.fileName, number, ErrMisplacedFunction, "@%s", t.Text)
	}

	return Inline{}, nodeError(p.fileName, number, ErrUnknownFunction, "@%s", t.Text)
}

// reduceRef handles @ref{target} and @ref{content}{target}.
func (p *Parser) reduceRef(number int, t Term) (Inline, error) {
	switch len(t.Args) {
	case 1:
		target, err := p.stringify(number, t.Text, t.Args[0])
		if err != nil {
			return Inline{}, err
		}
		target = strings.TrimSpace(target)
		return Inline{
			Kind:    RefInline,
			Content: []Inline{{Kind: WordInline, Text: target}},
			Target:  target,
		}, nil

	case 2:
		content, err := p.reduce(number, bracedWords(t.Args[0]))
		if err != nil {
			return Inline{}, err
		}
		target, err := p.stringify(number, t.Text, t.Args[1])
		if err != nil {
			return Inline{}, err
		}
		return Inline{
			Kind:    RefInline,
			Content: trimSpaces(content),
			Target:  strings.TrimSpace(target),
		}, nil
	}

	return Inline{}, nodeError(p.fileName, number, ErrArity, "@%s expects 1 or 2 arguments, got %d", t.Text, len(t.Args))
}

// stringify returns the plain text of an argument made only of spaces,
// words and delimiters. Lists inside the argument are written back with
// their braces, so balanced braces in code survive.
func (p *Parser) stringify(number int, fn string, terms []Term) (string, error) {
	var b strings.Builder
	if err := p.stringifyTo(&b, number, fn, terms); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (p *Parser) stringifyTo(b *strings.Builder, number int, fn string, terms []Term) error {
	for _, t := range terms {
		switch t.Kind {
		case SpaceTerm, WordTerm, DelimTerm:
			b.WriteString(t.Text)
		case ListTerm:
			for _, item := range t.Args {
				b.WriteByte('{')
				if err := p.stringifyTo(b, number, fn, item); err != nil {
					return err
				}
				b.WriteByte('}')
			}
		default:
			return nodeError(p.fileName, number, ErrNotStringifiable, "@%s: found %s", fn, t)
		}
	}
	return nil
}

// bracedWords writes the lists of an argument back as braces around their
// items, so {x} inside a caption or a reference reads like it does in text.
func bracedWords(terms []Term) []Term {
	var out []Term
	for _, t := range terms {
		if t.Kind != ListTerm {
			out = append(out, t)
			continue
		}
		for _, item := range t.Args {
			out = append(out, Term{Kind: DelimTerm, Text: "{"})
			out = append(out, bracedWords(item)...)
			out = append(out, Term{Kind: DelimTerm, Text: "}"})
		}
	}
	return out
}

// trimSpaces removes the leading and trailing spaces of a sequence of inlines.
func trimSpaces(ins []Inline) []Inline {
	for len(ins) > 0 && ins[0].Kind == SpaceInline {
		ins = ins[1:]
	}
	for len(ins) > 0 && ins[len(ins)-1].Kind == SpaceInline {
		ins = ins[:len(ins)-1]
	}
	return ins
}

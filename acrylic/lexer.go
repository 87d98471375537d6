// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"strings"
)

// DefaultMaxNesting is the default limit for nested function arguments and
// for indentation levels.
const DefaultMaxNesting = 128

// lexer recognises terms starting at a cursor position.
//
// Every production works on a copy of the cursor and only writes it back on
// success. A production that does not match returns ok == false and leaves
// the cursor where it was. Errors are returned only when the input can not
// be anything else, like an inline code span that is never closed.
//
// depth is zero when lexing a line, and the nesting level of function
// arguments otherwise. Inside arguments newlines are whitespace and a bare
// '{' starts a list.
type lexer struct {
	maxNesting int
}

type symmetricDelimiter struct {
	delim rune
	kind  TermKind
}

var symmetricDelimiters = []symmetricDelimiter{
	{'`', InlineCodeTerm},
	{'*', InlineBoldTerm},
	{'_', InlineItalicsTerm},
}

type mathForm struct {
	prefix  string
	braced  bool
	kind    TermKind
	display bool
}

// The order matters: "$$" must be tried after the inline forms have failed on it.
var mathForms = []mathForm{
	{"${", true, InlineMathTerm, false},
	{"$:", false, InlineMathTerm, false},
	{"$${", true, DisplayMathTerm, true},
	{"$$:", false, DisplayMathTerm, true},
}

// term returns the next term at c, trying every kind in priority order.
func (lx *lexer) term(c *Cursor, depth int) (Term, bool, error) {
	multiline := depth > 0

	for {
		if t, ok := lexWhitespace(c, multiline); ok {
			return t, true, nil
		}

		// Comments are discarded, and we try again after them
		if lexComment(c) {
			continue
		}

		for _, sd := range symmetricDelimiters {
			t, ok, err := lexSymmetric(c, sd.delim, sd.kind)
			if err != nil || ok {
				return t, ok, err
			}
		}

		if t, ok := lexTag(c); ok {
			return t, true, nil
		}

		if t, ok, err := lx.listOrCall(c, depth); err != nil || ok {
			return t, ok, err
		}

		if multiline && c.peekIs('{') {
			return lx.bareList(c, depth)
		}

		for _, mf := range mathForms {
			t, ok, err := lexMath(c, mf, multiline)
			if err != nil || ok {
				return t, ok, err
			}
		}

		if t, ok := lexDelim(c); ok {
			return t, true, nil
		}

		return lexWordPart(c)
	}
}

func lexWhitespace(c *Cursor, multiline bool) (Term, bool) {
	pred := isInlineWhitespace
	if multiline {
		pred = isArgWhitespace
	}
	ws := c.Collect(pred)
	if len(ws) == 0 {
		return Term{}, false
	}
	return Term{Kind: SpaceTerm, Text: ws}, true
}

// lexComment skips a "%%" comment up to the end of the line, without consuming the newline.
func lexComment(c *Cursor) bool {
	if !c.hasPrefix("%%") {
		return false
	}
	c.Collect(func(r rune) bool { return r != '\n' })
	return true
}

func lexTag(c *Cursor) (Term, bool) {
	p := *c
	if !p.ExpectAndSkip('%') {
		return Term{}, false
	}
	name, ok := p.CollectAtLeast(1, isTagChar)
	if !ok {
		return Term{}, false
	}
	*c = p
	return Term{Kind: TagTerm, Text: name}, true
}

func lexDelim(c *Cursor) (Term, bool) {
	r, ok := c.Peek()
	if !ok || !isBracket(r) {
		return Term{}, false
	}
	c.Step()
	return Term{Kind: DelimTerm, Text: string(r)}, true
}

// lexSymmetric parses `code`, *bold* and _italics_.
// The opening delimiter followed by whitespace or the end of the line is not a delimiter.
func lexSymmetric(c *Cursor, delim rune, kind TermKind) (Term, bool, error) {
	p := *c
	if !p.ExpectAndSkip(delim) {
		return Term{}, false, nil
	}
	if r, ok := p.Peek(); !ok || isArgWhitespace(r) {
		return Term{}, false, nil
	}

	var b strings.Builder
	for {
		r, ok := p.Peek()
		switch {
		case !ok || r == '\n':
			return Term{}, false, errAt(*c, ErrUnterminated, "(delimiter %q)", delim)

		case r == delim:
			p.Step()
			*c = p
			return Term{Kind: kind, Text: b.String()}, true, nil

		case r == '\\':
			q := p
			q.Step()
			e, ok := q.Peek()
			if !ok || e == '\n' {
				return Term{}, false, errAt(*c, ErrUnterminated, "(delimiter %q) line ended after a backslash", delim)
			}
			if e != delim && !isEscapable(e) {
				return Term{}, false, errAt(p, ErrInvalidEscape, "(delimiter %q) \\%c", delim, e)
			}
			b.WriteRune(e)
			q.Step()
			p = q

		default:
			b.WriteRune(r)
			p.Step()
		}
	}
}

// lexMath parses the four math forms. The braced forms end at the matching
// '}'. The colon forms end at the end of the line, or inside arguments just
// before a '}' that closes the argument.
// Escapes are kept verbatim for the math renderer.
func lexMath(c *Cursor, mf mathForm, multiline bool) (Term, bool, error) {
	p := *c
	if !p.hasPrefix(mf.prefix) {
		return Term{}, false, nil
	}
	for range mf.prefix {
		p.Step()
	}

	depth := 0
	if mf.braced {
		depth = 1
	}

	var b strings.Builder
	for {
		r, ok := p.Peek()

		if !ok || (r == '\n' && !(mf.braced && multiline)) {
			if mf.braced {
				return Term{}, false, errAt(*c, ErrMismatchedBrackets, "(math) missing '}'")
			}
			break
		}

		if r == '}' && depth == 0 {
			// Only reachable in the colon forms
			if multiline {
				break
			}
			b.WriteRune(r)
			p.Step()
			continue
		}

		if r == '}' {
			depth--
			p.Step()
			if depth == 0 && mf.braced {
				break
			}
			b.WriteRune(r)
			continue
		}

		if r == '{' {
			depth++
		}

		if r == '\\' {
			q := p
			q.Step()
			e, ok := q.Peek()
			if !ok || e == '\n' {
				return Term{}, false, errAt(*c, ErrUnterminated, "(math) line ended after a backslash")
			}
			b.WriteRune('\\')
			b.WriteRune(e)
			q.Step()
			p = q
			continue
		}

		b.WriteRune(r)
		p.Step()
	}

	*c = p
	return Term{Kind: mf.kind, Text: b.String()}, true, nil
}

// lexWordPart parses a maximal run of word characters, resolving escapes.
func lexWordPart(c *Cursor) (Term, bool, error) {
	p := *c
	var b strings.Builder

	for first := true; ; first = false {
		r, ok := p.Peek()
		if !ok {
			break
		}

		if r == '\\' {
			q := p
			q.Step()
			e, ok := q.Peek()
			if !ok || e == '\n' {
				return Term{}, false, errAt(p, ErrInvalidEscape, "line ended after a backslash")
			}
			if !isEscapable(e) {
				return Term{}, false, errAt(p, ErrInvalidEscape, "\\%c", e)
			}
			b.WriteRune(e)
			q.Step()
			p = q
			continue
		}

		if isWordChar(r) || (first && isLiteralStarter(r)) {
			b.WriteRune(r)
			p.Step()
			continue
		}

		break
	}

	if b.Len() == 0 {
		return Term{}, false, nil
	}

	*c = p
	return Term{Kind: WordTerm, Text: b.String()}, true, nil
}

// listOrCall parses "@name" followed by one or more arguments. Without a name
// the result is a list. Without arguments nothing matches, and the '@' is
// left to be read as part of a word.
func (lx *lexer) listOrCall(c *Cursor, depth int) (Term, bool, error) {
	p := *c
	if !p.ExpectAndSkip('@') {
		return Term{}, false, nil
	}

	name := lexIdent(&p)

	if depth+1 > lx.maxNesting {
		if r, ok := p.Peek(); ok && (r == '{' || r == '(' || r == '#') {
			return Term{}, false, errAt(*c, ErrTooDeep, "more than %d nested arguments", lx.maxNesting)
		}
	}

	var args [][]Term
	for {
		arg, ok, err := lx.argument(&p, depth+1)
		if err != nil {
			return Term{}, false, err
		}
		if !ok {
			break
		}
		args = append(args, arg)
	}

	if len(args) == 0 {
		return Term{}, false, nil
	}

	*c = p
	if len(name) == 0 {
		return Term{Kind: ListTerm, Args: args}, true, nil
	}
	return Term{Kind: FuncCallTerm, Text: name, Args: args}, true, nil
}

func lexIdent(c *Cursor) string {
	p := *c
	head, ok := p.CollectAtLeast(1, isASCIILetter)
	if !ok {
		return ""
	}
	tail := p.Collect(isASCIIAlnum)
	*c = p
	return head + tail
}

// bareList parses consecutive "{...}" groups inside an argument as a list.
func (lx *lexer) bareList(c *Cursor, depth int) (Term, bool, error) {
	if depth+1 > lx.maxNesting {
		return Term{}, false, errAt(*c, ErrTooDeep, "more than %d nested arguments", lx.maxNesting)
	}

	p := *c
	var items [][]Term
	for p.peekIs('{') {
		item, _, err := lx.bracedArg(&p, depth+1, '{', '}')
		if err != nil {
			return Term{}, false, err
		}
		items = append(items, item)
	}

	*c = p
	return Term{Kind: ListTerm, Args: items}, true, nil
}

// argument parses one function argument in any of its three forms.
func (lx *lexer) argument(c *Cursor, depth int) ([]Term, bool, error) {
	switch r, _ := c.Peek(); r {
	case '{':
		return lx.bracedArg(c, depth, '{', '}')
	case '(':
		return lx.bracedArg(c, depth, '(', ')')
	case '#':
		return lexRawArg(c)
	}
	return nil, false, nil
}

// bracedArg parses "{...}" or "(...)". The contents are terms, and may span
// lines. Inside braces nested '{' open lists, so the closing '}' is always
// the matching one. Inside parens, nested '(' and ')' are counted.
func (lx *lexer) bracedArg(c *Cursor, depth int, open, close rune) ([]Term, bool, error) {
	p := *c
	if !p.ExpectAndSkip(open) {
		return nil, false, nil
	}

	terms := []Term{}
	nested := 0
	for {
		if nested == 0 && p.ExpectAndSkip(close) {
			*c = p
			return terms, true, nil
		}

		t, ok, err := lx.term(&p, depth)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, errAt(*c, ErrMismatchedBrackets, "missing %q", close)
		}

		if t.Kind == DelimTerm && open == '(' {
			switch t.Text {
			case "(":
				nested++
			case ")":
				nested--
			}
		}

		terms = append(terms, t)
	}
}

// lexRawArg parses "#{...}#", "##{...}##" and so on. The contents are copied
// verbatim, up to a '}' followed by as many '#' as the opening fence has.
func lexRawArg(c *Cursor) ([]Term, bool, error) {
	p := *c
	hashes := p.CountWhile(func(r rune) bool { return r == '#' })
	if hashes == 0 || !p.ExpectAndSkip('{') {
		return nil, false, nil
	}

	fence := "}" + strings.Repeat("#", hashes)
	end := strings.Index(p.Rest(), fence)
	if end < 0 {
		return nil, false, errAt(*c, ErrMismatchedBrackets, "missing %q", fence)
	}

	raw := p.Rest()[:end]
	for range raw + fence {
		p.Step()
	}

	*c = p
	return []Term{{Kind: WordTerm, Text: raw}}, true, nil
}

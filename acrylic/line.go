// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"errors"
	"fmt"
	"strings"
)

// ReadLine parses one logical line at the cursor.
// It returns ok == false, without error, at the end of the input.
//
// A line made only of whitespace is returned as a blank line, with no terms.
// Lines holding only a comment are skipped.
func (p *Parser) ReadLine(c *Cursor, opts *StandardOptions) (line Line, ok bool, err error) {
	if !opts.Indent.Tab && opts.Indent.Width <= 0 {
		return Line{}, false, &SyntaxError{
			Filename: p.fileName,
			Line:     c.Line(),
			Msg:      fmt.Sprintf("indent width %d: must be positive: %s", opts.Indent.Width, ErrBadConfig),
			Err:      ErrBadConfig,
		}
	}

	for {
		if c.AtEOF() {
			return Line{}, false, nil
		}

		rest := strings.TrimLeft(c.restOfLine(), " \t")

		if len(rest) == 0 {
			line = Line{Number: c.Line()}
			skipLine(c)
			return line, true, nil
		}

		if strings.HasPrefix(rest, "%%") {
			skipLine(c)
			continue
		}

		return p.readTerms(c, opts)
	}
}

// skipLine advances past the next newline, or to the end of the input.
func skipLine(c *Cursor) {
	c.Collect(func(r rune) bool { return r != '\n' })
	c.ExpectAndSkip('\n')
}

func (p *Parser) readTerms(c *Cursor, opts *StandardOptions) (Line, bool, error) {
	q := *c
	line := Line{Number: q.Line()}

	// Indentation
	if opts.Indent.Tab {
		line.Indent = q.CountWhile(func(r rune) bool { return r == '\t' })
	} else {
		count := q.CountWhile(func(r rune) bool { return r == ' ' })
		if count%opts.Indent.Width != 0 {
			return Line{}, false, p.lineError(q, nil, ErrBadIndent,
				"%d spaces is not divisible by indent size %d", count, opts.Indent.Width)
		}
		line.Indent = count / opts.Indent.Width
	}

	// Optional prefixes, only at the start of the line and in this order
	if t, ok := lexBulletPrefix(&q); ok {
		line.Terms = append(line.Terms, t)
	}
	if t, ok := lexTaskPrefix(&q); ok {
		line.Terms = append(line.Terms, t)
	}

	for {
		t, ok, err := p.lx.term(&q, 0)
		if err != nil {
			var le *lexError
			if errors.As(err, &le) {
				return Line{}, false, p.lexLineError(le, line.Terms)
			}
			return Line{}, false, err
		}
		if !ok {
			break
		}
		line.Terms = append(line.Terms, t)
	}

	q.CountWhile(isInlineWhitespace)
	for len(line.Terms) > 0 && line.Terms[len(line.Terms)-1].Kind == SpaceTerm {
		line.Terms = line.Terms[:len(line.Terms)-1]
	}

	if r, ok := q.Peek(); ok && r != '\n' {
		return Line{}, false, p.lineError(q, line.Terms, ErrTrailingContent, "unexpected %q", r)
	}
	q.ExpectAndSkip('\n')

	*c = q
	return line, true, nil
}

// lexBulletPrefix parses "- " or "* ", consuming the whitespace after the bullet.
func lexBulletPrefix(c *Cursor) (Term, bool) {
	p := *c
	var bullet BulletType
	switch r, _ := p.Next(); r {
	case '-':
		bullet = DashBullet
	case '*':
		bullet = StarBullet
	default:
		return Term{}, false
	}
	if p.CountWhile(isInlineWhitespace) == 0 {
		return Term{}, false
	}
	*c = p
	return Term{Kind: BulletTerm, Bullet: bullet}, true
}

// lexTaskPrefix parses "[ ]", "[x]", "[X]", "[-]" and the same with parens.
// The prefix must be followed by whitespace or the end of the line.
func lexTaskPrefix(c *Cursor) (Term, bool) {
	p := *c

	var format TaskFormat
	var end rune
	switch r, _ := p.Next(); r {
	case '[':
		format, end = SquareTask, ']'
	case '(':
		format, end = ParenTask, ')'
	default:
		return Term{}, false
	}

	var state TaskState
	switch r, _ := p.Next(); r {
	case ' ':
		state = TaskTodo
	case 'x', 'X':
		state = TaskDone
	case '-':
		state = TaskCancelled
	default:
		return Term{}, false
	}

	if !p.ExpectAndSkip(end) {
		return Term{}, false
	}

	if r, ok := p.Peek(); ok && r != '\n' && !isInlineWhitespace(r) {
		return Term{}, false
	}
	p.CountWhile(isInlineWhitespace)

	*c = p
	return Term{Kind: TaskTerm, Task: TaskPrefix{State: state, Format: format}}, true
}

// lineError builds a SyntaxError pointing at the cursor position.
func (p *Parser) lineError(at Cursor, parsed []Term, err error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Filename: p.fileName,
		Line:     at.Line(),
		Column:   at.Column(),
		Msg:      fmt.Sprintf(format, args...) + ": " + err.Error(),
		Excerpt:  p.sourceLine(at.Line()),
		Parsed:   parsed,
		Err:      err,
	}
}

func (p *Parser) lexLineError(le *lexError, parsed []Term) *SyntaxError {
	return &SyntaxError{
		Filename: p.fileName,
		Line:     le.line,
		Column:   le.column,
		Msg:      le.msg,
		Excerpt:  p.sourceLine(le.line),
		Parsed:   parsed,
		Err:      le.err,
	}
}

// sourceLine returns the text of a 1-based source line, for error excerpts.
func (p *Parser) sourceLine(n int) string {
	if n < 1 || n > len(p.lines) {
		return ""
	}
	return p.lines[n-1]
}

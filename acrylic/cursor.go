// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"strings"
	"unicode/utf8"
)

// Cursor is a position in the source text being parsed.
//
// A Cursor is a small value: copying it takes a snapshot of the position.
// Speculative parsing works on a copy and, only when the production matches,
// the copy is assigned back to the original cursor. A failed attempt simply
// drops its copy, so the original position is never partially modified.
type Cursor struct {
	src    string
	line   int
	column int
}

// NewCursor returns a cursor positioned at the start of src, at line 1, column 1.
func NewCursor(src string) Cursor {
	return Cursor{src: src, line: 1, column: 1}
}

// Line is the 1-based line of the rune under the cursor.
func (c Cursor) Line() int { return c.line }

// Column is the 1-based column of the rune under the cursor.
func (c Cursor) Column() int { return c.column }

// Rest returns the source text not yet consumed.
func (c Cursor) Rest() string { return c.src }

// AtEOF reports whether the whole source has been consumed.
func (c Cursor) AtEOF() bool { return len(c.src) == 0 }

// Peek returns the rune under the cursor without advancing.
// The boolean is false at end of input.
func (c Cursor) Peek() (rune, bool) {
	if len(c.src) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.src)
	return r, true
}

// peekIs reports whether the rune under the cursor is r.
func (c Cursor) peekIs(r rune) bool {
	got, ok := c.Peek()
	return ok && got == r
}

// Step advances one rune, updating line and column. It does nothing at end of input.
func (c *Cursor) Step() {
	if len(c.src) == 0 {
		return
	}
	r, size := utf8.DecodeRuneInString(c.src)
	if r == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.src = c.src[size:]
}

// Next returns the rune under the cursor and advances past it.
func (c *Cursor) Next() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.Step()
	return r, true
}

// ExpectAndSkip advances past the rune under the cursor only if it is expected.
func (c *Cursor) ExpectAndSkip(expected rune) bool {
	if !c.peekIs(expected) {
		return false
	}
	c.Step()
	return true
}

// CountWhile advances while pred holds and returns the number of runes skipped.
func (c *Cursor) CountWhile(pred func(rune) bool) int {
	n := 0
	for {
		r, ok := c.Peek()
		if !ok || !pred(r) {
			return n
		}
		c.Step()
		n++
	}
}

// Collect advances while pred holds and returns the runes skipped.
func (c *Cursor) Collect(pred func(rune) bool) string {
	start := c.src
	c.CountWhile(pred)
	return start[:len(start)-len(c.src)]
}

// CollectAtLeast is like Collect, but it only advances when at least n runes
// satisfy pred. Otherwise the cursor is left untouched and ok is false.
func (c *Cursor) CollectAtLeast(n int, pred func(rune) bool) (s string, ok bool) {
	p := *c
	s = p.Collect(pred)
	if utf8.RuneCountInString(s) < n {
		return "", false
	}
	*c = p
	return s, true
}

// hasPrefix reports whether the remaining source starts with prefix.
func (c Cursor) hasPrefix(prefix string) bool {
	return strings.HasPrefix(c.src, prefix)
}

// restOfLine returns the remaining text up to, but not including, the next newline.
func (c Cursor) restOfLine() string {
	if i := strings.IndexByte(c.src, '\n'); i >= 0 {
		return c.src[:i]
	}
	return c.src
}

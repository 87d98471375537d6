// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every error returned by the parser wraps one of them,
// so callers can check the category with errors.Is.
var (
	// Lexical errors
	ErrUnterminated       = errors.New("unterminated delimiter")
	ErrMismatchedBrackets = errors.New("mismatched brackets")
	ErrInvalidEscape      = errors.New("invalid escape sequence")
	ErrTooDeep            = errors.New("nesting too deep")

	// Line structure errors
	ErrBadIndent       = errors.New("bad indentation")
	ErrTrailingContent = errors.New("failed to parse entire line")

	// Tree errors
	ErrOrphanIndent = errors.New("indented line before any top-level line")
	ErrIndentLeap   = errors.New("indent leap")

	// Semantic errors
	ErrArity             = errors.New("wrong number of arguments")
	ErrNotStringifiable  = errors.New("argument must be plain text")
	ErrTableWidth        = errors.New("got table rows of different sizes")
	ErrUnexpectedTerm    = errors.New("unexpected term")
	ErrMisplacedFunction = errors.New("must be at the beginning of the line")
	ErrUnknownFunction   = errors.New("unknown function")

	// Configuration errors
	ErrBadConfig = errors.New("bad configuration")
)

// SyntaxError describes where parsing failed.
//
// For line level failures Excerpt is the source line, Column is where the
// caret goes and Parsed holds the terms of the line that were parsed before
// the failure. Tree and classification errors only carry the line number.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
	Excerpt  string
	Parsed   []Term
	Err      error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder

	if len(e.Filename) > 0 {
		b.WriteString(e.Filename)
		b.WriteByte(':')
	}
	b.WriteString(fmt.Sprintf("%d:", e.Line))
	if e.Column > 0 {
		b.WriteString(fmt.Sprintf("%d:", e.Column))
	}
	b.WriteByte(' ')
	b.WriteString(e.Msg)

	if e.Column > 0 {
		prefix := fmt.Sprintf("%2d | ", e.Line)
		b.WriteByte('\n')
		b.WriteString(prefix)
		b.WriteString(e.Excerpt)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", len(prefix)+e.Column-1))
		b.WriteByte('^')
		b.WriteString("\nparsed before failure: ")
		b.WriteString(termsString(e.Parsed))
	}

	return b.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// lexError is a failure inside the term lexer.
// The line parser turns it into a SyntaxError with the source excerpt.
type lexError struct {
	line   int
	column int
	msg    string
	err    error
}

func (e *lexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.line, e.column, e.msg)
}

func (e *lexError) Unwrap() error {
	return e.err
}

// errAt builds a lexError positioned at the cursor.
func errAt(c Cursor, err error, format string, args ...any) *lexError {
	msg := err.Error()
	if len(format) > 0 {
		msg = fmt.Sprintf(format, args...) + ": " + msg
	}
	return &lexError{line: c.line, column: c.column, msg: msg, err: err}
}

// nodeError builds an error for stage 2 and stage 3, which only know the line number.
func nodeError(filename string, line int, err error, format string, args ...any) *SyntaxError {
	msg := err.Error()
	if len(format) > 0 {
		msg = fmt.Sprintf(format, args...) + ": " + msg
	}
	return &SyntaxError{Filename: filename, Line: line, Msg: msg, Err: err}
}

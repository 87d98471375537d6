// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"strconv"
	"strings"
)

// A TermKind is the kind of a Term.
type TermKind uint32

const (
	// ErrorTerm is the zero value and never produced by the lexer.
	ErrorTerm TermKind = iota
	// SpaceTerm is a run of whitespace. Text keeps the run verbatim.
	SpaceTerm
	// WordTerm is a fragment of a word, with escapes already resolved.
	WordTerm
	// DelimTerm is one of '(', ')', '{', '}' in Text.
	DelimTerm
	// TagTerm looks like %name. Text is the name without the '%'.
	TagTerm
	// URLTerm is a word recognised as a URL.
	URLTerm
	// InlineMathTerm looks like ${x} or $:x
	InlineMathTerm
	// DisplayMathTerm looks like $${x} or $$:x
	DisplayMathTerm
	// InlineCodeTerm looks like `x`
	InlineCodeTerm
	// InlineBoldTerm looks like *x*
	InlineBoldTerm
	// InlineItalicsTerm looks like _x_
	InlineItalicsTerm
	// FuncCallTerm looks like @name{a}(b)#{c}#. Text is the name.
	FuncCallTerm
	// ListTerm looks like @{a}{b}, or {a}{b} inside an argument.
	ListTerm
	// BulletTerm is a "- " or "* " line prefix.
	BulletTerm
	// TaskTerm is a "[x] " or "(x) " line prefix.
	TaskTerm
)

// String returns a string representation of the TermKind.
func (k TermKind) String() string {
	switch k {
	case ErrorTerm:
		return "Error"
	case SpaceTerm:
		return "Space"
	case WordTerm:
		return "Word"
	case DelimTerm:
		return "Delim"
	case TagTerm:
		return "Tag"
	case URLTerm:
		return "URL"
	case InlineMathTerm:
		return "InlineMath"
	case DisplayMathTerm:
		return "DisplayMath"
	case InlineCodeTerm:
		return "InlineCode"
	case InlineBoldTerm:
		return "InlineBold"
	case InlineItalicsTerm:
		return "InlineItalics"
	case FuncCallTerm:
		return "FuncCall"
	case ListTerm:
		return "List"
	case BulletTerm:
		return "Bullet"
	case TaskTerm:
		return "Task"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

// BulletType is the character used as a bullet prefix. The zero value means no bullet.
type BulletType uint8

const (
	NoBullet BulletType = iota
	DashBullet
	StarBullet
)

func (b BulletType) String() string {
	switch b {
	case DashBullet:
		return "dash"
	case StarBullet:
		return "star"
	}
	return "none"
}

// TaskState is the state of a task prefix.
type TaskState uint8

const (
	TaskTodo TaskState = iota
	TaskDone
	TaskCancelled
)

func (s TaskState) String() string {
	switch s {
	case TaskDone:
		return "done"
	case TaskCancelled:
		return "cancelled"
	}
	return "todo"
}

// TaskFormat is the bracket style of a task prefix.
type TaskFormat uint8

const (
	SquareTask TaskFormat = iota
	ParenTask
)

func (f TaskFormat) String() string {
	if f == ParenTask {
		return "paren"
	}
	return "square"
}

// TaskPrefix is a parsed "[ ]", "[x]", "[-]", "( )" ... prefix.
type TaskPrefix struct {
	State  TaskState
	Format TaskFormat
}

// A Term is one lexical unit of a line.
//
// Text holds the payload of the simple kinds: the word, the tag name, the
// contents of math, code, bold and italics, the delimiter character or the
// whitespace run. For function calls Text is the name and Args the
// arguments; for lists Args are the items.
type Term struct {
	Kind   TermKind
	Text   string
	Args   [][]Term
	Bullet BulletType
	Task   TaskPrefix
}

// String returns a compact representation of the Term, used in error messages.
func (t Term) String() string {
	switch t.Kind {
	case SpaceTerm:
		return "Space"
	case FuncCallTerm:
		return "FuncCall(" + strconv.Quote(t.Text) + ", " + argsString(t.Args) + ")"
	case ListTerm:
		return "List(" + argsString(t.Args) + ")"
	case BulletTerm:
		return "Bullet(" + t.Bullet.String() + ")"
	case TaskTerm:
		return "Task(" + t.Task.State.String() + ", " + t.Task.Format.String() + ")"
	}
	return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
}

func argsString(args [][]Term) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(termsString(arg))
	}
	return b.String()
}

func termsString(terms []Term) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range terms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Line is one logical source line: its indentation level and its terms.
// A Line with no terms is a blank line.
type Line struct {
	// Number is the 1-based source line where the logical line starts
	Number int
	Indent int
	Terms  []Term
}

// Indent is the indentation unit of a document.
type Indent struct {
	Tab   bool
	Width int
}

func (i Indent) String() string {
	if i.Tab {
		return "tab"
	}
	return strconv.Itoa(i.Width) + " spaces"
}

// StandardOptions are the options every document derives from its header.
type StandardOptions struct {
	Indent Indent
	Tags   []string
	Title  string
}

// LineDocument is the result of the first stage: the header and the flat list of lines.
type LineDocument struct {
	Header  map[string]string
	Options StandardOptions
	Lines   []Line
}

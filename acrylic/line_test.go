package acrylic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrefixes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Term
	}{
		{
			name: "bullet and task",
			src:  "- [x] done task",
			want: []Term{
				{Kind: BulletTerm, Bullet: DashBullet},
				{Kind: TaskTerm, Task: TaskPrefix{State: TaskDone, Format: SquareTask}},
				word("done"), space(" "), word("task"),
			},
		},
		{
			name: "star bullet",
			src:  "* item",
			want: []Term{{Kind: BulletTerm, Bullet: StarBullet}, word("item")},
		},
		{
			name: "task without bullet",
			src:  "[ ] todo",
			want: []Term{{Kind: TaskTerm, Task: TaskPrefix{State: TaskTodo, Format: SquareTask}}, word("todo")},
		},
		{
			name: "cancelled paren task",
			src:  "(-) dropped",
			want: []Term{{Kind: TaskTerm, Task: TaskPrefix{State: TaskCancelled, Format: ParenTask}}, word("dropped")},
		},
		{
			name: "capital X",
			src:  "(X)",
			want: []Term{{Kind: TaskTerm, Task: TaskPrefix{State: TaskDone, Format: ParenTask}}},
		},
		{
			name: "dash without space is a word",
			src:  "-foo",
			want: []Term{word("-foo")},
		},
		{
			name: "task glued to text is a word",
			src:  "[x]y",
			want: []Term{word("[x]y")},
		},
		{
			name: "trailing whitespace dropped",
			src:  "a b   ",
			want: []Term{word("a"), space(" "), word("b")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstLineTerms(t, tt.src))
		})
	}
}

func TestLineIndentation(t *testing.T) {
	doc, err := NewParser("test.acr").ParseLines("a\n  b\n    c\n  d")
	require.NoError(t, err)
	require.Len(t, doc.Lines, 4)

	indents := []int{}
	numbers := []int{}
	for _, l := range doc.Lines {
		indents = append(indents, l.Indent)
		numbers = append(numbers, l.Number)
	}
	assert.Equal(t, []int{0, 1, 2, 1}, indents)
	assert.Equal(t, []int{1, 2, 3, 4}, numbers)
}

func TestLineTabIndentation(t *testing.T) {
	doc, err := NewParser("test.acr").ParseLines("%:indent tab\na\n\tb\n\t\tc")
	require.NoError(t, err)
	require.Len(t, doc.Lines, 3)
	assert.Equal(t, 0, doc.Lines[0].Indent)
	assert.Equal(t, 1, doc.Lines[1].Indent)
	assert.Equal(t, 2, doc.Lines[2].Indent)
	assert.Equal(t, 3, doc.Lines[1].Number)
}

func TestLineBadIndentation(t *testing.T) {
	_, err := NewParser("test.acr").ParseLines("a\n   b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadIndent))

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Line)
}

func TestBlankAndCommentLines(t *testing.T) {
	doc, err := NewParser("test.acr").ParseLines("a\n\n   \n%% comment\n  %% another\nb")
	require.NoError(t, err)
	require.Len(t, doc.Lines, 4)

	assert.Equal(t, 1, doc.Lines[0].Number)
	assert.Empty(t, doc.Lines[1].Terms)
	assert.Equal(t, 2, doc.Lines[1].Number)
	assert.Empty(t, doc.Lines[2].Terms)
	assert.Equal(t, 3, doc.Lines[2].Number)
	assert.Equal(t, []Term{word("b")}, doc.Lines[3].Terms)
	assert.Equal(t, 6, doc.Lines[3].Number)
}

func TestCRLF(t *testing.T) {
	doc, err := NewParser("test.acr").ParseLines("a\r\n  b\r\n")
	require.NoError(t, err)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, []Term{word("b")}, doc.Lines[1].Terms)
	assert.Equal(t, 1, doc.Lines[1].Indent)
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := NewParser("test.acr").ParseLines("foo `bar")
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "test.acr:1:5: ")
	assert.Contains(t, msg, "unterminated delimiter")
	assert.Contains(t, msg, "\n 1 | foo `bar\n         ^")
	assert.Contains(t, msg, `parsed before failure: [Word("foo") Space]`)
}

func TestReadLineNeedsIndentUnit(t *testing.T) {
	c := NewCursor("  foo\n")
	_, ok, err := NewParser("test.acr").ReadLine(&c, &StandardOptions{})
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrBadConfig))

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Line)

	// Tab indentation has no width
	c = NewCursor("\tfoo\n")
	line, ok, err := NewParser("test.acr").ReadLine(&c, &StandardOptions{Indent: Indent{Tab: true}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, line.Indent)
}

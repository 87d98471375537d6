package acrylic

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines builds a LineDocument from indents. A negative indent is a blank line.
// Line n holds the single word "n".
func lines(indents ...int) *LineDocument {
	doc := &LineDocument{Options: StandardOptions{Indent: Indent{Width: 2}}}
	for i, indent := range indents {
		n := i + 1
		if indent < 0 {
			doc.Lines = append(doc.Lines, Line{Number: n})
			continue
		}
		doc.Lines = append(doc.Lines, Line{Number: n, Indent: indent, Terms: []Term{word(strconv.Itoa(n))}})
	}
	return doc
}

// shape describes a forest as "1(2(3) 4) 5", with "+" after nodes with bottom spacing.
func shape(nodes []*RawNode) string {
	s := ""
	for i, n := range nodes {
		if i > 0 {
			s += " "
		}
		s += strconv.Itoa(n.Number)
		if n.BottomSpacing {
			s += "+"
		}
		if len(n.Children) > 0 {
			s += "(" + shape(n.Children) + ")"
		}
	}
	return s
}

func TestBuildTree(t *testing.T) {
	tests := []struct {
		name    string
		indents []int
		want    string
	}{
		{name: "flat", indents: []int{0, 0, 0}, want: "1 2 3"},
		{name: "nested", indents: []int{0, 1, 2, 1, 0}, want: "1(2(3) 4) 5"},
		{name: "children in order", indents: []int{0, 1, 1, 1}, want: "1(2 3 4)"},
		{name: "close several levels", indents: []int{0, 1, 2, 3, 0}, want: "1(2(3(4))) 5"},
		{name: "blank between siblings", indents: []int{0, -1, 0}, want: "1+ 3"},
		{name: "blank after a child", indents: []int{0, 1, -1, 0}, want: "1(2+) 4"},
		{name: "several blanks", indents: []int{0, -1, -1, 0}, want: "1+ 4"},
		{name: "leading blank", indents: []int{-1, 0}, want: "2"},
		{name: "trailing blank", indents: []int{0, 1, -1}, want: "1(2+)"},
		{name: "empty", indents: []int{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewParser("test.acr").BuildTree(lines(tt.indents...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, shape(tree.Nodes))
		})
	}
}

func TestBuildTreeKeepsContents(t *testing.T) {
	tree, err := NewParser("test.acr").BuildTree(lines(0, 1))
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 1)
	assert.Equal(t, []Term{word("1")}, tree.Nodes[0].Contents)
	assert.Equal(t, []Term{word("2")}, tree.Nodes[0].Children[0].Contents)
}

func TestBuildTreeErrors(t *testing.T) {
	tests := []struct {
		name    string
		indents []int
		opts    []Option
		wantErr error
		line    int
	}{
		{name: "indented first line", indents: []int{1}, wantErr: ErrOrphanIndent, line: 1},
		{name: "indented after blank", indents: []int{-1, 1}, wantErr: ErrOrphanIndent, line: 2},
		{name: "leap from top level", indents: []int{0, 2}, wantErr: ErrIndentLeap, line: 2},
		{name: "leap from nested", indents: []int{0, 1, 3}, wantErr: ErrIndentLeap, line: 3},
		{name: "too deep", indents: []int{0, 1, 2, 3}, opts: []Option{WithMaxNesting(2)}, wantErr: ErrTooDeep, line: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser("test.acr", tt.opts...).BuildTree(lines(tt.indents...))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.line, se.Line)
		})
	}
}

func TestBuildTreeLeapMessage(t *testing.T) {
	_, err := NewParser("test.acr").BuildTree(lines(0, 1, 3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.acr:3: current indent 3, expected at most 2: indent leap")
}

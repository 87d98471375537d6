package acrylic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordIn(s string) Inline { return Inline{Kind: WordInline, Text: s} }

var spaceIn = Inline{Kind: SpaceInline}

// classifyFirst parses src and returns the line of the first node.
func classifyFirst(t *testing.T, src string) LineKind {
	t.Helper()
	doc, err := NewParser("test.acr").Parse(src)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Nodes)
	return doc.Nodes[0].Line
}

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want LineKind
	}{
		{
			name: "plain words",
			src:  "hello world",
			want: &TextLine{Content: []Inline{wordIn("hello"), spaceIn, wordIn("world")}},
		},
		{
			name: "bullet and task",
			src:  "- [x] done task",
			want: &TextLine{
				Bullet:  DashBullet,
				Task:    &TaskPrefix{State: TaskDone, Format: SquareTask},
				Content: []Inline{wordIn("done"), spaceIn, wordIn("task")},
			},
		},
		{
			name: "url detection",
			src:  "see https://go.dev now",
			want: &TextLine{Content: []Inline{wordIn("see"), spaceIn, {Kind: URLInline, Text: "https://go.dev"}, spaceIn, wordIn("now")}},
		},
		{
			name: "delimiters join words",
			src:  "f(x) {y}",
			want: &TextLine{Content: []Inline{wordIn("f(x)"), spaceIn, wordIn("{y}")}},
		},
		{
			name: "formatting",
			src:  "%todo `a` *b* _c_ ${d}",
			want: &TextLine{Content: []Inline{
				{Kind: TagInline, Text: "todo"}, spaceIn,
				{Kind: CodeInline, Text: "a"}, spaceIn,
				{Kind: BoldInline, Text: "b"}, spaceIn,
				{Kind: ItalicsInline, Text: "c"}, spaceIn,
				{Kind: MathInline, Text: "d"},
			}},
		},
		{
			name: "inline code function",
			src:  "run @c{x < y} now",
			want: &TextLine{Content: []Inline{wordIn("run"), spaceIn, {Kind: CodeInline, Text: "x < y"}, spaceIn, wordIn("now")}},
		},
		{
			name: "ref with target only",
			src:  "@ref{https://example.com}",
			want: &TextLine{Content: []Inline{{
				Kind:    RefInline,
				Content: []Inline{wordIn("https://example.com")},
				Target:  "https://example.com",
			}}},
		},
		{
			name: "ref with content and target",
			src:  "@ref{Example}{https://example.com}",
			want: &TextLine{Content: []Inline{{
				Kind:    RefInline,
				Content: []Inline{wordIn("Example")},
				Target:  "https://example.com",
			}}},
		},
		{
			name: "ref with formatted content",
			src:  "@ref{the *best* site}{https://example.com}",
			want: &TextLine{Content: []Inline{{
				Kind:    RefInline,
				Content: []Inline{wordIn("the"), spaceIn, {Kind: BoldInline, Text: "best"}, spaceIn, wordIn("site")},
				Target:  "https://example.com",
			}}},
		},
		{
			name: "braces in ref content",
			src:  "@ref{the {x} set}{https://a.b}",
			want: &TextLine{Content: []Inline{{
				Kind:    RefInline,
				Content: []Inline{wordIn("the"), spaceIn, wordIn("{x}"), spaceIn, wordIn("set")},
				Target:  "https://a.b",
			}}},
		},
		{
			name: "bullet alone",
			src:  "- ",
			want: &TextLine{Bullet: DashBullet},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyFirst(t, tt.src))
		})
	}
}

func TestClassifyWordsUnchanged(t *testing.T) {
	src := "alpha beta-gamma delta.epsilon"
	line := classifyFirst(t, src)
	text, ok := line.(*TextLine)
	require.True(t, ok)
	assert.Equal(t, src, PlainText(text.Content))
	for _, in := range text.Content {
		assert.Contains(t, []InlineKind{WordInline, SpaceInline}, in.Kind)
	}
}

func TestClassifyBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want LineKind
	}{
		{
			name: "display math",
			src:  "$${E=mc^2}",
			want: &DisplayMath{Math: "E=mc^2"},
		},
		{
			name: "code block is dedented",
			src:  "@code{  foo\n    bar\n  }",
			want: &CodeBlock{Code: "foo\n  bar"},
		},
		{
			name: "code block with language",
			src:  "@code{go}{\n  x := 1\n}",
			want: &CodeBlock{Lang: "go", Code: "x := 1"},
		},
		{
			name: "code block keeps braces",
			src:  "@code{\n  if x {\n    y()\n  }\n}",
			want: &CodeBlock{Code: "if x {\n  y()\n}"},
		},
		{
			name: "raw code block",
			src:  "@code#{a *b* }}#",
			want: &CodeBlock{Code: "a *b* }"},
		},
		{
			name: "dot graph",
			src:  "@dot{digraph { a -> b }}",
			want: &DotGraph{Source: "digraph { a -> b }"},
		},
		{
			name: "table",
			src:  "@table{ {a}{b} --- {1}{2} }",
			want: &TableLine{Columns: 2, Items: []TableItem{
				{Cells: [][]Inline{{wordIn("a")}, {wordIn("b")}}},
				{Separator: true},
				{Cells: [][]Inline{{wordIn("1")}, {wordIn("2")}}},
			}},
		},
		{
			name: "table cells are trimmed",
			src:  "@table{@{ a b }{ *c* }}",
			want: &TableLine{Columns: 2, Items: []TableItem{
				{Cells: [][]Inline{{wordIn("a"), spaceIn, wordIn("b")}, {{Kind: BoldInline, Text: "c"}}}},
			}},
		},
		{
			name: "image caption with braces",
			src:  "@image{f {y}{z}}{u.png}",
			want: &Image{Caption: []Inline{wordIn("f"), spaceIn, wordIn("{y}{z}")}, URL: "u.png"},
		},
		{
			name: "table cell with braces",
			src:  "@table{ {a {b}} }",
			want: &TableLine{Columns: 1, Items: []TableItem{
				{Cells: [][]Inline{{wordIn("a"), spaceIn, wordIn("{b}")}}},
			}},
		},
		{
			name: "image",
			src:  "@image{pic.png}",
			want: &Image{URL: "pic.png"},
		},
		{
			name: "image with caption",
			src:  "@image{A *nice* pic}{pic.png}",
			want: &Image{
				Caption: []Inline{wordIn("A"), spaceIn, {Kind: BoldInline, Text: "nice"}, spaceIn, wordIn("pic")},
				URL:     "pic.png",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyFirst(t, tt.src))
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
		line    int
	}{
		{name: "display math with other content", src: "$${E=mc^2} more", wantErr: ErrUnexpectedTerm, line: 1},
		{name: "display math after text", src: "text $${x}", wantErr: ErrUnexpectedTerm, line: 1},
		{name: "code with other content", src: "@code{x} trailing", wantErr: ErrUnexpectedTerm, line: 1},
		{name: "code in the middle of text", src: "a\ntext @code{x}", wantErr: ErrMisplacedFunction, line: 2},
		{name: "unknown function", src: "@foo{x}", wantErr: ErrUnknownFunction, line: 1},
		{name: "code arity", src: "@code{a}{b}{c}", wantErr: ErrArity, line: 1},
		{name: "dot arity", src: "@dot{a}{b}", wantErr: ErrArity, line: 1},
		{name: "table arity", src: "@table{@{a}}{b}", wantErr: ErrArity, line: 1},
		{name: "image arity", src: "@image{a}{b}{c}", wantErr: ErrArity, line: 1},
		{name: "ref arity", src: "@ref{a}{b}{c}", wantErr: ErrArity, line: 1},
		{name: "c arity", src: "@c{a}{b}", wantErr: ErrArity, line: 1},
		{name: "code not plain text", src: "@code{*bold*}", wantErr: ErrNotStringifiable, line: 1},
		{name: "ref target not plain text", src: "@ref{a}{`b`}", wantErr: ErrNotStringifiable, line: 1},
		{name: "table rows of different sizes", src: "@table{ {a}{b} {1} }", wantErr: ErrTableWidth, line: 1},
		{name: "words between table rows", src: "@table{ {a} b {c} }", wantErr: ErrUnexpectedTerm, line: 1},
		{name: "list outside a table", src: "x\n  @{a}{b}", wantErr: ErrUnexpectedTerm, line: 2},
		{name: "nested unknown function", src: "@ref{@foo{x}}{y}", wantErr: ErrUnknownFunction, line: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser("test.acr").Parse(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.line, se.Line)
		})
	}
}

func TestClassifyTree(t *testing.T) {
	src := "%-fold Section\n  child one\n\n  child two\n@code{x}\n  explanation"
	doc, err := NewParser("test.acr").Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)

	fold, ok := doc.Nodes[0].Line.(*TextLine)
	require.True(t, ok)
	assert.True(t, fold.IsFold())
	assert.True(t, fold.HasTag("-fold"))
	require.Len(t, doc.Nodes[0].Children, 2)
	assert.True(t, doc.Nodes[0].Children[0].BottomSpacing)
	assert.Equal(t, 4, doc.Nodes[0].Children[1].Number)

	_, ok = doc.Nodes[1].Line.(*CodeBlock)
	assert.True(t, ok)
	require.Len(t, doc.Nodes[1].Children, 1)

	var visited []int
	var depths []int
	doc.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Number)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []int{1, 2, 4, 5, 6}, visited)
	assert.Equal(t, []int{0, 1, 1, 0, 1}, depths)

	visited = nil
	doc.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.Number)
		return false
	})
	assert.Equal(t, []int{1, 5}, visited)
}

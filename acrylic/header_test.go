package acrylic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantOpts   StandardOptions
		wantHeader map[string]string
		wantLines  int
	}{
		{
			name:       "no header",
			src:        "text",
			wantOpts:   StandardOptions{Indent: Indent{Width: 2}, Tags: []string{}},
			wantHeader: map[string]string{},
			wantLines:  1,
		},
		{
			name:     "all standard keys and one more",
			src:      "%:title My Doc\n%:tags a b  c\n%:indent 4\n%:author Me\n\ntext",
			wantOpts: StandardOptions{Indent: Indent{Width: 4}, Tags: []string{"a", "b", "c"}, Title: "My Doc"},
			wantHeader: map[string]string{
				"author": "Me",
			},
			wantLines: 1,
		},
		{
			name:       "tab indent",
			src:        "%:indent tab\n",
			wantOpts:   StandardOptions{Indent: Indent{Tab: true}, Tags: []string{}},
			wantHeader: map[string]string{},
			wantLines:  0,
		},
		{
			name:       "last entry without newline",
			src:        "%:title T",
			wantOpts:   StandardOptions{Indent: Indent{Width: 2}, Tags: []string{}, Title: "T"},
			wantHeader: map[string]string{},
			wantLines:  0,
		},
		{
			name:       "repeated key keeps the last value",
			src:        "%:lang en\n%:lang es\nx",
			wantOpts:   StandardOptions{Indent: Indent{Width: 2}, Tags: []string{}},
			wantHeader: map[string]string{"lang": "es"},
			wantLines:  1,
		},
		{
			name:       "tag line is not a header",
			src:        "%tag text",
			wantOpts:   StandardOptions{Indent: Indent{Width: 2}, Tags: []string{}},
			wantHeader: map[string]string{},
			wantLines:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewParser("test.acr").ParseLines(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOpts, doc.Options)
			assert.Equal(t, tt.wantHeader, doc.Header)
			assert.Len(t, doc.Lines, tt.wantLines)
		})
	}
}

func TestHeaderBadIndent(t *testing.T) {
	for _, value := range []string{"foo", "0", "-2", "2.5"} {
		t.Run(value, func(t *testing.T) {
			_, err := NewParser("test.acr").ParseLines("%:indent " + value + "\nx")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBadConfig))
		})
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	opts := StandardOptions{Indent: Indent{Width: 3}, Tags: []string{"draft", "notes"}, Title: "A title, with punctuation!"}

	src := "%:title " + opts.Title + "\n%:tags " + "draft notes" + "\n%:indent 3\n%:custom value here\n"
	doc, err := NewParser("test.acr").ParseLines(src)
	require.NoError(t, err)

	assert.Equal(t, opts, doc.Options)
	assert.Equal(t, map[string]string{"custom": "value here"}, doc.Header)
}

package acrylic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"https://example.com", true},
		{"ftp://x", true},
		{"https://example.com/a?b=c#d", true},
		{"://x", false},
		{"http:/x", false},
		{"http://", false},
		{"h1://x", false},
		{"mailto:someone", false},
		{"http://a b", false},
		{"example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, isURL(tt.word))
		})
	}
}

// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package html

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "github"

// highlight returns the code as HTML with syntax colouring, without the surrounding <pre>.
// When lang is empty or unknown the language is guessed from the code.
func highlight(lang string, code string, styleName string) ([]byte, error) {

	// Determine lexer.
	l := lexers.Get(lang)
	if l == nil {
		l = lexers.Analyse(code)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	if len(styleName) == 0 {
		styleName = DefaultCodeStyle
	}
	s := styles.Get(styleName)

	f := hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true))

	it, err := l.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("tokenising code: %w", err)
	}

	rb := &bytes.Buffer{}
	if err := f.Format(rb, s, it); err != nil {
		return nil, fmt.Errorf("formatting code: %w", err)
	}

	return rb.Bytes(), nil
}

// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"fmt"
	"strconv"
	"strings"
)

// The header keys with a meaning for the parser itself.
// Any other key is left in the header map for the renderers.
const (
	HeaderIndent = "indent"
	HeaderTags   = "tags"
	HeaderTitle  = "title"
)

// readHeaderEntry parses one "%:key value" line.
func readHeaderEntry(c *Cursor) (key string, value string, ok bool) {
	p := *c

	if !p.ExpectAndSkip('%') || !p.ExpectAndSkip(':') {
		return "", "", false
	}

	key = p.Collect(func(r rune) bool { return !isArgWhitespace(r) })
	if len(key) == 0 {
		return "", "", false
	}

	if p.CountWhile(isInlineWhitespace) == 0 {
		return "", "", false
	}

	value = p.Collect(func(r rune) bool { return r != '\n' })
	if len(value) == 0 {
		return "", "", false
	}

	if !p.ExpectAndSkip('\n') && !p.AtEOF() {
		return "", "", false
	}

	*c = p
	return key, value, true
}

// readHeader reads all the header entries at the start of the document.
// A repeated key keeps the last value.
func readHeader(c *Cursor) map[string]string {
	header := make(map[string]string)
	for {
		key, value, ok := readHeaderEntry(c)
		if !ok {
			return header
		}
		header[key] = value
	}
}

// extractOptions removes the standard keys from the header and returns the options they define.
func extractOptions(header map[string]string) (StandardOptions, error) {
	opts := StandardOptions{
		Indent: Indent{Width: 2},
		Tags:   []string{},
	}

	if raw, found := header[HeaderIndent]; found {
		delete(header, HeaderIndent)

		value := strings.TrimSpace(raw)
		if value == "tab" {
			opts.Indent = Indent{Tab: true}
		} else {
			width, err := strconv.Atoi(value)
			if err != nil || width <= 0 {
				return opts, fmt.Errorf("header %q: expected \"tab\" or a positive number of spaces, got %q: %w",
					HeaderIndent, raw, ErrBadConfig)
			}
			opts.Indent = Indent{Width: width}
		}
	}

	if raw, found := header[HeaderTags]; found {
		delete(header, HeaderTags)
		opts.Tags = strings.Fields(raw)
	}

	if raw, found := header[HeaderTitle]; found {
		delete(header, HeaderTitle)
		opts.Title = raw
	}

	return opts, nil
}

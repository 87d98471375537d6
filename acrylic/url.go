// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

// isURL reports whether the whole word looks like scheme://rest.
// The scheme is one or more ASCII letters and rest can not be empty
// or hold whitespace.
func isURL(word string) bool {
	c := NewCursor(word)

	if _, ok := c.CollectAtLeast(1, isASCIILetter); !ok {
		return false
	}

	for _, r := range "://" {
		if !c.ExpectAndSkip(r) {
			return false
		}
	}

	if _, ok := c.CollectAtLeast(1, func(r rune) bool { return !isArgWhitespace(r) }); !ok {
		return false
	}

	return c.AtEOF()
}

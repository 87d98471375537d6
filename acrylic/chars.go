// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

// isEscapable reports whether c may follow a backslash in normal text.
func isEscapable(c rune) bool {
	switch c {
	case '\\', '@', '$', '%', '*', '_', '`':
		return true
	}
	return false
}

func isInlineWhitespace(c rune) bool {
	return c == ' ' || c == '\t'
}

// isArgWhitespace is whitespace inside function arguments, which may span lines.
func isArgWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isBracket(c rune) bool {
	switch c {
	case '(', ')', '{', '}':
		return true
	}
	return false
}

// isWordChar reports whether c can be part of a word fragment.
// The excluded runes start other terms.
func isWordChar(c rune) bool {
	switch c {
	case '\n', ' ', '\t', '*', '`', '$', '%', '(', ')', '{', '}', '\\':
		return false
	}
	return true
}

// isLiteralStarter are the runes taken literally at the start of a word,
// when the term they would introduce did not match.
func isLiteralStarter(c rune) bool {
	switch c {
	case '$', '%', '*', '_', '`':
		return true
	}
	return false
}

// isTagChar is a rune of a tag name.
func isTagChar(c rune) bool {
	return !isArgWhitespace(c) && !isBracket(c)
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIAlnum(c rune) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9')
}

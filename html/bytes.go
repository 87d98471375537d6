// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package html

import (
	"fmt"
	"strconv"
)

// ByteRenderer accumulates the output of the renderer.
type ByteRenderer struct {
	buf []byte
}

// Render appends its arguments to the output.
// Strings, byte slices, bytes, runes and ints are written as is. Anything
// else is formatted with fmt.
func (br *ByteRenderer) Render(ss ...any) {
	for _, s := range ss {
		switch v := s.(type) {
		case string:
			br.buf = append(br.buf, v...)
		case []byte:
			br.buf = append(br.buf, v...)
		case byte:
			br.buf = append(br.buf, v)
		case rune:
			br.buf = append(br.buf, string(v)...)
		case int:
			br.buf = strconv.AppendInt(br.buf, int64(v), 10)
		default:
			br.buf = append(br.buf, fmt.Sprint(v)...)
		}
	}
}

// Renderln is like Render, adding a newline at the end.
func (br *ByteRenderer) Renderln(ss ...any) {
	br.Render(ss...)
	br.buf = append(br.buf, '\n')
}

// Text appends s, escaping the characters with a meaning in HTML.
func (br *ByteRenderer) Text(s string) {
	for _, r := range s {
		switch r {
		case '&':
			br.buf = append(br.buf, "&amp;"...)
		case '<':
			br.buf = append(br.buf, "&lt;"...)
		case '>':
			br.buf = append(br.buf, "&gt;"...)
		case '"':
			br.buf = append(br.buf, "&quot;"...)
		case '\'':
			br.buf = append(br.buf, "&#39;"...)
		case '`':
			br.buf = append(br.buf, "&#96;"...)
		default:
			br.buf = append(br.buf, string(r)...)
		}
	}
}

// Bytes returns the accumulated output. It is not a copy.
func (br *ByteRenderer) Bytes() []byte {
	return br.buf
}

// Len is the number of bytes accumulated.
func (br *ByteRenderer) Len() int {
	return len(br.buf)
}

// Escape returns s with the characters with a meaning in HTML escaped.
func Escape(s string) string {
	br := &ByteRenderer{}
	br.Text(s)
	return string(br.buf)
}

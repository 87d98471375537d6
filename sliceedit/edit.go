// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit fills page templates with rsc.io/edit.
// All the edits refer to the original slice and are applied in a
// single pass, so a replacement is never searched for placeholders.
package sliceedit

import (
	"bytes"
	"sort"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  *edit.Buffer
	buf []byte

	// the ranges of buf already edited, sorted by start
	edited []span
}

type span struct{ start, end int }

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{
		ed:  edit.NewBuffer(buf),
		buf: buf,
	}
}

// FindAll finds all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	realOffset := 0

	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// claim records the range as edited, unless it overlaps a previous edit.
func (b *Buffer) claim(start, end int) bool {
	i := sort.Search(len(b.edited), func(i int) bool { return b.edited[i].end > start })
	if i < len(b.edited) && b.edited[i].start < end {
		return false
	}
	b.edited = append(b.edited, span{})
	copy(b.edited[i+1:], b.edited[i:])
	b.edited[i] = span{start, end}
	return true
}

// DeleteAllString deletes every instance of s. It returns the number of deletions.
func (b *Buffer) DeleteAllString(s string) int {
	return b.ReplaceAllString(s, "")
}

// ReplaceAllString replaces every instance of old with new.
// Instances overlapping a previous edit are left alone.
// It returns the number of replacements.
func (b *Buffer) ReplaceAllString(old string, new string) int {
	n := 0
	for _, hit := range FindAll(b.buf, old) {
		if !b.claim(hit, hit+len(old)) {
			continue
		}
		b.ed.Replace(hit, hit+len(old), new)
		n++
	}
	return n
}

// ReplaceMap replaces every key of m with its value.
// Longer keys go first, so a key containing another one wins.
func (b *Buffer) ReplaceMap(m map[string]string) int {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	n := 0
	for _, k := range keys {
		n += b.ReplaceAllString(k, m[k])
	}
	return n
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return b.ed.String()
}

// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package acrylic

import (
	"strings"
)

const tabWidth = 8

// dedent removes the indentation common to all the lines of a code block.
// A blank first or last line is dropped. Tabs count as tabWidth spaces,
// and a tab that is only partially removed leaves spaces for the rest of its width.
func dedent(code string) string {
	lines := strings.Split(code, "\n")

	if len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	if len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	// Blank lines in the middle do not count for the minimum
	common := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		w := indentWidth(line)
		if common < 0 || w < common {
			common = w
		}
	}

	if common <= 0 {
		return strings.Join(lines, "\n")
	}

	for i, line := range lines {
		lines[i] = stripIndent(line, common)
	}

	return strings.Join(lines, "\n")
}

func isBlank(line string) bool {
	return len(strings.TrimLeft(line, " \t")) == 0
}

// indentWidth is the width of the leading whitespace of line.
func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += tabWidth
		default:
			return w
		}
	}
	return w
}

// stripIndent removes width columns of leading whitespace from line.
func stripIndent(line string, width int) string {
	removed := 0
	for i, r := range line {
		if removed >= width {
			return line[i:]
		}
		switch r {
		case ' ':
			removed++
		case '\t':
			removed += tabWidth
			if removed > width {
				return strings.Repeat(" ", removed-width) + line[i+1:]
			}
		default:
			return line[i:]
		}
	}
	return ""
}

// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package acrylic parses acrylic documents into a tree of classified lines.
//
// Parsing happens in three stages:
//
//   - ParseLines reads the header and splits the source into lines of terms.
//   - BuildTree uses the indentation of the lines to build a tree.
//   - Classify gives each line its meaning: text, table, code, math, graph or image.
//
// Parse runs the three stages. Any error aborts the whole parse: there are
// no partial documents.
package acrylic

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

type Parser struct {
	// the file of the name being processed, only used in error messages
	fileName string

	// the source split in lines, to show excerpts in error messages
	lines []string

	lx lexer

	// limit for argument nesting and for indentation levels
	maxNesting int

	log *zap.SugaredLogger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger for tracing the parser stages.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithMaxNesting limits the nesting of function arguments and indentation.
// Values below 1 are ignored.
func WithMaxNesting(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxNesting = n
		}
	}
}

// NewParser creates a parser for one document.
// fileName is for error messages and tracing purposes.
func NewParser(fileName string, opts ...Option) *Parser {
	p := &Parser{
		fileName:   fileName,
		maxNesting: DefaultMaxNesting,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lx = lexer{maxNesting: p.maxNesting}
	return p
}

// ParseLines is the first stage: the header and the flat list of lines.
func (p *Parser) ParseLines(src string) (*LineDocument, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	p.lines = strings.Split(src, "\n")

	c := NewCursor(src)

	header := readHeader(&c)
	opts, err := extractOptions(header)
	if err != nil {
		return nil, &SyntaxError{Filename: p.fileName, Line: 1, Msg: err.Error(), Err: ErrBadConfig}
	}

	p.log.Debugw("header parsed", "file", p.fileName, "entries", len(header), "indent", opts.Indent.String())

	c.CountWhile(func(r rune) bool { return r == '\n' })

	doc := &LineDocument{
		Header:  header,
		Options: opts,
	}

	for {
		line, ok, err := p.ReadLine(&c, &opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		doc.Lines = append(doc.Lines, line)
	}

	p.log.Debugw("lines parsed", "file", p.fileName, "lines", len(doc.Lines))

	return doc, nil
}

// Parse runs the three stages over the source.
func (p *Parser) Parse(src string) (*Document, error) {
	lines, err := p.ParseLines(src)
	if err != nil {
		return nil, err
	}

	tree, err := p.BuildTree(lines)
	if err != nil {
		return nil, err
	}

	return p.Classify(tree)
}

// ParseFromBytes parses a document held in memory.
// fileName is for error messages and tracing purposes.
func ParseFromBytes(fileName string, src []byte, opts ...Option) (*Document, error) {
	return NewParser(fileName, opts...).Parse(string(src))
}

// ParseFromFile reads a file and parses it.
func ParseFromFile(fileName string, opts ...Option) (*Document, error) {
	src, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	return ParseFromBytes(fileName, src, opts...)
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tokenizer splits an input line into words with a cursor that never
// modifies the line. Shell metacharacters are separators, not operators.
package tokenizer

import "strings"

const (
	// Delimiters separate the words of a command line.
	Delimiters = " \t\n()<>|&;"
	// ValueDelimiters separate variable names and values. '&' is part of a value.
	ValueDelimiters = " \t\n()<>|;"
	// BackgroundMarker requests background execution when it is the last token.
	BackgroundMarker = "&"
)

// Tokenizer is a cursor over one line. The zero value yields no tokens.
type Tokenizer struct {
	line    string
	pos     int
	markers string
}

// Option configures a Tokenizer.
type Option func(t *Tokenizer)

// KeepMarkers makes the given delimiter characters come out as
// one-character tokens instead of being discarded.
func KeepMarkers(chars string) Option {
	return func(t *Tokenizer) {
		t.markers = chars
	}
}

// New returns a Tokenizer positioned at the start of line.
func New(line string, opts ...Option) *Tokenizer {
	t := &Tokenizer{line: line}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Next returns the next token separated by Delimiters.
func (t *Tokenizer) Next() (string, bool) {
	return t.NextDelim(Delimiters)
}

// NextDelim returns the next token separated by any byte in delims.
// It returns false once only delimiters remain.
func (t *Tokenizer) NextDelim(delims string) (string, bool) {
	for t.pos < len(t.line) {
		c := t.line[t.pos]
		if strings.IndexByte(delims, c) < 0 {
			break
		}

		if strings.IndexByte(t.markers, c) >= 0 {
			t.pos++
			return string(c), true
		}

		t.pos++
	}

	if t.pos >= len(t.line) {
		return "", false
	}

	start := t.pos
	for t.pos < len(t.line) && strings.IndexByte(delims, t.line[t.pos]) < 0 {
		t.pos++
	}

	return t.line[start:t.pos], true
}

// Rest drains the tokenizer and returns the remaining tokens.
func (t *Tokenizer) Rest() []string {
	var tokens []string

	for {
		tok, ok := t.Next()
		if !ok {
			return tokens
		}

		tokens = append(tokens, tok)
	}
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lineio reads command lines, with line editing when the input is a
// terminal and plain buffered reads otherwise.
package lineio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted is returned by Prompt when the user aborts the line with Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

// Reader prints a prompt and returns the next line without its newline.
// At end of input Prompt returns io.EOF.
type Reader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// New returns a Liner when in is a terminal that liner supports, and a Plain
// reader over in writing prompts to out otherwise.
func New(in *os.File, out io.Writer) Reader {
	if term.IsTerminal(int(in.Fd())) && liner.TerminalSupported() {
		return NewLiner()
	}

	return NewPlain(in, out)
}

// Liner is an interactive line editor with in-memory history.
// It always uses the process's own terminal.
type Liner struct {
	state *liner.State
}

var _ Reader = (*Liner)(nil)

// NewLiner puts the terminal under liner's control until Close.
func NewLiner() *Liner {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &Liner{state: state}
}

// Prompt implements Reader.
func (l *Liner) Prompt(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}

	return line, err //nolint:wrapcheck
}

// AppendHistory implements Reader. Blank lines are not recorded.
func (l *Liner) AppendHistory(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	l.state.AppendHistory(line)
}

// Close restores the terminal.
func (l *Liner) Close() error {
	return l.state.Close() //nolint:wrapcheck
}

// Plain reads newline-terminated lines from any reader, for pipes, files and tests.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

var _ Reader = (*Plain)(nil)

// NewPlain returns a Plain reader. A nil out suppresses prompts.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt implements Reader. A last line without a newline is still returned;
// io.EOF follows on the next call.
func (p *Plain) Prompt(prompt string) (string, error) {
	if p.out != nil {
		if _, err := io.WriteString(p.out, prompt); err != nil {
			return "", err //nolint:wrapcheck
		}
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}

		return "", err //nolint:wrapcheck
	}

	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// AppendHistory implements Reader. Plain readers keep no history.
func (p *Plain) AppendHistory(string) {}

// Close implements Reader.
func (p *Plain) Close() error {
	return nil
}

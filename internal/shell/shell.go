// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/mshell/internal/color"
	"github.com/matt-FFFFFF/mshell/internal/ctxlog"
	"github.com/matt-FFFFFF/mshell/internal/lineio"
	"github.com/matt-FFFFFF/mshell/internal/process"
	"github.com/matt-FFFFFF/mshell/internal/tokenizer"
)

// DefaultPrompt is printed before each line unless WithPrompt is used.
const DefaultPrompt = "308sh> "

var (
	// ErrExit is returned by the exit built-in to end the loop.
	ErrExit = errors.New("exit")
	// ErrUsage is returned when a built-in is called with missing operands.
	ErrUsage = errors.New("usage")
	// ErrReadInput is returned by Run when the next line cannot be read.
	ErrReadInput = errors.New("could not read input")
)

// Shell is the read, dispatch, execute loop.
type Shell struct {
	prompt   string
	in       lineio.Reader
	out      io.Writer
	errOut   io.Writer
	stdin    *os.File
	stdout   *os.File
	stderr   *os.File
	builtins map[string]Builtin
	run      func(ctx context.Context, cmd *process.Command) *process.Result
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the prompt string.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithOutput sets where built-in output, announcements and summaries go (out)
// and where errors are reported (errOut).
func WithOutput(out, errOut io.Writer) Option {
	return func(s *Shell) {
		s.out = out
		s.errOut = errOut
	}
}

// WithChildFiles sets the standard files inherited by external programs.
// A nil file means the interpreter's own.
func WithChildFiles(stdin, stdout, stderr *os.File) Option {
	return func(s *Shell) {
		s.stdin = stdin
		s.stdout = stdout
		s.stderr = stderr
	}
}

// New returns a Shell reading lines from in.
func New(in lineio.Reader, opts ...Option) *Shell {
	s := &Shell{
		prompt: DefaultPrompt,
		in:     in,
		out:    os.Stdout,
		errOut: os.Stderr,
		run: func(ctx context.Context, cmd *process.Command) *process.Result {
			return cmd.Run(ctx)
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.builtins = defaultBuiltins()

	return s
}

// Run prompts for and executes lines until end of input or exit.
// It returns nil for a normal end, ErrReadInput joined with the cause when
// input fails, and the process error when a program could not be created.
func (s *Shell) Run(ctx context.Context) error {
	logger := ctxlog.Logger(ctx)

	for {
		line, err := s.in.Prompt(s.prompt)

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			logger.Debug("end of input")
			// Keep the shell's own prompt line from running into the caller's.
			fmt.Fprintln(s.out) //nolint:errcheck

			return nil
		case errors.Is(err, lineio.ErrAborted):
			continue
		default:
			return errors.Join(ErrReadInput, err)
		}

		s.in.AppendHistory(line)

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				logger.Debug("exit requested")
				return nil
			}

			return err
		}
	}
}

// Execute dispatches one line. Errors of the command are reported and nil is
// returned; a non-nil error means the loop must stop, either ErrExit or a
// process that could not be created.
func (s *Shell) Execute(ctx context.Context, line string) error {
	toks := tokenizer.New(line, tokenizer.KeepMarkers(tokenizer.BackgroundMarker))

	name, ok := toks.Next()
	for ok && name == tokenizer.BackgroundMarker {
		name, ok = toks.Next()
	}

	if !ok {
		return nil
	}

	if fn, found := s.builtins[name]; found {
		ctxlog.Debug(ctx, "builtin", "name", name)

		err := fn(ctx, s, toks)
		if err == nil || errors.Is(err, ErrExit) {
			return err
		}

		s.report(err)

		return nil
	}

	return s.external(ctx, append([]string{name}, toks.Rest()...))
}

func (s *Shell) external(ctx context.Context, tokens []string) error {
	cmd, err := process.New(tokens)
	if err != nil {
		s.report(err)
		return nil
	}

	cmd.Stdin = s.stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = s.stderr
	cmd.Notify = s.out

	res := s.run(ctx, cmd)
	if !res.Success() {
		ctxlog.Debug(ctx, "command failed", "name", res.Name, "exitCode", res.ExitCode, "signal", res.Signal)
	}

	if res.Error != nil {
		s.report(res.Error)

		if errors.Is(res.Error, process.ErrSpawn) {
			return res.Error
		}
	}

	fmt.Fprintln(s.out, res.Summary()) //nolint:errcheck

	return nil
}

// report writes "Error: <err>" on one line to the error writer.
func (s *Shell) report(err error) {
	msg := strings.ReplaceAll(err.Error(), "\n", ": ")
	fmt.Fprintf(s.errOut, "%s %s\n", color.Colorize("Error:", color.FgRed, color.Bold), msg) //nolint:errcheck
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/mshell/internal/chdir"
	"github.com/matt-FFFFFF/mshell/internal/ctxlog"
	"github.com/matt-FFFFFF/mshell/internal/environ"
	"github.com/matt-FFFFFF/mshell/internal/tokenizer"
)

// Builtin runs inside the interpreter. args is positioned after the command name.
type Builtin func(ctx context.Context, s *Shell, args *tokenizer.Tokenizer) error

// HelpNames is the order in which help lists the built-in commands.
// pwd is listed but has no handler and runs as an external program.
var HelpNames = []string{"cd", "help", "exit", "pid", "ppid", "get", "set", "pwd"}

const helpHeader = `mshell, a minimal command interpreter
Anything else is run as a program found on PATH.
The following commands are built in:
`

func defaultBuiltins() map[string]Builtin {
	return map[string]Builtin{
		"cd":   builtinCd,
		"help": builtinHelp,
		"exit": builtinExit,
		"pid":  builtinPid,
		"ppid": builtinPpid,
		"get":  builtinGet,
		"set":  builtinSet,
	}
}

func builtinCd(ctx context.Context, _ *Shell, args *tokenizer.Tokenizer) error {
	target := nextOperand(args)

	dir, err := chdir.Change(target)
	if err != nil {
		return err //nolint:wrapcheck
	}

	ctxlog.Debug(ctx, "changed directory", "dir", dir)

	return nil
}

// nextOperand returns the next token that is not a background marker, or "".
func nextOperand(args *tokenizer.Tokenizer) string {
	for {
		tok, ok := args.Next()
		if !ok {
			return ""
		}

		if tok != tokenizer.BackgroundMarker {
			return tok
		}
	}
}

func builtinHelp(_ context.Context, s *Shell, _ *tokenizer.Tokenizer) error {
	fmt.Fprint(s.out, helpHeader) //nolint:errcheck

	for _, name := range HelpNames {
		fmt.Fprintf(s.out, "  %s\n", name) //nolint:errcheck
	}

	return nil
}

func builtinExit(_ context.Context, _ *Shell, _ *tokenizer.Tokenizer) error {
	return ErrExit
}

func builtinPid(_ context.Context, s *Shell, _ *tokenizer.Tokenizer) error {
	fmt.Fprintf(s.out, "ChildPID %d\n", os.Getpid()) //nolint:errcheck
	return nil
}

func builtinPpid(_ context.Context, s *Shell, _ *tokenizer.Tokenizer) error {
	fmt.Fprintf(s.out, "ParentPID %d\n", os.Getppid()) //nolint:errcheck
	return nil
}

func builtinGet(_ context.Context, s *Shell, args *tokenizer.Tokenizer) error {
	name, ok := args.NextDelim(tokenizer.ValueDelimiters)
	if !ok {
		return fmt.Errorf("%w: get NAME: %w", ErrUsage, environ.ErrMissingName)
	}

	v, err := environ.Get(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	fmt.Fprintln(s.out, v) //nolint:errcheck

	return nil
}

// builtinSet assigns the second operand to the first, or unsets the first
// when there is no second operand. Further operands are ignored.
func builtinSet(ctx context.Context, _ *Shell, args *tokenizer.Tokenizer) error {
	name, ok := args.NextDelim(tokenizer.ValueDelimiters)
	if !ok {
		return fmt.Errorf("%w: set NAME [VALUE]: %w", ErrUsage, environ.ErrMissingName)
	}

	value, ok := args.NextDelim(tokenizer.ValueDelimiters)
	if !ok {
		ctxlog.Debug(ctx, "unset variable", "name", name)
		return environ.Unset(name) //nolint:wrapcheck
	}

	ctxlog.Debug(ctx, "set variable", "name", name)

	return environ.Set(name, value) //nolint:wrapcheck
}

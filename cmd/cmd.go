// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/mshell/internal/banner"
	"github.com/matt-FFFFFF/mshell/internal/ctxlog"
	"github.com/matt-FFFFFF/mshell/internal/lineio"
	"github.com/matt-FFFFFF/mshell/internal/shell"
	"github.com/urfave/cli/v3"
)

const (
	promptFlag = "prompt"
	mFlag      = "m"

	// PromptEnvVar overrides the default prompt when -p is not given.
	PromptEnvVar = "MSHELL_PROMPT"
)

// ErrShell is returned when the interpreter loop stops on an error.
var ErrShell = errors.New("shell stopped")

// Standard files and the banner source, replaceable in tests.
var (
	stdin      = os.Stdin
	stdout     = os.Stdout
	stderr     = os.Stderr
	bannerPath = banner.DefaultPath
)

// RootCmd is the root command for the CLI.
var RootCmd = NewRootCmd()

// NewRootCmd builds the root command. A cli.Command should only be run once,
// tests build a fresh one per run.
func NewRootCmd() *cli.Command {
	return &cli.Command{
		Name:  "mshell",
		Usage: "a minimal interactive command interpreter",
		Description: `mshell reads commands from standard input, one per line. The built-in commands
cd, help, exit, pid, ppid, get and set run inside the interpreter, anything
else is started as a program from PATH and waited for. A trailing & marks a
command as background, it is announced as such but still waited for.`,
		UsageText: "mshell [-p PROMPT] [-m]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    promptFlag,
				Aliases: []string{"p"},
				Usage:   "The prompt printed before each command",
				Value:   shell.DefaultPrompt,
				Sources: cli.EnvVars(PromptEnvVar),
			},
			&cli.BoolFlag{
				Name:  mFlag,
				Usage: "Accepted for compatibility, has no effect",
			},
		},
		Writer:    stdout,
		ErrWriter: stderr,
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	printBanner(ctx, cmd)

	in := lineio.New(stdin, cmd.Writer)
	defer in.Close() //nolint:errcheck

	sh := shell.New(in,
		shell.WithPrompt(cmd.String(promptFlag)),
		shell.WithOutput(cmd.Writer, cmd.ErrWriter),
		shell.WithChildFiles(stdin, stdout, stderr),
	)

	if err := sh.Run(ctx); err != nil {
		return errors.Join(ErrShell, err)
	}

	return nil
}

// printBanner writes the "Last login" line. Failures are logged, not returned.
func printBanner(ctx context.Context, cmd *cli.Command) {
	path, err := bannerPath()
	if err != nil {
		ctxlog.Warn(ctx, "cannot locate executable for banner", "error", err)
		return
	}

	if err := banner.Write(cmd.Writer, path); err != nil {
		ctxlog.Warn(ctx, "banner skipped", "path", path, "error", err)
	}
}

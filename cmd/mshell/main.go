// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the mshell command interpreter.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/mshell"
	"github.com/matt-FFFFFF/mshell/cmd"
	"github.com/matt-FFFFFF/mshell/internal/ctxlog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	defer cancel()

	cmd.RootCmd.Version = fmt.Sprintf("%s (commit: %s)", mshell.Version, mshell.Commit)

	if err := cmd.RootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		cancel()
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
}

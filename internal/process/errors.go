// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"errors"
	"io/fs"
	"syscall"
)

const (
	// ExitNotFound is the status of a command that could not be found.
	ExitNotFound = 127
	// ExitNotExecutable is the status of a command that was found but could not be run.
	ExitNotExecutable = 126
)

var (
	// ErrExec is returned when the program cannot be found or executed.
	ErrExec = errors.New("exec")
	// ErrCommandNotFound is joined with ErrExec when no executable matches the name.
	ErrCommandNotFound = errors.New("command not found")
	// ErrPermissionDenied is joined with ErrExec when the file exists but cannot be executed.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSpawn is returned when the process could not be created.
	ErrSpawn = errors.New("could not start process")
	// ErrEmptyArgv is returned for a command without a program name.
	ErrEmptyArgv = errors.New("empty argument vector")
	// ErrCancelled is returned when the context ended and the child was killed.
	ErrCancelled = errors.New("context done, process killed")
)

// isExecFailure reports whether a start error belongs to the program rather
// than to process creation.
func isExecFailure(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.ENOEXEC) ||
		errors.Is(err, syscall.EISDIR)
}

// exitCodeFor returns the conventional shell status for an exec failure.
func exitCodeFor(err error) int {
	if errors.Is(err, ErrCommandNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}

	return ExitNotExecutable
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell is the interactive loop of the interpreter.
//
// Each line read is split into tokens. When the first token names a built-in
// command the built-in runs inside the interpreter process, otherwise the
// whole line is started as an external program which the loop waits for
// before prompting again.
//
// Errors from a single command are reported on the error writer and the loop
// carries on. Only end of input, the exit built-in, a failure to read input
// and a failure to create a process end the loop.
package shell

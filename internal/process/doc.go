// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package process runs one external program in the foreground.
//
// A Command is looked up on PATH, started with the interpreter's environment,
// working directory and standard streams, announced as "[pid] name" and then
// waited for. Waiting only ends when the child exits or is killed by a
// signal: a stopped child is still waited for. Background commands are
// recognised and announced but are waited for like any other.
//
// Failures come in two kinds. ErrExec means the program could not be run
// (missing, not executable); the interpreter reports it and carries on.
// ErrSpawn means the operating system could not create the process at all;
// the interpreter treats it as fatal.
//
// Exec failures are detected before or by the start call, so no child exists
// for them: their Result has Pid 0, Exited false and status 127 or 126.
package process

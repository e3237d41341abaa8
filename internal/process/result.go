// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"fmt"
	"os"
	"strings"
)

// Result is the outcome of one Command.
type Result struct {
	Pid        int       // Process id, 0 if no process was created.
	Name       string    // Program name as typed, i.e. Args[0].
	Background bool      // The command ended with the background marker.
	Exited     bool      // The child exited normally (not killed by a signal).
	ExitCode   int       // Exit status, or 126/127 for exec failures, -1 when unknown.
	Signal     os.Signal // Signal that terminated the child, if any.
	Error      error     // Exec, spawn, wait or cancellation error.
}

// Success reports whether the child exited normally with status 0.
func (r *Result) Success() bool {
	return r.Exited && r.ExitCode == 0 && r.Error == nil
}

// Summary renders the completion line printed after the child is reaped:
// "[pid] name Exit N", where N is 1 if the child exited normally and 0
// otherwise. Non-zero statuses and terminating signals are appended.
func (r *Result) Summary() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "[%d] %s Exit %d", r.Pid, r.Name, boolToInt(r.Exited))

	switch {
	case r.Signal != nil:
		fmt.Fprintf(&sb, " (signal %s)", r.Signal)
	case r.ExitCode != 0:
		fmt.Fprintf(&sb, " (status %d)", r.ExitCode)
	}

	return sb.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

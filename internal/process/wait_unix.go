// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package process

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/mshell/internal/ctxlog"
	"golang.org/x/sys/unix"
)

// wait reaps ps. WUNTRACED makes stops visible so they can be logged; a
// stopped child is not finished, so waiting continues until it exits or is
// killed.
func wait(ctx context.Context, ps *os.Process) (exitStatus, error) {
	var ws unix.WaitStatus

	for {
		_, err := unix.Wait4(ps.Pid, &ws, unix.WUNTRACED, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return exitStatus{code: -1}, fmt.Errorf("wait for pid %d: %w", ps.Pid, err)
		}

		switch {
		case ws.Exited():
			return exitStatus{exited: true, code: ws.ExitStatus()}, nil
		case ws.Signaled():
			return exitStatus{code: -1, signal: ws.Signal()}, nil
		case ws.Stopped():
			ctxlog.Debug(ctx, "process stopped, still waiting", "pid", ps.Pid, "signal", ws.StopSignal().String())
		}
	}
}

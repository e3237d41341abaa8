// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/matt-FFFFFF/mshell/internal/ctxlog"
	"github.com/matt-FFFFFF/mshell/internal/tokenizer"
)

// startProcess is os.StartProcess, replaceable in tests.
var startProcess = os.StartProcess

// Command is one external program invocation.
type Command struct {
	Args       []string  // Argument vector, Args[0] is the program name. Not modified by Run.
	Background bool      // Announced as a background job; still waited for.
	Stdin      *os.File  // Nil means os.Stdin.
	Stdout     *os.File  // Nil means os.Stdout.
	Stderr     *os.File  // Nil means os.Stderr.
	Notify     io.Writer // Receives the "[pid] name" announcement, nil to stay quiet.

	dir         string   // Working directory, empty for the interpreter's.
	environment []string // Nil for the interpreter's current environment.
	started     func(pid int)
}

// ParseArgv turns the remaining tokens of a line into an argument vector.
// Background marker tokens are dropped; background is true only when the
// last token is the marker.
func ParseArgv(tokens []string) (argv []string, background bool) {
	if n := len(tokens); n > 0 && tokens[n-1] == tokenizer.BackgroundMarker {
		background = true
	}

	argv = make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if tok == tokenizer.BackgroundMarker {
			continue
		}

		argv = append(argv, tok)
	}

	return argv, background
}

// New builds a Command from tokens, see ParseArgv.
func New(tokens []string) (*Command, error) {
	argv, background := ParseArgv(tokens)
	if len(argv) == 0 {
		return nil, ErrEmptyArgv
	}

	return &Command{
		Args:       argv,
		Background: background,
	}, nil
}

// Name returns the program name.
func (c *Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}

	return c.Args[0]
}

// Run starts the program and blocks until it has exited or been killed.
// If ctx ends first the child is killed and the result carries ErrCancelled.
func (c *Command) Run(ctx context.Context) *Result {
	res := &Result{
		Name:       c.Name(),
		Background: c.Background,
		ExitCode:   -1,
	}

	if len(c.Args) == 0 {
		res.Error = ErrEmptyArgv
		return res
	}

	logger := ctxlog.Logger(ctx).With("runner", "process", "name", res.Name)

	path, err := LookPath(res.Name)
	if err != nil {
		logger.Debug("lookup failed", "error", err)
		res.Error = err
		res.ExitCode = exitCodeFor(err)

		return res
	}

	logger.Debug("starting process", "path", path, "args", c.Args, "background", c.Background)

	ps, err := startProcess(path, c.Args, &os.ProcAttr{
		Dir:   c.dir,
		Env:   c.env(),
		Files: []*os.File{orDefault(c.Stdin, os.Stdin), orDefault(c.Stdout, os.Stdout), orDefault(c.Stderr, os.Stderr)},
	})
	if err != nil {
		if isExecFailure(err) {
			res.Error = fmt.Errorf("%w: %s: %w", ErrExec, res.Name, err)
			res.ExitCode = exitCodeFor(err)
		} else {
			res.Error = fmt.Errorf("%w: %s: %w", ErrSpawn, res.Name, err)
		}

		logger.Debug("start failed", "error", res.Error)

		return res
	}

	res.Pid = ps.Pid
	logger = logger.With("pid", ps.Pid)
	logger.Debug("process started")

	c.announce(ps.Pid)

	if c.started != nil {
		c.started(ps.Pid)
	}

	// The watchdog kills the child if the context ends before it is reaped.
	done := make(chan struct{})
	killed := make(chan error, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		select {
		case <-ctx.Done():
			logger.Info("context done, killing process")

			if killPs(ctx, ps) {
				killed <- ErrCancelled
			}
		case <-done:
		}
	}()

	st, err := wait(ctx, ps)

	close(done)
	wg.Wait()

	_ = ps.Release()

	res.Exited = st.exited
	res.ExitCode = st.code
	res.Signal = st.signal

	if err != nil {
		res.Error = errors.Join(res.Error, err)
	}

	select {
	case e := <-killed:
		res.Error = errors.Join(res.Error, e)
	default:
	}

	logger.Debug("process finished", "exited", res.Exited, "exitCode", res.ExitCode, "signal", res.Signal)

	return res
}

func (c *Command) announce(pid int) {
	if c.Notify == nil {
		return
	}

	suffix := ""
	if c.Background {
		suffix = " " + tokenizer.BackgroundMarker
	}

	fmt.Fprintf(c.Notify, "[%d] %s%s\n", pid, c.Name(), suffix) //nolint:errcheck
}

func (c *Command) env() []string {
	if c.environment != nil {
		return c.environment
	}

	return os.Environ()
}

// exitStatus is the reaped state of a child.
type exitStatus struct {
	exited bool
	code   int
	signal os.Signal
}

func orDefault(f, def *os.File) *os.File {
	if f == nil {
		return def
	}

	return f
}

// killPs kills the process and reports whether a signal was delivered.
func killPs(ctx context.Context, ps *os.Process) bool {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Logger(ctx).Debug("process already done", "pid", ps.Pid)
			return false
		}

		ctxlog.Logger(ctx).Error("process kill error", "pid", ps.Pid, "error", err)

		return false
	}

	ctxlog.Logger(ctx).Info("process killed", "pid", ps.Pid)

	return true
}

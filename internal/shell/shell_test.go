// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/mshell/internal/chdir"
	"github.com/matt-FFFFFF/mshell/internal/ctxlog"
	"github.com/matt-FFFFFF/mshell/internal/environ"
	"github.com/matt-FFFFFF/mshell/internal/lineio"
	"github.com/matt-FFFFFF/mshell/internal/process"
	"github.com/matt-FFFFFF/mshell/internal/tokenizer"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrompt = "> "

type harness struct {
	shell  *Shell
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()

	return newHarnessWithReader(t, lineio.NewPlain(strings.NewReader(input), nil))
}

func newHarnessWithReader(t *testing.T, r lineio.Reader) *harness {
	t.Helper()

	h := &harness{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}

	h.shell = New(r, WithPrompt(testPrompt), WithOutput(h.out, h.errOut))

	return h
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctxlog.New(ctx, ctxlog.DefaultLogger)
}

func assertCwd(t *testing.T, want string) {
	t.Helper()

	got, err := os.Getwd()
	require.NoError(t, err)

	want, err = filepath.EvalSymlinks(want)
	require.NoError(t, err)

	got, err = filepath.EvalSymlinks(got)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

// fakeReader returns the queued lines and errors in order, then io.EOF.
type fakeReader struct {
	steps   []fakeStep
	history []string
}

type fakeStep struct {
	line string
	err  error
}

func (f *fakeReader) Prompt(string) (string, error) {
	if len(f.steps) == 0 {
		return "", io.EOF
	}

	step := f.steps[0]
	f.steps = f.steps[1:]

	return step.line, step.err
}

func (f *fakeReader) AppendHistory(line string) {
	f.history = append(f.history, line)
}

func (f *fakeReader) Close() error {
	return nil
}

func TestRun_EndOfInput(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.shell.Run(testContext(t)))
	assert.Equal(t, "\n", h.out.String())
	assert.Empty(t, h.errOut.String())
}

func TestRun_PromptWritten(t *testing.T) {
	var out bytes.Buffer

	r := lineio.NewPlain(strings.NewReader("pid\n"), &out)
	s := New(r, WithPrompt(testPrompt), WithOutput(&out, io.Discard))

	require.NoError(t, s.Run(testContext(t)))
	assert.True(t, strings.HasPrefix(out.String(), testPrompt+"ChildPID "), out.String())
	assert.True(t, strings.HasSuffix(out.String(), testPrompt+"\n"), out.String())
}

func TestRun_DelimiterOnlyLines(t *testing.T) {
	h := newHarness(t, "   \n;;|<>()\n\t&\n& &\n\n")

	require.NoError(t, h.shell.Run(testContext(t)))
	assert.Equal(t, "\n", h.out.String())
	assert.Empty(t, h.errOut.String())
}

func TestRun_ExitIgnoresRemainingTokens(t *testing.T) {
	h := newHarness(t, "exit now please\npid\n")

	require.NoError(t, h.shell.Run(testContext(t)))
	assert.Empty(t, h.out.String())
	assert.Empty(t, h.errOut.String())
}

func TestRun_ExitIsCaseSensitive(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	h := newHarness(t, "EXIT\npid\n")

	require.NoError(t, h.shell.Run(testContext(t)))
	assert.Contains(t, h.errOut.String(), "EXIT")
	assert.Contains(t, h.errOut.String(), process.ErrCommandNotFound.Error())
	assert.Contains(t, h.out.String(), "ChildPID ")
}

func TestRun_AbortedPromptContinues(t *testing.T) {
	r := &fakeReader{steps: []fakeStep{
		{err: lineio.ErrAborted},
		{line: "ppid"},
	}}
	h := newHarnessWithReader(t, r)

	require.NoError(t, h.shell.Run(testContext(t)))
	assert.Contains(t, h.out.String(), "ParentPID ")
	assert.Equal(t, []string{"ppid"}, r.history)
}

func TestRun_ReadError(t *testing.T) {
	errBroken := errors.New("broken terminal")
	r := &fakeReader{steps: []fakeStep{
		{line: "pid"},
		{err: errBroken},
		{line: "ppid"},
	}}
	h := newHarnessWithReader(t, r)

	err := h.shell.Run(testContext(t))
	require.ErrorIs(t, err, ErrReadInput)
	require.ErrorIs(t, err, errBroken)
	assert.NotContains(t, h.out.String(), "ParentPID")
}

func TestRun_SpawnErrorIsFatal(t *testing.T) {
	h := newHarness(t, "anything\npid\n")
	h.shell.run = func(_ context.Context, cmd *process.Command) *process.Result {
		return &process.Result{
			Name:     cmd.Name(),
			ExitCode: -1,
			Error:    errors.Join(process.ErrSpawn, syscall.EAGAIN),
		}
	}

	err := h.shell.Run(testContext(t))
	require.ErrorIs(t, err, process.ErrSpawn)
	assert.Contains(t, h.errOut.String(), "Error: "+process.ErrSpawn.Error())
	assert.NotContains(t, h.out.String(), "ChildPID")
}

func TestExecute_PassesTokensToRunner(t *testing.T) {
	tests := []struct {
		line       string
		args       []string
		background bool
	}{
		{line: "ls -l /tmp", args: []string{"ls", "-l", "/tmp"}},
		{line: "sleep 1 &", args: []string{"sleep", "1"}, background: true},
		{line: "sleep 1&", args: []string{"sleep", "1"}, background: true},
		{line: "& true", args: []string{"true"}},
		{line: "a & b", args: []string{"a", "b"}},
		{line: "grep x < in > out | wc;", args: []string{"grep", "x", "in", "out", "wc"}},
		{line: "pwd", args: []string{"pwd"}},
		{line: "Cd /", args: []string{"Cd", "/"}},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			h := newHarness(t, "")

			var got *process.Command

			h.shell.run = func(_ context.Context, cmd *process.Command) *process.Result {
				got = cmd
				return &process.Result{Pid: 99, Name: cmd.Name(), Background: cmd.Background, Exited: true}
			}

			require.NoError(t, h.shell.Execute(testContext(t), tc.line))
			require.NotNil(t, got)
			assert.Equal(t, tc.args, got.Args)
			assert.Equal(t, tc.background, got.Background)
			assert.Equal(t, h.out, got.Notify)
			assert.Equal(t, "[99] "+tc.args[0]+" Exit 1\n", h.out.String())
		})
	}
}

func TestBuiltin_Help(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.shell.Execute(testContext(t), "help me"))

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden")))
	g.Assert(t, "help", h.out.Bytes())

	lines := strings.Split(strings.TrimSuffix(h.out.String(), "\n"), "\n")
	require.Greater(t, len(lines), len(HelpNames))

	names := lines[len(lines)-len(HelpNames):]
	for i, name := range HelpNames {
		assert.Equal(t, "  "+name, names[i])
	}

	assert.Equal(t, []string{"cd", "help", "exit", "pid", "ppid", "get", "set", "pwd"}, HelpNames)
}

func TestBuiltin_PidPpid(t *testing.T) {
	h := newHarness(t, "")
	ctx := testContext(t)

	require.NoError(t, h.shell.Execute(ctx, "pid"))
	require.NoError(t, h.shell.Execute(ctx, "ppid"))

	assert.Equal(t,
		"ChildPID "+strconv.Itoa(os.Getpid())+"\nParentPID "+strconv.Itoa(os.Getppid())+"\n",
		h.out.String())
}

func TestBuiltin_SetGet(t *testing.T) {
	const name = "MSHELL_TEST_SHELL_VAR"

	t.Setenv(name, "before")

	h := newHarness(t, "set "+name+" a&b\nget "+name+"\nset "+name+"\nget "+name+"\n")

	require.NoError(t, h.shell.Run(testContext(t)))

	assert.Equal(t, "a&b\n\n", h.out.String())
	assert.Equal(t, "Error: "+environ.ErrNotSet.Error()+": "+name+"\n", h.errOut.String())

	_, ok := os.LookupEnv(name)
	assert.False(t, ok)
}

func TestBuiltin_SetIgnoresExtraOperands(t *testing.T) {
	const name = "MSHELL_TEST_SHELL_EXTRA"

	t.Setenv(name, "")

	h := newHarness(t, "")
	require.NoError(t, h.shell.Execute(testContext(t), "set "+name+" one two"))
	assert.Equal(t, "one", os.Getenv(name))
}

func TestBuiltin_Usage(t *testing.T) {
	ctx := testContext(t)
	h := newHarness(t, "")

	for _, fn := range []Builtin{builtinGet, builtinSet} {
		err := fn(ctx, h.shell, tokenizer.New(" ; "))
		require.ErrorIs(t, err, ErrUsage)
		require.ErrorIs(t, err, environ.ErrMissingName)
	}

	require.NoError(t, h.shell.Execute(ctx, "get"))
	require.NoError(t, h.shell.Execute(ctx, "set"))
	assert.Equal(t, 2, strings.Count(h.errOut.String(), "Error: usage"))
}

func TestBuiltin_CdHome(t *testing.T) {
	start := t.TempDir()
	home := t.TempDir()

	t.Chdir(start)
	t.Setenv(chdir.EnvHome, home)

	h := newHarness(t, "")
	require.NoError(t, h.shell.Execute(testContext(t), "cd"))
	assertCwd(t, home)
	assert.Empty(t, h.errOut.String())
}

func TestBuiltin_CdIgnoresBackgroundMarker(t *testing.T) {
	for _, line := range []string{"cd &", "cd&", "cd & &"} {
		t.Run(line, func(t *testing.T) {
			start := t.TempDir()
			home := t.TempDir()

			t.Chdir(start)
			t.Setenv(chdir.EnvHome, home)

			h := newHarness(t, "")
			require.NoError(t, h.shell.Execute(testContext(t), line))
			assertCwd(t, home)
			assert.Empty(t, h.errOut.String())
		})
	}
}

func TestBuiltin_CdTargetAfterMarker(t *testing.T) {
	start := t.TempDir()
	target := t.TempDir()

	t.Chdir(start)

	h := newHarness(t, "")
	require.NoError(t, h.shell.Execute(testContext(t), "cd & "+target))
	assertCwd(t, target)
}

func TestBuiltin_CdHomeNotSet(t *testing.T) {
	start := t.TempDir()

	t.Chdir(start)
	t.Setenv(chdir.EnvHome, "")
	require.NoError(t, os.Unsetenv(chdir.EnvHome))

	h := newHarness(t, "")
	require.NoError(t, h.shell.Execute(testContext(t), "cd"))
	assertCwd(t, start)
	assert.Equal(t, "Error: "+chdir.ErrHomeNotSet.Error()+"\n", h.errOut.String())
}

func TestBuiltin_CdTildeConcatenates(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "usub"), 0o755))

	t.Chdir(base)
	t.Setenv(chdir.EnvHome, filepath.Join(base, "u"))

	h := newHarness(t, "")
	require.NoError(t, h.shell.Execute(testContext(t), "cd ~sub"))
	assertCwd(t, filepath.Join(base, "usub"))
}

func TestBuiltin_CdMissingDirectory(t *testing.T) {
	start := t.TempDir()
	t.Chdir(start)

	h := newHarness(t, "")
	require.NoError(t, h.shell.Execute(testContext(t), "cd does-not-exist"))
	assertCwd(t, start)
	assert.Contains(t, h.errOut.String(), "Error: "+chdir.ErrChangeDir.Error())
	assert.Equal(t, 1, strings.Count(h.errOut.String(), "\n"))
}

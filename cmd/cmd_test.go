// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/matt-FFFFFF/mshell/internal/banner"
	"github.com/matt-FFFFFF/mshell/internal/shell"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exePath = "/usr/local/bin/mshell"

type stdio struct {
	out func() string
	err func() string
}

func tempFile(t *testing.T, name, content string) *os.File {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	_, err = f.WriteString(content)
	require.NoError(t, err)

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	return f
}

func readBack(t *testing.T, f *os.File) func() string {
	t.Helper()

	return func() string {
		_, err := f.Seek(0, io.SeekStart)
		require.NoError(t, err)

		b, err := io.ReadAll(f)
		require.NoError(t, err)

		return string(b)
	}
}

// stubStdio feeds input to the interpreter and captures its output.
func stubStdio(t *testing.T, input string) stdio {
	t.Helper()

	in := tempFile(t, "stdin", input)
	out := tempFile(t, "stdout", "")
	errOut := tempFile(t, "stderr", "")

	stubs := gostub.Stub(&stdin, in).
		Stub(&stdout, out).
		Stub(&stderr, errOut)
	t.Cleanup(stubs.Reset)

	return stdio{out: readBack(t, out), err: readBack(t, errOut)}
}

func stubBanner(t *testing.T) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, exePath, []byte("binary"), 0o755))

	when := time.Date(2025, time.March, 7, 9, 5, 1, 0, time.Local)
	require.NoError(t, fs.Chtimes(exePath, when, when))

	stubs := gostub.Stub(&banner.FsFactory, func() afero.Fs { return fs }).
		StubFunc(&bannerPath, exePath, nil)
	t.Cleanup(stubs.Reset)
}

func TestRootCmd_Session(t *testing.T) {
	t.Setenv("MSHELL_TEST_CMD_VAR", "")

	std := stubStdio(t, "set MSHELL_TEST_CMD_VAR hello\nget MSHELL_TEST_CMD_VAR\nexit\npid\n")
	stubBanner(t)

	require.NoError(t, NewRootCmd().Run(context.Background(), []string{"mshell", "-p", "$ "}))

	assert.Equal(t, "Last login: Fri Mar  7 09:05:01 2025\n$ $ hello\n$ ", std.out())
	assert.Empty(t, std.err())
}

func TestRootCmd_DefaultPrompt(t *testing.T) {
	std := stubStdio(t, "")
	stubBanner(t)

	require.NoError(t, NewRootCmd().Run(context.Background(), []string{"mshell"}))

	assert.Equal(t, "Last login: Fri Mar  7 09:05:01 2025\n"+shell.DefaultPrompt+"\n", std.out())
}

func TestRootCmd_PromptFromEnv(t *testing.T) {
	t.Setenv(PromptEnvVar, "env> ")

	std := stubStdio(t, "exit\n")
	stubBanner(t)

	require.NoError(t, NewRootCmd().Run(context.Background(), []string{"mshell", "-m"}))

	assert.Equal(t, "Last login: Fri Mar  7 09:05:01 2025\nenv> ", std.out())
}

func TestRootCmd_BannerFailureIsNotFatal(t *testing.T) {
	std := stubStdio(t, "exit\n")

	stubs := gostub.StubFunc(&bannerPath, "", errors.New("no executable"))
	t.Cleanup(stubs.Reset)

	require.NoError(t, NewRootCmd().Run(context.Background(), []string{"mshell", "-p", "% "}))

	assert.Equal(t, "% ", std.out())
}

func TestRootCmd_ReadErrorFails(t *testing.T) {
	std := stubStdio(t, "")
	stubBanner(t)

	require.NoError(t, stdin.Close())

	err := NewRootCmd().Run(context.Background(), []string{"mshell", "-p", "> "})
	require.ErrorIs(t, err, ErrShell)
	require.ErrorIs(t, err, shell.ErrReadInput)
	require.ErrorIs(t, err, os.ErrClosed)

	assert.Contains(t, std.out(), "Last login: ")
}

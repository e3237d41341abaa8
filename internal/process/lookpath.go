// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// EnvPath names the variable holding the executable search path.
const EnvPath = "PATH"

// LookPath finds the executable for name.
//
// A name containing a slash is used as a path as is. Otherwise each PATH
// entry is tried in order and the first regular file with an execute bit
// wins; an empty entry means the current directory. Errors wrap ErrExec
// together with ErrCommandNotFound or ErrPermissionDenied.
func LookPath(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyArgv
	}

	if strings.Contains(name, "/") {
		return name, checkExecutable(name)
	}

	var denied error

	for _, dir := range filepath.SplitList(os.Getenv(EnvPath)) {
		if dir == "" {
			dir = "."
		}

		candidate := filepath.Join(dir, name)

		err := checkExecutable(candidate)
		if err == nil {
			return candidate, nil
		}

		if denied == nil && errors.Is(err, ErrPermissionDenied) {
			denied = err
		}
	}

	if denied != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExec, name, ErrPermissionDenied)
	}

	return "", fmt.Errorf("%w: %s: %w", ErrExec, name, ErrCommandNotFound)
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExec, path, ErrCommandNotFound)
	}

	// check if the file is executable if not Windows
	if info.IsDir() || (runtime.GOOS != "windows" && info.Mode()&0o111 == 0) {
		return fmt.Errorf("%w: %s: %w", ErrExec, path, ErrPermissionDenied)
	}

	return nil
}

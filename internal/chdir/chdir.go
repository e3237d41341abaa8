// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package chdir changes the working directory of the interpreter, with the
// home directory as default and '~' as a home prefix.
package chdir

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// EnvHome names the variable holding the home directory.
const EnvHome = "HOME"

var (
	// ErrHomeNotSet is returned when the home directory is needed but HOME is unset.
	ErrHomeNotSet = errors.New("HOME environment variable not set, home directory commands will not work")
	// ErrChangeDir is returned when the target cannot be entered.
	ErrChangeDir = errors.New("could not change directory")
)

// Resolve returns the directory cd should enter for target.
//
// An empty target means $HOME. A target starting with '~' is $HOME followed
// by the rest of target, joined as plain strings: "~/src" is "$HOME/src" and
// "~src" is "$HOMEsrc". Any other target is returned as given.
func Resolve(target string) (string, error) {
	if target != "" && !strings.HasPrefix(target, "~") {
		return target, nil
	}

	home, ok := os.LookupEnv(EnvHome)
	if !ok {
		return "", ErrHomeNotSet
	}

	return home + strings.TrimPrefix(target, "~"), nil
}

// Change resolves target and makes it the working directory.
// On error the working directory is left as it was.
func Change(target string) (string, error) {
	dir, err := Resolve(target)
	if err != nil {
		return "", err
	}

	if err := os.Chdir(dir); err != nil {
		return "", errors.Join(fmt.Errorf("%w: %s", ErrChangeDir, dir), err)
	}

	return dir, nil
}

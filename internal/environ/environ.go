// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package environ reads and writes the process environment.
// There is no cache: every call goes to the operating system, so changes are
// inherited by any child started afterwards.
package environ

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrMissingName is returned when no variable name was given.
	ErrMissingName = errors.New("missing variable name")
	// ErrNotSet is returned by Get when the variable does not exist.
	ErrNotSet = errors.New("variable not set")
	// ErrSetVariable is returned when the operating system rejects a change.
	ErrSetVariable = errors.New("could not update variable")
)

// Get returns the value of name. A variable set to the empty string is found.
func Get(name string) (string, error) {
	if name == "" {
		return "", ErrMissingName
	}

	v, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotSet, name)
	}

	return v, nil
}

// Set assigns value to name, replacing any previous value.
func Set(name, value string) error {
	if name == "" {
		return ErrMissingName
	}

	if err := os.Setenv(name, value); err != nil {
		return errors.Join(fmt.Errorf("%w: %s", ErrSetVariable, name), err)
	}

	return nil
}

// Unset removes name. Removing a variable that does not exist is not an error.
func Unset(name string) error {
	if name == "" {
		return ErrMissingName
	}

	if err := os.Unsetenv(name); err != nil {
		return errors.Join(fmt.Errorf("%w: %s", ErrSetVariable, name), err)
	}

	return nil
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package banner prints the "Last login" line shown when the interpreter starts.
package banner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
)

// TimeLayout matches the C library's ctime(3) output.
const TimeLayout = "Mon Jan _2 15:04:05 2006"

var (
	// ErrStat is returned when the banner file cannot be inspected.
	ErrStat = errors.New("could not read banner file")
	// ErrWrite is returned when the banner cannot be written.
	ErrWrite = errors.New("could not write banner")
)

// FsFactory returns the filesystem the banner file is read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// LastAccess returns the access time of path. Filesystems that do not expose
// an access time fall back to the modification time.
func LastAccess(path string) (time.Time, error) {
	fi, err := FsFactory().Stat(path)
	if err != nil {
		return time.Time{}, errors.Join(fmt.Errorf("%w: %s", ErrStat, path), err)
	}

	return accessTime(fi), nil
}

// Write prints "Last login: <access time of path>".
func Write(w io.Writer, path string) error {
	t, err := LastAccess(path)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Last login: %s\n", t.Format(TimeLayout)); err != nil {
		return errors.Join(ErrWrite, err)
	}

	return nil
}

// DefaultPath is the running executable, whose access time stands in for
// the last time the interpreter was started.
func DefaultPath() (string, error) {
	return os.Executable() //nolint:wrapcheck
}

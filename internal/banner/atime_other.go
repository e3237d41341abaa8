// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !linux && !openbsd && !darwin && !freebsd && !netbsd

package banner

import (
	"os"
	"time"
)

func accessTime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}

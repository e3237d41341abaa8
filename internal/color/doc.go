// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color colours terminal output with ANSI escape codes.
// Output is plain when NO_COLOR is set, or when stdout is not a terminal and
// FORCE_COLOR is not set.
package color

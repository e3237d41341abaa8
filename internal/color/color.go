// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	prefix = "\033["
	suffix = "m"
	reset  = "\033[0m"
)

// Code is an SGR parameter.
type Code int

// Text attributes.
const (
	Reset Code = iota
	Bold
	Faint
)

// Foreground colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground hi-intensity colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled = isColorCapable(os.Stdout)

// Enabled reports whether Colorize emits escape codes.
//
// NO_COLOR wins over FORCE_COLOR; without either, color is on only when
// stdout is a terminal.
func Enabled() bool {
	return enabled
}

// Colorize wraps str in the given codes when color is enabled and returns
// str unchanged otherwise.
func Colorize(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	return Wrap(str, codes...)
}

// Wrap wraps str in the given codes and a trailing reset, regardless of
// whether color is enabled.
func Wrap(str string, codes ...Code) string {
	if len(codes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + 4*len(codes))
	sb.WriteString(prefix)

	for i, code := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

func isColorCapable(f *os.File) bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog logger in a context.Context.
//
// The level is read once at start-up from an environment variable derived
// from the executable name: for a binary called "mshell" the variable is
// MSHELL_LOG_LEVEL. Accepted values are DEBUG, INFO, WARN and ERROR; anything
// else selects WARN.
//
// The default handler is a pretty console handler that writes to stderr.
package ctxlog

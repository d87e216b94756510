// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable output.
// When stderr is piped or redirected (CI, scripts, batch triage), uses
// slog.JSONHandler for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(slog.LevelInfo).With(
//	    "command", "swf/decompress",
//	    "path", path,
//	)
func NewCommandLogger(level slog.Level) *slog.Logger {
	return NewLogger(os.Stderr, level, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewLogger creates a logger writing to w: text when human is true,
// JSON otherwise.
func NewLogger(w io.Writer, level slog.Level, human bool) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if human {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

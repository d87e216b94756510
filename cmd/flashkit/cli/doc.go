// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for flashkit.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/flashkit/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// Flag sets are usually built from tagged parameter structs with
// [FlagsFromParams]; embedding [JSONOutput] adds --json.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Commands report failures as [ToolError] values carrying an
// [ErrorCategory], or as [ExitError] when they have already printed
// their own outcome. [NewCommandLogger] builds the slog logger every
// command uses.
package cli

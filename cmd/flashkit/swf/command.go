// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
)

// environment carries the process resources commands write to.
type environment struct {
	stdout    io.Writer
	newLogger func(level slog.Level) *slog.Logger
}

func standardEnvironment() *environment {
	return &environment{
		stdout:    os.Stdout,
		newLogger: cli.NewCommandLogger,
	}
}

// Command returns the "swf" command group.
func Command() *cli.Command {
	return newCommand(standardEnvironment())
}

func newCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "swf",
		Summary: "Parse and analyze Flash objects",
		Description: `Parse and analyze Flash (SWF) objects.

An SWF container starts with a 3-byte signature naming its compression:
FWS (none), CWS (zlib), or ZWS (LZMA). "decompress" rebuilds an
uncompressed FWS container from a compressed one so that other tools
can inspect its tags; "info" prints the envelope header.`,
		HelpOutput: env.stdout,
		Subcommands: []*cli.Command{
			decompressCommand(env),
			infoCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Decompress a sample and dump it to the temp directory",
				Command:     "flashkit swf decompress --dump sample.swf",
			},
			{
				Description: "Print the envelope header as JSON",
				Command:     "flashkit swf info --json sample.swf",
			},
		},
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the flashkit command tree.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	cborcmd "github.com/bureau-foundation/flashkit/cmd/flashkit/cbor"
	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
	swfcmd "github.com/bureau-foundation/flashkit/cmd/flashkit/swf"
	"github.com/bureau-foundation/flashkit/lib/version"
)

// Root builds and returns the complete flashkit command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "flashkit",
		Description: `flashkit: Flash (SWF) object analysis.

Identify the compression envelope of SWF files, rebuild uncompressed
containers from CWS (zlib) and ZWS (LZMA) objects, and dump them under
content-hash names for further analysis.`,
		Subcommands: []*cli.Command{
			swfcmd.Command(),
			cborcmd.Command(),
			versionCommand(os.Stdout),
		},
		Examples: []cli.Example{
			{
				Description: "Decompress a Flash object and dump it to the temp directory",
				Command:     "flashkit swf decompress --dump sample.swf",
			},
			{
				Description: "Show the envelope header",
				Command:     "flashkit swf info sample.swf",
			},
		},
	}
}

func versionCommand(stdout io.Writer) *cli.Command {
	var params struct {
		cli.JSONOutput
	}

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			if done, err := params.EmitJSON(stdout, version.Current()); done {
				return err
			}
			fmt.Fprintf(stdout, "flashkit %s\n", version.Full())
			return nil
		},
	}
}

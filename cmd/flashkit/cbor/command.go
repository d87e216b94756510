// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
)

// environment carries the streams the commands read and write.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
}

// InputParams are shared by every subcommand.
type InputParams struct {
	HexInput bool `json:"hex_input" flag:"hex,x" desc:"treat input as hex-encoded CBOR"`
}

type decodeParams struct {
	InputParams
	Compact bool `json:"compact" flag:"compact,c" desc:"compact output (no indentation)"`
}

// Command returns the "cbor" command group.
func Command() *cli.Command {
	return newCommand(&environment{stdin: os.Stdin, stdout: os.Stdout})
}

func newCommand(env *environment) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "cbor",
		Summary: "Read CBOR reports",
		Description: `Read the CBOR reports written by "flashkit swf info --cbor".

With no subcommand, decodes CBOR to pretty-printed JSON (equivalent to
"flashkit cbor decode"). Input is read from the trailing FILE argument
when given, otherwise from stdin. Concatenated reports (a CBOR
sequence) are decoded one JSON document per item.

With --hex, input is treated as hex-encoded CBOR. Whitespace in the hex
input is ignored.`,
		Usage: "flashkit cbor [decode|diag] [flags] [FILE]",
		Subcommands: []*cli.Command{
			decodeCommand(env),
			diagCommand(env),
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("cbor", &params)
		},
		Run: func(args []string) error {
			data, err := readInput(env.stdin, args, params.HexInput)
			if err != nil {
				return err
			}
			return decodeCBOR(data, env.stdout, params.Compact)
		},
		Examples: []cli.Example{
			{
				Description: "Decode a saved report",
				Command:     "flashkit cbor sample.cbor",
			},
			{
				Description: "Inspect the exact CBOR structure of a report",
				Command:     "flashkit swf info --cbor sample.swf | flashkit cbor diag",
			},
			{
				Description: "Decode hex-encoded CBOR",
				Command:     "echo 'a1 64 70 61 74 68 ...' | flashkit cbor --hex",
			},
		},
	}
}

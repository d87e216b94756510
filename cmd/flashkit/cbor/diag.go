// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
	"github.com/bureau-foundation/flashkit/lib/codec"
)

func diagCommand(env *environment) *cli.Command {
	var params InputParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Convert CBOR to diagnostic notation",
		Description: `Write RFC 8949 Extended Diagnostic Notation (EDN) for each item of
the input, one item per line.

Unlike JSON output, diagnostic notation preserves CBOR types: integer
vs float, byte strings vs text strings, and tagged values.`,
		Usage: "flashkit cbor diag [-x] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Show diagnostic notation for a report",
				Command:     "flashkit swf info --cbor sample.swf | flashkit cbor diag",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("diag", &params)
		},
		Run: func(args []string) error {
			data, err := readInput(env.stdin, args, params.HexInput)
			if err != nil {
				return err
			}
			return diagCBOR(data, env.stdout)
		},
	}
}

// diagCBOR writes the diagnostic notation of each item in data to w.
func diagCBOR(data []byte, w io.Writer) error {
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			return cli.Validation("diagnose CBOR at byte %d: %w", len(data)-len(remaining), err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
	"github.com/bureau-foundation/flashkit/lib/codec"
)

func decodeCommand(env *environment) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert CBOR to JSON",
		Description: `Decode CBOR and write the equivalent JSON to stdout, one document
per item of a CBOR sequence.

By default, output is pretty-printed with 2-space indentation. Use -c
for compact single-line output. Use "flashkit cbor diag" for a
representation that preserves CBOR types.`,
		Usage: "flashkit cbor decode [-c] [-x] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Decode a report to compact JSON",
				Command:     "flashkit cbor decode -c sample.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			data, err := readInput(env.stdin, args, params.HexInput)
			if err != nil {
				return err
			}
			return decodeCBOR(data, env.stdout, params.Compact)
		},
	}
}

// decodeCBOR writes each item of the CBOR sequence in data to w as JSON.
func decodeCBOR(data []byte, w io.Writer, compact bool) error {
	decoder := codec.NewDecoder(bytes.NewReader(data))
	for index := 0; ; index++ {
		var value any
		err := decoder.Decode(&value)
		if errors.Is(err, io.EOF) && index > 0 {
			return nil
		}
		if err != nil {
			return cli.Validation("decode CBOR item %d at byte %d: %w", index, decoder.NumBytesRead(), err)
		}
		if err := writeJSON(w, value, compact); err != nil {
			return err
		}
	}
}

// writeJSON writes value as JSON with a trailing newline.
func writeJSON(w io.Writer, value any, compact bool) error {
	var (
		output []byte
		err    error
	)
	if compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return cli.Validation("encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

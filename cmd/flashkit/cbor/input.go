// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cbor

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"unicode"

	"github.com/bureau-foundation/flashkit/cmd/flashkit/cli"
)

// readInput reads the file named by args, or stdin when args is empty.
// With hexMode the input is hex-decoded after whitespace is removed.
func readInput(stdin io.Reader, args []string, hexMode bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch len(args) {
	case 0:
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
	case 1:
		data, err = os.ReadFile(args[0])
		if os.IsNotExist(err) {
			return nil, cli.NotFound("%s: no such file", args[0])
		}
		if err != nil {
			return nil, cli.Validation("read %s: %w", args[0], err)
		}
	default:
		return nil, cli.Validation("expected at most one FILE argument, got %d", len(args))
	}

	if hexMode {
		data, err = decodeHexInput(data)
		if err != nil {
			return nil, err
		}
	}
	if len(data) == 0 {
		return nil, cli.Validation("empty input: expected CBOR data")
	}
	return data, nil
}

// decodeHexInput strips whitespace and decodes the remaining hex
// digits, so "a1 63 6b" and "a1636b" are equivalent.
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mediatype describes files from their leading bytes, in the
// style of file(1). flashkit uses the description to decide whether a
// file is plausibly an SWF container before handing it to lib/swf.
package mediatype

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// sniffSize is how many leading bytes Describe looks at.
const sniffSize = 512

// Flash descriptions all contain this marker. IsFlash matches on it.
const flashMarker = "Macromedia Flash data"

// Generic fallbacks when nothing more specific matches.
const (
	Empty = "empty"
	Data  = "data"
	Text  = "ASCII text"
)

// Describe returns a human-readable type description for data.
func Describe(data []byte) string {
	if len(data) == 0 {
		return Empty
	}

	if description, ok := describeFlash(data); ok {
		return description
	}

	for _, magic := range magics {
		if len(data) >= len(magic.prefix) && string(data[:len(magic.prefix)]) == magic.prefix {
			return magic.description
		}
	}

	if isText(data) {
		return Text
	}
	return Data
}

// DescribeReader describes the first bytes available from r.
func DescribeReader(r io.Reader) (string, error) {
	buffer := make([]byte, sniffSize)
	n, err := io.ReadFull(r, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	return Describe(buffer[:n]), nil
}

// DescribeFile describes the file at path.
func DescribeFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	description, err := DescribeReader(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return description, nil
}

// IsFlash reports whether a description names an SWF container.
func IsFlash(description string) bool {
	return strings.Contains(description, flashMarker)
}

// describeFlash recognizes the three SWF signatures. A signature with
// no version byte after it is too short to be a container.
func describeFlash(data []byte) (string, bool) {
	if len(data) < 4 {
		return "", false
	}

	var qualifier string
	switch string(data[:3]) {
	case "FWS":
		qualifier = ""
	case "CWS":
		qualifier = " (compressed)"
	case "ZWS":
		qualifier = " (lzma compressed)"
	default:
		return "", false
	}
	return fmt.Sprintf("%s%s, version %d", flashMarker, qualifier, data[3]), true
}

// magic is a fixed prefix and its description.
type magic struct {
	prefix      string
	description string
}

// magics covers formats commonly found next to Flash content, so that a
// mismatch gives the user a useful answer.
var magics = []magic{
	{"%PDF", "PDF document"},
	{"PK\x03\x04", "Zip archive data"},
	{"\x1f\x8b", "gzip compressed data"},
	{"\x89PNG\r\n\x1a\n", "PNG image data"},
	{"GIF87a", "GIF image data"},
	{"GIF89a", "GIF image data"},
	{"\xff\xd8\xff", "JPEG image data"},
	{"MZ", "PE32 executable"},
	{"\x7fELF", "ELF executable"},
	{"\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1", "Composite Document File V2 Document"},
	{"FLV\x01", "Macromedia Flash Video"},
}

// isText reports whether data looks like printable ASCII.
func isText(data []byte) bool {
	for _, b := range data {
		switch {
		case b == '\n' || b == '\r' || b == '\t':
		case b >= 0x20 && b < 0x7f:
		default:
			return false
		}
	}
	return true
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import "fmt"

// Signature is the 3-byte magic at the start of an SWF container.
type Signature [3]byte

// Known signatures. These are format constants.
var (
	SignatureUncompressed = Signature{'F', 'W', 'S'}
	SignatureZlib         = Signature{'C', 'W', 'S'}
	SignatureLZMA         = Signature{'Z', 'W', 'S'}
)

// String returns the signature as text when it is printable ASCII and
// as a quoted escape sequence otherwise.
func (s Signature) String() string {
	for _, b := range s {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("%q", string(s[:]))
		}
	}
	return string(s[:])
}

// MarshalText encodes the signature as its String form.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CompressionKind identifies how an SWF body is encoded. It is derived
// from the signature alone.
type CompressionKind uint8

const (
	// Unrecognized is any signature other than the three known ones.
	Unrecognized CompressionKind = iota

	// Uncompressed is "FWS": the body follows the header as-is.
	Uncompressed

	// ZlibCompressed is "CWS": a zlib stream follows the header.
	// Flash Player 6 and later.
	ZlibCompressed

	// LZMACompressed is "ZWS": a compressed-length field, LZMA
	// properties, and a raw LZMA stream follow the header. Flash
	// Player 11 and later.
	LZMACompressed
)

// String returns the human-readable name of a compression kind.
func (kind CompressionKind) String() string {
	switch kind {
	case Uncompressed:
		return "none"
	case ZlibCompressed:
		return "zlib"
	case LZMACompressed:
		return "lzma"
	default:
		return "unrecognized"
	}
}

// MarshalText encodes the kind as its name.
func (kind CompressionKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

// Compressed reports whether the kind carries a compressed body that
// the Decompressor knows how to expand.
func (kind CompressionKind) Compressed() bool {
	return kind == ZlibCompressed || kind == LZMACompressed
}

// Classify maps a signature to its compression kind.
func Classify(signature Signature) CompressionKind {
	switch signature {
	case SignatureUncompressed:
		return Uncompressed
	case SignatureZlib:
		return ZlibCompressed
	case SignatureLZMA:
		return LZMACompressed
	default:
		return Unrecognized
	}
}

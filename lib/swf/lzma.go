// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !flashkit_nolzma

package swf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// zwsPrefixSize is the part of a ZWS body that precedes the LZMA
// stream: a little-endian uint32 compressed length followed by the 5
// LZMA property bytes (lc/lp/pb byte + uint32 dictionary size).
const zwsPrefixSize = 4 + 5

// lzmaHeaderSize is the classic .lzma header that lzma.NewReader
// expects: 5 property bytes and a uint64 uncompressed length.
const lzmaHeaderSize = 5 + 8

// builtinLZMA returns the LZMA codec compiled into this binary.
func builtinLZMA() codec { return lzmaCodec{} }

// lzmaCodec decodes the ZWS body. The SWF layout stores the LZMA
// properties without the uncompressed length that the standard decoder
// needs, so a classic header is synthesized in front of the stream.
type lzmaCodec struct{}

func (lzmaCodec) open(tail []byte, declaredSize int32) (io.ReadCloser, error) {
	if len(tail) < zwsPrefixSize {
		return nil, fmt.Errorf("lzma body is %d bytes, need at least %d", len(tail), zwsPrefixSize)
	}

	// The compressed-length field at tail[0:4] is informational; the
	// stream runs to the end of the envelope.
	properties := tail[4:zwsPrefixSize]
	stream := tail[zwsPrefixSize:]

	// -1 encodes "unknown length" and requires an end marker.
	uncompressed := int64(-1)
	if declaredSize >= HeaderSize {
		uncompressed = int64(declaredSize) - HeaderSize
	}

	header := make([]byte, lzmaHeaderSize)
	copy(header, properties)
	binary.LittleEndian.PutUint64(header[5:], uint64(uncompressed))

	// The decoder allocates the full dictionary up front. A dictionary
	// larger than the output can never be referenced, so clamp it to
	// the known output length to keep forged properties from forcing a
	// huge allocation.
	if uncompressed >= 0 {
		dictCap := int64(binary.LittleEndian.Uint32(header[1:5]))
		limit := max(uncompressed, lzma.MinDictCap)
		if dictCap > limit {
			binary.LittleEndian.PutUint32(header[1:5], uint32(limit))
		}
	}

	reader, err := lzma.NewReader(io.MultiReader(bytes.NewReader(header), bytes.NewReader(stream)))
	if err != nil {
		return nil, err
	}
	return io.NopCloser(reader), nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/ulikunitz/xz/lzma"
)

// Header returns an 8-byte SWF header with the given signature,
// version, and declared size.
func Header(signature string, version byte, declaredSize int32) []byte {
	if len(signature) != 3 {
		panic("testutil.Header: signature must be 3 bytes, got " + signature)
	}
	header := make([]byte, 8)
	copy(header, signature)
	header[3] = version
	binary.LittleEndian.PutUint32(header[4:], uint32(declaredSize))
	return header
}

// FWS returns an uncompressed SWF container holding body. The declared
// size is the container length.
func FWS(version byte, body []byte) []byte {
	return append(Header("FWS", version, int32(8+len(body))), body...)
}

// CWS returns a zlib-compressed SWF container whose decompressed form
// is FWS(version, body). The declared size is the uncompressed length,
// as Flash writers store it.
func CWS(t testing.TB, version byte, body []byte) []byte {
	t.Helper()
	return append(Header("CWS", version, int32(8+len(body))), ZlibCompress(t, body)...)
}

// ZWS returns an LZMA-compressed SWF container whose decompressed form
// is FWS(version, body). After the header come the compressed stream
// length, the 5 LZMA property bytes, and the raw stream.
func ZWS(t testing.TB, version byte, body []byte) []byte {
	t.Helper()
	properties, stream := LZMACompress(t, body)

	container := Header("ZWS", version, int32(8+len(body)))
	container = binary.LittleEndian.AppendUint32(container, uint32(len(stream)))
	container = append(container, properties[:]...)
	return append(container, stream...)
}

// ZlibCompress returns data as a zlib stream.
func ZlibCompress(t testing.TB, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := zlib.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}
	return buffer.Bytes()
}

// LZMACompress compresses data as a classic LZMA stream with the
// length in the header and no end marker, then splits off the header.
// It returns the 5 property bytes and the raw stream.
func LZMACompress(t testing.TB, data []byte) ([5]byte, []byte) {
	t.Helper()
	var buffer bytes.Buffer
	config := lzma.WriterConfig{
		SizeInHeader: true,
		Size:         int64(len(data)),
	}
	writer, err := config.NewWriter(&buffer)
	if err != nil {
		t.Fatalf("lzma writer: %v", err)
	}
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("lzma write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("lzma close: %v", err)
	}

	encoded := buffer.Bytes()
	// Classic header: 5 property bytes, then a uint64 length.
	var properties [5]byte
	copy(properties[:], encoded[:5])
	return properties, encoded[13:]
}

// DeclaredSize returns the size field of an SWF container.
func DeclaredSize(container []byte) int32 {
	return int32(binary.LittleEndian.Uint32(container[4:8]))
}

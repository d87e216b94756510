// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// codec opens a decompressing reader over the bytes that follow the
// 8-byte header. declaredSize is the header's size field, which some
// formats use to bound the output.
type codec interface {
	open(tail []byte, declaredSize int32) (io.ReadCloser, error)
}

// zlibCodec decodes the CWS body: a zlib stream (RFC 1950) starting
// directly after the header. Bytes after the end of the stream are
// ignored.
type zlibCodec struct{}

func (zlibCodec) open(tail []byte, _ int32) (io.ReadCloser, error) {
	return zlib.NewReader(bytes.NewReader(tail))
}

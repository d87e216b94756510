// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dumpstore

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a dump is encoded on disk.
type Compression string

const (
	// CompressionNone stores the container as-is. The dump is a valid
	// SWF file that other tools can open directly.
	CompressionNone Compression = "none"

	// CompressionZstd stores a zstd frame at the default level. Best
	// ratio for decompressed SWF bodies, which are mostly tag headers
	// and bytecode.
	CompressionZstd Compression = "zstd"

	// CompressionLZ4 stores an LZ4 frame. Faster to write and read
	// than zstd at a lower ratio.
	CompressionLZ4 Compression = "lz4"
)

// ParseCompression parses a compression name. The empty string is none.
func ParseCompression(name string) (Compression, error) {
	switch Compression(name) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZstd, CompressionLZ4:
		return Compression(name), nil
	default:
		return "", fmt.Errorf("unknown dump compression %q (want none, zstd, or lz4)", name)
	}
}

// Extension returns the file-name suffix for the compression, "" for
// none.
func (c Compression) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// CompressionForPath infers the compression of a dump from its name.
func CompressionForPath(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(path, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. zstd.Encoder and zstd.Decoder
// are safe for concurrent use with EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("dumpstore: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("dumpstore: zstd decoder initialization failed: " + err.Error())
	}
}

// compress encodes data for storage. For CompressionNone it returns
// the input unchanged (no copy).
func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil

	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil

	case CompressionLZ4:
		var buffer bytes.Buffer
		writer := lz4.NewWriter(&buffer)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buffer.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported dump compression: %q", string(compression))
	}
}

// decompress reverses compress.
func decompress(stored []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return stored, nil

	case CompressionZstd:
		data, err := zstdDecoder.DecodeAll(stored, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return data, nil

	case CompressionLZ4:
		data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(stored)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported dump compression: %q", string(compression))
	}
}

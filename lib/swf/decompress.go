// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Status distinguishes the two successful outcomes of Decompress.
type Status uint8

const (
	// StatusDecompressed means Result.Data holds a new FWS container.
	StatusDecompressed Status = iota + 1

	// StatusAlreadyUncompressed means the input was FWS and no work was
	// needed. Result.Data is nil.
	StatusAlreadyUncompressed
)

// String returns the human-readable name of a status.
func (s Status) String() string {
	switch s {
	case StatusDecompressed:
		return "decompressed"
	case StatusAlreadyUncompressed:
		return "already_uncompressed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Result is the successful outcome of Decompress.
type Result struct {
	Status Status

	// Kind is the compression the input used.
	Kind CompressionKind

	// Data is the reassembled FWS container: "FWS", the input's bytes
	// 3..7, then the decompressed body. Nil for
	// StatusAlreadyUncompressed. The caller owns it.
	Data []byte
}

// Decompressor expands CWS and ZWS envelopes into FWS containers.
// Create one with NewDecompressor. It is immutable and safe for
// concurrent use.
type Decompressor struct {
	zlib       codec
	lzma       codec
	sizeFixup  bool
	maxPayload int64
	logger     *slog.Logger
}

// Option configures a Decompressor.
type Option func(*Decompressor)

// WithoutLZMA disables the LZMA codec even when it is compiled in. ZWS
// inputs then fail with ErrMissingDependency.
func WithoutLZMA() Option {
	return func(d *Decompressor) { d.lzma = nil }
}

// WithSizeFixup rewrites bytes 4..7 of the output with the real output
// length. By default those bytes are copied verbatim from the input.
func WithSizeFixup() Option {
	return func(d *Decompressor) { d.sizeFixup = true }
}

// WithMaxPayload bounds the decompressed body. A stream that expands
// past limit bytes fails with a DecompressionError. Zero means no
// bound.
func WithMaxPayload(limit int64) Option {
	return func(d *Decompressor) { d.maxPayload = limit }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decompressor) { d.logger = logger }
}

// NewDecompressor returns a Decompressor with the zlib codec and, when
// compiled in, the LZMA codec.
func NewDecompressor(options ...Option) *Decompressor {
	d := &Decompressor{
		zlib:   zlibCodec{},
		lzma:   builtinLZMA(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// LZMABuiltin reports whether this binary was built with LZMA support.
func LZMABuiltin() bool {
	return builtinLZMA() != nil
}

// LZMAAvailable reports whether this Decompressor can expand ZWS input.
func (d *Decompressor) LZMAAvailable() bool {
	return d.lzma != nil
}

// Decompress classifies envelope and, for CWS and ZWS input, returns a
// reassembled FWS container. FWS input yields StatusAlreadyUncompressed.
//
// Errors: *UnsupportedFormatError for unknown signatures,
// ErrMissingDependency for ZWS without LZMA support, ErrTruncatedBody
// when the envelope's Raw buffer is missing or shorter than the header,
// and *DecompressionError for corrupt streams. No partial output is
// returned with an error.
func (d *Decompressor) Decompress(envelope *Envelope) (*Result, error) {
	kind := envelope.Kind()

	switch kind {
	case Uncompressed:
		return &Result{Status: StatusAlreadyUncompressed, Kind: kind}, nil

	case ZlibCompressed:
		return d.expand(envelope, kind, d.zlib)

	case LZMACompressed:
		if d.lzma == nil {
			return nil, fmt.Errorf("%w: LZMA support is not available in this build", ErrMissingDependency)
		}
		return d.expand(envelope, kind, d.lzma)

	default:
		return nil, &UnsupportedFormatError{Signature: envelope.Signature}
	}
}

// expand decompresses everything after the header and prepends the
// FWS signature plus the original bytes 3..7.
func (d *Decompressor) expand(envelope *Envelope, kind CompressionKind, decoder codec) (*Result, error) {
	if len(envelope.Raw) < HeaderSize {
		return nil, fmt.Errorf("%w: envelope holds %d bytes, header alone needs %d",
			ErrTruncatedBody, len(envelope.Raw), HeaderSize)
	}

	reader, err := decoder.open(envelope.Raw[HeaderSize:], envelope.DeclaredSize)
	if err != nil {
		return nil, &DecompressionError{Kind: kind, Err: err}
	}
	defer reader.Close()

	var output bytes.Buffer
	output.Write(SignatureUncompressed[:])
	output.Write(envelope.Raw[3:HeaderSize])

	var source io.Reader = reader
	if d.maxPayload > 0 {
		source = io.LimitReader(reader, d.maxPayload+1)
	}
	written, err := io.Copy(&output, source)
	if err != nil {
		return nil, &DecompressionError{Kind: kind, Err: err}
	}
	if d.maxPayload > 0 && written > d.maxPayload {
		return nil, &DecompressionError{Kind: kind, Err: fmt.Errorf("payload exceeds %d bytes", d.maxPayload)}
	}

	data := output.Bytes()
	if d.sizeFixup {
		if len(data) > math.MaxInt32 {
			return nil, &DecompressionError{Kind: kind, Err: fmt.Errorf("output of %d bytes does not fit the size field", len(data))}
		}
		binary.LittleEndian.PutUint32(data[4:HeaderSize], uint32(len(data)))
	}

	d.logger.Debug("expanded swf envelope",
		"compression", kind.String(),
		"declared_size", envelope.DeclaredSize,
		"input_bytes", len(envelope.Raw),
		"output_bytes", len(data),
	)

	return &Result{Status: StatusDecompressed, Kind: kind, Data: data}, nil
}

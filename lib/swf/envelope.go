// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the length of the fixed SWF header: signature (3),
// version (1), declared size (4).
const HeaderSize = 8

// Envelope is the header of an SWF container plus the declared-length
// region read from offset 0. It is a value: nothing in this package
// modifies an Envelope after ReadEnvelope returns it.
type Envelope struct {
	// Signature is the 3-byte magic at offset 0.
	Signature Signature

	// Version is the SWF version byte at offset 3.
	Version uint8

	// DeclaredSize is the little-endian int32 at offset 4 as stored.
	// For FWS files it is the file length. For CWS and ZWS files it is
	// the length the file has once decompressed. Untrusted input may
	// carry any value, including negative ones.
	DeclaredSize int32

	// Raw holds exactly DeclaredSize bytes starting at offset 0, header
	// included. It is nil when the source was too short to supply
	// them; it is never partially filled. Under WithExpandedSizes a
	// compressed container shorter than DeclaredSize is held whole.
	Raw []byte
}

// ReadOption adjusts ReadEnvelope.
type ReadOption func(*readConfig)

type readConfig struct {
	expandedSizes bool
}

// WithExpandedSizes treats the declared size of CWS and ZWS containers
// as the length after decompression, which is how Flash writers fill
// the field. The envelope then covers the whole source up to
// DeclaredSize bytes, and only an FWS container shorter than its
// declared size (or a negative size) is reported as ErrTruncatedBody.
func WithExpandedSizes() ReadOption {
	return func(c *readConfig) {
		c.expandedSizes = true
	}
}

// Kind classifies the envelope's signature.
func (e *Envelope) Kind() CompressionKind {
	return Classify(e.Signature)
}

// Complete reports whether the declared-length region was read.
func (e *Envelope) Complete() bool {
	return e.Raw != nil
}

// ReadEnvelope reads the SWF header from source, then seeks back to
// offset 0 and reads DeclaredSize bytes into Envelope.Raw.
//
// A source shorter than the header fails with ErrTruncatedHeader and a
// nil Envelope. A source shorter than the declared size (or a negative
// declared size) returns the Envelope with a nil Raw buffer together
// with an error matching ErrTruncatedBody; callers may continue with
// the header fields. The remaining source length is checked before the
// body buffer is allocated, so a forged size field cannot force a large
// allocation.
func ReadEnvelope(source io.ReadSeeker, options ...ReadOption) (*Envelope, error) {
	var config readConfig
	for _, option := range options {
		option(&config)
	}

	envelope := &Envelope{}

	if _, err := io.ReadFull(source, envelope.Signature[:]); err != nil {
		return nil, headerError("signature", err)
	}

	var version [1]byte
	if _, err := io.ReadFull(source, version[:]); err != nil {
		return nil, headerError("version", err)
	}
	envelope.Version = version[0]

	var size [4]byte
	if _, err := io.ReadFull(source, size[:]); err != nil {
		return nil, headerError("declared size", err)
	}
	envelope.DeclaredSize = int32(binary.LittleEndian.Uint32(size[:]))

	if envelope.DeclaredSize < 0 {
		return envelope, fmt.Errorf("%w: declared size %d is negative", ErrTruncatedBody, envelope.DeclaredSize)
	}

	end, err := source.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("measuring source: %w", err)
	}
	length := int64(envelope.DeclaredSize)
	if config.expandedSizes && envelope.Kind().Compressed() {
		length = min(length, end)
	}
	if end < length {
		return envelope, fmt.Errorf("%w: declared size %d exceeds source length %d",
			ErrTruncatedBody, envelope.DeclaredSize, end)
	}

	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding source: %w", err)
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(source, raw); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return envelope, fmt.Errorf("%w: %v", ErrTruncatedBody, err)
		}
		return nil, fmt.Errorf("reading envelope: %w", err)
	}
	envelope.Raw = raw

	return envelope, nil
}

// ReadEnvelopeFile opens path, reads its envelope, and closes the file
// before returning. The error semantics match ReadEnvelope.
func ReadEnvelopeFile(path string, options ...ReadOption) (*Envelope, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	return ReadEnvelope(file, options...)
}

// headerError converts a short read of a header field into
// ErrTruncatedHeader and passes other I/O errors through.
func headerError(field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncatedHeader, field)
	}
	return fmt.Errorf("reading %s: %w", field, err)
}

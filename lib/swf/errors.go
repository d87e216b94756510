// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedHeader means the source ended before the 8-byte
	// header was complete.
	ErrTruncatedHeader = errors.New("swf: truncated header")

	// ErrTruncatedBody means the source holds fewer bytes than the
	// declared size (or the declared size is negative). It is a soft
	// failure: ReadEnvelope still returns the header fields.
	ErrTruncatedBody = errors.New("swf: truncated body")

	// ErrMissingDependency means the input needs a codec that is not
	// available in this build or was disabled on the Decompressor.
	ErrMissingDependency = errors.New("swf: missing dependency")

	// ErrDecompressionFailed is matched by every *DecompressionError.
	ErrDecompressionFailed = errors.New("swf: decompression failed")

	// ErrUnsupportedFormat is matched by every *UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("swf: unsupported format")
)

// DecompressionError reports a malformed compressed stream. No partial
// output is produced when it is returned.
type DecompressionError struct {
	// Kind is the compression the stream claimed to use.
	Kind CompressionKind

	// Err is the underlying codec failure.
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("swf: %s decompression failed: %v", e.Kind, e.Err)
}

// Unwrap returns the codec error so callers can inspect it (for
// example io.ErrUnexpectedEOF for a cut-off stream).
func (e *DecompressionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecompressionFailed) true.
func (e *DecompressionError) Is(target error) bool {
	return target == ErrDecompressionFailed
}

// UnsupportedFormatError reports a signature that is not FWS, CWS or ZWS.
type UnsupportedFormatError struct {
	Signature Signature
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("swf: unsupported signature %s", e.Signature)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) true.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

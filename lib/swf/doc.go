// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package swf reads the compression envelope of SWF (ShockWave Flash)
// containers and rebuilds an equivalent uncompressed container.
//
// An SWF file starts with an 8-byte header:
//
//	offset 0..2  signature: "FWS" (uncompressed), "CWS" (zlib), "ZWS" (LZMA)
//	offset 3     version
//	offset 4..7  declared total size, little-endian signed 32-bit
//
// Everything after the header is either the raw SWF body (FWS) or a
// compressed stream that expands to it (CWS, ZWS). This package never
// looks inside the body: once decompressed it is an opaque byte slice.
//
// [ReadEnvelope] extracts the header and re-reads exactly the declared
// number of bytes from offset 0. A declared size larger than the source
// is a soft failure: the returned [Envelope] keeps its header fields,
// has a nil Raw buffer, and the error matches [ErrTruncatedBody].
// Flash writers store the expanded length in the size field of CWS and
// ZWS files, so real compressed files are shorter than they declare;
// [WithExpandedSizes] reads such files whole instead of reporting them
// as truncated.
//
// [Decompressor.Decompress] classifies the signature and either reports
// [StatusAlreadyUncompressed] or returns a reassembled container:
// "FWS" + the original bytes 3..7 (copied verbatim, never recomputed)
// + the decompressed body.
// [WithSizeFixup] rewrites the declared size to the real output length
// instead.
//
// LZMA support is a build-time capability. Building with the
// flashkit_nolzma tag compiles the codec out; [WithoutLZMA] disables it
// for a single Decompressor. Either way a ZWS input then fails with
// [ErrMissingDependency] before any decoding is attempted. CWS inputs
// are unaffected.
//
// A Decompressor holds no mutable state and may be shared between
// goroutines. Decompress never modifies its envelope.
package swf

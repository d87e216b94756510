// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dumpstore persists reassembled containers under
// content-addressed names.
//
// A [Store] writes each buffer to "<digest>.swf" inside its directory,
// where the digest comes from lib/binhash over the uncompressed bytes.
// Writes go to a temporary file in the same directory which is synced,
// closed, and renamed into place; on any failure the temporary file is
// removed, so a crash never leaves a half-written dump under its final
// name.
//
// Dumps may optionally be compressed at rest with zstd or LZ4 (frame
// format). The file name then gains a ".zst" or ".lz4" suffix and
// [Load] reverses the compression based on that suffix, so a caller
// can reopen any dump without knowing how it was stored.
package dumpstore

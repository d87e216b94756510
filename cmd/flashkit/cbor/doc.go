// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cbor implements "flashkit cbor", which turns the CBOR reports
// written by "flashkit swf info --cbor" back into something readable:
// JSON through "decode" and RFC 8949 diagnostic notation through
// "diag". Both read a single item or a CBOR sequence (RFC 8742) from a
// file argument or stdin, optionally hex-encoded.
package cbor

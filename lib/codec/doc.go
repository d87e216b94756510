// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides flashkit's CBOR encoding configuration.
//
// Reports that commands emit for other tools (`swf info --cbor`) are
// CBOR; human and scripting output is JSON. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2), so the same report always
// produces identical bytes and can be hashed or diffed.
//
// Report types carry `json` struct tags only. fxamacker/cbor reads
// `json` tags when `cbor` tags are absent, so one tag controls field
// naming for both formats.
//
//	data, err := codec.Marshal(report)
//	err = codec.NewEncoder(os.Stdout).Encode(report)
package codec

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes content digests used to name dumped
// containers.
//
// A dumped container is stored as "<hex digest>.swf", so decompressing
// the same input twice lands on the same file and different outputs
// never collide. The algorithm is configurable:
//
//   - [MD5] -- the historical default of SWF analysis tooling; names
//     stay comparable with existing malware-analysis dumps
//   - [SHA256] -- for stores that reject MD5
//   - [BLAKE3] -- fastest for large containers
//
// The API surface:
//
//   - [Sum] -- digests an in-memory buffer
//   - [HashFile] -- streams a file through the hash with constant memory
//   - [Digest.String] / [ParseDigest] -- hex encoding and validation
//
// This package has no dependencies on other flashkit packages.
package binhash

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for flashkit packages.
//
// [FWS], [CWS], and [ZWS] build complete SWF containers around a
// payload, compressing it the way Flash authoring tools do. [Header]
// builds a bare 8-byte header for malformed-input tests. The payload is
// opaque: any bytes work, since nothing in flashkit parses SWF tags.
//
// [WriteFile] writes a fixture into a per-test temporary directory and
// returns its path.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) for tests that collect results from
// goroutines.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil

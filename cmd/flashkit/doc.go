// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Flashkit is the command-line tool for analyzing Flash (SWF) objects.
// "flashkit swf decompress" rebuilds an uncompressed container from a
// CWS or ZWS file, "flashkit swf info" prints the envelope header, and
// "flashkit cbor" reads the CBOR reports that info can emit.
package main

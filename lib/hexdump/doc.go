// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hexdump renders byte buffers for human inspection.
//
// Each line shows the offset, the bytes in hex, and their printable
// ASCII form:
//
//	0000  46 57 53 0a 1c 00 00 00 ...  FWS.....
//
// [Options.MaxLines] caps the output for large containers; a trailer
// line reports how many bytes were left out. Output is colored with
// lipgloss when the destination is a terminal (or when forced with
// [ColorAlways]).
package hexdump

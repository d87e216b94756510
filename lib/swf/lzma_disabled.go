// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build flashkit_nolzma

package swf

// builtinLZMA returns nil: this binary was built without LZMA support.
func builtinLZMA() codec { return nil }

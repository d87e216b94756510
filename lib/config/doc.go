// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for flashkit.
//
// Configuration comes from at most one file, named by either the
// FLASHKIT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). With neither, [Default] applies. There is no
// automatic discovery in the home directory or the working directory.
//
// Files ending in .json or .jsonc are JSON with comments and trailing
// commas; everything else is YAML. Unknown keys are errors in both
// formats. Keys absent from the file keep their defaults.
//
// ${HOME}, ${TMPDIR}, and ${VAR:-default} patterns are expanded in
// dump.directory after loading.
//
// Key exports:
//
//   - [Config] -- master struct with Dump, Display, Decompress, Log
//   - [Default] -- built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid value at once
package config

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Algorithm names a digest function.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// ParseAlgorithm parses an algorithm name. The empty string selects MD5.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case "", MD5:
		return MD5, nil
	case SHA256, BLAKE3:
		return Algorithm(name), nil
	default:
		return "", fmt.Errorf("unknown hash algorithm %q (want md5, sha256, or blake3)", name)
	}
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return md5.Size
	case SHA256:
		return sha256.Size
	case BLAKE3:
		return 32
	default:
		return 0
	}
}

func (a Algorithm) new() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", string(a))
	}
}

// Digest is a computed content hash.
type Digest struct {
	Algorithm Algorithm
	Sum       []byte
}

// String returns the lowercase hex encoding of the digest. This is the
// form used in dump file names and log output.
func (d Digest) String() string {
	return hex.EncodeToString(d.Sum)
}

// Sum digests data with the given algorithm.
func Sum(algorithm Algorithm, data []byte) (Digest, error) {
	hasher, err := algorithm.new()
	if err != nil {
		return Digest{}, err
	}
	hasher.Write(data)
	return Digest{Algorithm: algorithm, Sum: hasher.Sum(nil)}, nil
}

// HashReader digests everything r yields.
func HashReader(algorithm Algorithm, r io.Reader) (Digest, error) {
	hasher, err := algorithm.new()
	if err != nil {
		return Digest{}, err
	}
	if _, err := io.Copy(hasher, r); err != nil {
		return Digest{}, err
	}
	return Digest{Algorithm: algorithm, Sum: hasher.Sum(nil)}, nil
}

// HashFile digests the file at path. The file is streamed through the
// hash function to keep memory usage constant regardless of file size.
func HashFile(algorithm Algorithm, path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, err := HashReader(algorithm, file)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// ParseDigest parses a hex-encoded digest for the given algorithm.
// Returns an error if the string is not valid hex or has the wrong
// length for the algorithm.
func ParseDigest(algorithm Algorithm, hexString string) (Digest, error) {
	size := algorithm.Size()
	if size == 0 {
		return Digest{}, fmt.Errorf("unknown hash algorithm %q", string(algorithm))
	}
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return Digest{}, fmt.Errorf("parsing %s digest: %w", algorithm, err)
	}
	if len(decoded) != size {
		return Digest{}, fmt.Errorf("%s digest is %d bytes, want %d", algorithm, len(decoded), size)
	}
	return Digest{Algorithm: algorithm, Sum: decoded}, nil
}

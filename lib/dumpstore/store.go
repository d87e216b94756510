// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dumpstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/flashkit/lib/binhash"
)

// Extension is the file-name suffix of every dump before any
// compression suffix.
const Extension = ".swf"

// Store writes dumps into a single directory.
type Store struct {
	directory   string
	algorithm   binhash.Algorithm
	compression Compression
	logger      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithAlgorithm selects the digest used for file names. Default MD5.
func WithAlgorithm(algorithm binhash.Algorithm) Option {
	return func(s *Store) { s.algorithm = algorithm }
}

// WithCompression selects the at-rest encoding. Default none.
func WithCompression(compression Compression) Option {
	return func(s *Store) { s.compression = compression }
}

// WithLogger sets the logger for write events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New returns a Store rooted at directory. The directory is created on
// first write if it does not exist.
func New(directory string, options ...Option) (*Store, error) {
	if directory == "" {
		return nil, errors.New("dumpstore: directory is required")
	}

	store := &Store{
		directory:   directory,
		algorithm:   binhash.MD5,
		compression: CompressionNone,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(store)
	}

	if store.algorithm.Size() == 0 {
		return nil, fmt.Errorf("dumpstore: unknown hash algorithm %q", string(store.algorithm))
	}
	if _, err := ParseCompression(string(store.compression)); err != nil {
		return nil, fmt.Errorf("dumpstore: %w", err)
	}
	return store, nil
}

// Directory returns the directory dumps are written to.
func (s *Store) Directory() string {
	return s.directory
}

// Name returns the file name data would be stored under.
func (s *Store) Name(data []byte) (string, error) {
	digest, err := binhash.Sum(s.algorithm, data)
	if err != nil {
		return "", err
	}
	return digest.String() + Extension + s.compression.Extension(), nil
}

// Write stores data and returns the path it was written to. Writing
// the same data twice replaces the file with identical content.
func (s *Store) Write(data []byte) (string, error) {
	name, err := s.Name(data)
	if err != nil {
		return "", err
	}

	encoded, err := compress(data, s.compression)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.directory, 0755); err != nil {
		return "", fmt.Errorf("creating dump directory %s: %w", s.directory, err)
	}

	path := filepath.Join(s.directory, name)
	if err := writeAtomic(path, encoded); err != nil {
		return "", err
	}

	s.logger.Info("dump written",
		"path", path,
		"bytes", len(data),
		"stored_bytes", len(encoded),
		"compression", string(s.compression),
	)
	return path, nil
}

// writeAtomic writes data to a temporary file next to path and renames
// it into place. The temporary file is removed on every failure path.
func writeAtomic(path string, data []byte) (err error) {
	temporary, err := os.CreateTemp(filepath.Dir(path), ".dump-*")
	if err != nil {
		return fmt.Errorf("creating temporary dump file: %w", err)
	}
	defer func() {
		if err != nil {
			temporary.Close()
			os.Remove(temporary.Name())
		}
	}()

	if _, err = temporary.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", temporary.Name(), err)
	}
	if err = temporary.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", temporary.Name(), err)
	}
	if err = temporary.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", temporary.Name(), err)
	}
	if err = os.Chmod(temporary.Name(), 0644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", temporary.Name(), err)
	}
	if err = os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("renaming dump into place: %w", err)
	}
	return nil
}

// Load reads a dump, reversing the at-rest compression indicated by
// its file name.
func Load(path string) ([]byte, error) {
	stored, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err := decompress(stored, CompressionForPath(path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return data, nil
}

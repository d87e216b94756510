// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session tracks the file under analysis.
//
// A [Manager] holds the current [Session] and the history of sessions
// opened before it. Opening a session records the file's size and a
// file(1)-style type description, which commands use to check that the
// file is plausibly the format they handle before reading it.
//
// Sessions are re-entrant: a command that produces a new file (for
// example a decompressed dump) opens it with [Manager.Open] and it
// becomes the current session for whatever runs next. Dumps stored with
// at-rest compression are decoded transparently.
//
// The core analysis packages never see a Manager. Commands pass the
// reader from [Session.Reader] explicitly.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/flashkit/lib/dumpstore"
	"github.com/bureau-foundation/flashkit/lib/mediatype"
)

// ErrNoSession is returned by operations that need a current session
// when none is open.
var ErrNoSession = errors.New("no session opened")

// Session is one opened file.
type Session struct {
	// Path is the absolute path of the file.
	Path string

	// Name is the base name of Path.
	Name string

	// Size is the logical content length in bytes (after removing any
	// at-rest dump compression).
	Size int64

	// Type is the file(1)-style description of the content.
	Type string

	// decoded holds the content of compressed dumps, which cannot be
	// read through a plain file handle.
	decoded []byte
}

// IsFlash reports whether the session's type names an SWF container.
func (s *Session) IsFlash() bool {
	return mediatype.IsFlash(s.Type)
}

// Reader returns a seekable reader over the session's content. The
// caller must close it; closing releases the underlying file handle.
func (s *Session) Reader() (io.ReadSeekCloser, error) {
	if s.decoded != nil {
		return nopSeekCloser{bytes.NewReader(s.decoded)}, nil
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	return file, nil
}

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }

// Manager owns the current session. It is meant for a single command
// or interactive shell and is not safe for concurrent use.
type Manager struct {
	current *Session
	history []*Session
	logger  *slog.Logger
}

// NewManager returns a Manager with no session open.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{logger: logger}
}

// Open opens path as the new current session. The previous session, if
// any, moves to the history.
func (m *Manager) Open(path string) (*Session, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(absolute)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", absolute)
	}

	session := &Session{
		Path: absolute,
		Name: filepath.Base(absolute),
		Size: info.Size(),
	}

	if dumpstore.CompressionForPath(absolute) != dumpstore.CompressionNone {
		decoded, err := dumpstore.Load(absolute)
		if err != nil {
			return nil, err
		}
		session.decoded = decoded
		session.Size = int64(len(decoded))
		session.Type = mediatype.Describe(decoded)
	} else {
		session.Type, err = mediatype.DescribeFile(absolute)
		if err != nil {
			return nil, err
		}
	}

	if m.current != nil {
		m.history = append(m.history, m.current)
	}
	m.current = session

	m.logger.Info("session opened",
		"path", session.Path,
		"size", session.Size,
		"type", session.Type,
	)
	return session, nil
}

// IsSet reports whether a session is open.
func (m *Manager) IsSet() bool {
	return m.current != nil
}

// Current returns the open session or ErrNoSession.
func (m *Manager) Current() (*Session, error) {
	if m.current == nil {
		return nil, ErrNoSession
	}
	return m.current, nil
}

// History returns previously opened sessions, oldest first.
func (m *Manager) History() []*Session {
	return append([]*Session(nil), m.history...)
}

// Close drops the current session without opening another.
func (m *Manager) Close() {
	if m.current != nil {
		m.history = append(m.history, m.current)
		m.current = nil
	}
}

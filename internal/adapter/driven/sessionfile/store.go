// Package sessionfile persists the platform session to a versioned JSON file.
// Sessions are short-lived and always recoverable by re-login, so every load
// failure mode (missing file, bad JSON, partial fields, unknown version)
// degrades to "no session" rather than an error.
package sessionfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// formatVersion is bumped whenever the on-disk layout changes incompatibly.
// A file with any other version loads as absent and is rewritten on next save.
const formatVersion = 1

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*Store)(nil)

// Store is the file-backed SessionStore implementation.
type Store struct {
	path string
}

// envelope wraps a session with the on-disk format version.
type envelope struct {
	Version int            `json:"version"`
	Session *model.Session `json:"session"`
}

// NewStore creates a session store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted session, or nil when no usable session exists.
func (s *Store) Load(_ context.Context) (*model.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("session file unreadable, treating as absent", "path", s.path, "error", err)
		}
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("session file corrupt, treating as absent", "path", s.path, "error", err)
		return nil, nil
	}

	if env.Version != formatVersion {
		slog.Warn("session file version mismatch, treating as absent",
			"path", s.path, "version", env.Version, "want", formatVersion)
		return nil, nil
	}

	// A partial session (empty jar or missing token) is no session at all.
	if !env.Session.Valid() {
		return nil, nil
	}

	return env.Session, nil
}

// Save persists the session atomically via write-to-temp-and-rename, so an
// interrupted write leaves the previous file intact.
func (s *Store) Save(_ context.Context, sess *model.Session) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(envelope{Version: formatVersion, Session: sess}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	// Session cookies gate account access; keep the file owner-only.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("chmod session file: %w", err)
	}

	return nil
}

// Invalidate removes the persisted session. Removing an absent file is not an
// error.
func (s *Store) Invalidate(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Package session keeps the editor buffer between console runs.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion is bumped whenever Snapshot changes shape; snapshots with a
// different version are ignored.
const schemaVersion uint16 = 1

// SampleProgram is loaded when there is no saved session.
const SampleProgram = `// Welcome to the Compiscript console
let x: integer = 2;
function add(a: integer, b: integer): integer { return a + b; }
let z: integer = add(1, 2);

// Try an error:
// if (x) { }  // <- non-boolean condition

// Try TAC: press ctrl+g, then ctrl+r
`

// Snapshot is the persisted editor state.
type Snapshot struct {
	Schema   uint16
	Filename string
	Source   string
	SavedAt  time.Time
}

// Store reads and writes a snapshot file. Concurrent consoles serialize
// writes through a lock directory next to the file.
type Store struct {
	path string
	log  *slog.Logger
	lock snapshotLock
}

func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{path: path, log: logger}
	s.lock = newSnapshotLock(path, func(waited time.Duration) {
		if waited == 0 {
			s.log.Info("waiting for session lock", "path", s.lock.dir)
		}
	})
	return s
}

// Load returns the saved snapshot, or a snapshot holding SampleProgram when
// there is none or it cannot be read.
func (s *Store) Load() Snapshot {
	fallback := Snapshot{Schema: schemaVersion, Source: SampleProgram}
	if s == nil || s.path == "" {
		return fallback
	}
	f, err := os.Open(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("session unreadable", "path", s.path, "error", err)
		}
		return fallback
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		s.log.Warn("session corrupt, starting fresh", "path", s.path, "error", err)
		return fallback
	}
	if snap.Schema != schemaVersion {
		s.log.Info("session schema changed, starting fresh", "have", snap.Schema, "want", schemaVersion)
		return fallback
	}
	return snap
}

// Save writes the buffer atomically.
func (s *Store) Save(ctx context.Context, filename, source string) error {
	if s == nil || s.path == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	unlock, err := s.lock.acquire(ctx)
	if err != nil {
		return fmt.Errorf("session lock: %w", err)
	}
	defer func() {
		if err := unlock(); err != nil {
			s.log.Warn("session unlock failed", "error", err)
		}
	}()

	f, err := os.CreateTemp(dir, "session-*")
	if err != nil {
		return fmt.Errorf("session temp: %w", err)
	}
	defer os.Remove(f.Name())

	snap := Snapshot{Schema: schemaVersion, Filename: filename, Source: source, SavedAt: time.Now().UTC()}
	if err := msgpack.NewEncoder(f).Encode(&snap); err != nil {
		f.Close()
		return fmt.Errorf("encode session: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("session temp: %w", err)
	}
	if err := os.Rename(f.Name(), s.path); err != nil {
		return fmt.Errorf("session rename: %w", err)
	}
	s.log.Debug("session saved", "path", s.path, "bytes", len(source))
	return nil
}

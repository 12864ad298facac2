package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Prefs is the user state that outlives a single analysis cycle.
type Prefs struct {
	Theme       Theme `toml:"theme"`
	GenerateTAC bool  `toml:"generate_tac"`
	OptimizeTAC bool  `toml:"optimize_tac"`
}

func Defaults() Prefs {
	return Prefs{Theme: ThemeLight}
}

// normalize restores the invariants a hand-edited file may have broken.
func (p Prefs) normalize() Prefs {
	if p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	if p.OptimizeTAC {
		p.GenerateTAC = true
	}
	return p
}

// Store holds the preferences for one console session. Every mutation is
// written back to disk when the store was opened from a path.
type Store struct {
	mu   sync.Mutex
	path string
	cur  Prefs
	log  *slog.Logger
}

// NewStore returns an in-memory store seeded with p.
func NewStore(p Prefs) *Store {
	return &Store{cur: p.normalize(), log: slog.New(slog.DiscardHandler)}
}

// Open loads preferences from path. A missing or unreadable file yields the
// defaults; the error is only logged so the console always starts.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{path: path, cur: Defaults(), log: logger}
	p, err := load(path)
	switch {
	case err == nil:
		s.cur = p
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("no preferences file, using defaults", "path", path)
	default:
		logger.Warn("ignoring unreadable preferences", "path", path, "error", err)
	}
	return s
}

func load(path string) (Prefs, error) {
	p := Defaults()
	if path == "" {
		return p, os.ErrNotExist
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Defaults(), fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return p.normalize(), nil
}

func (s *Store) Snapshot() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *Store) ToggleTheme() Theme {
	s.mu.Lock()
	if s.cur.Theme == ThemeDark {
		s.cur.Theme = ThemeLight
	} else {
		s.cur.Theme = ThemeDark
	}
	t := s.cur.Theme
	s.mu.Unlock()
	s.persist()
	return t
}

// SetGenerate switches TAC generation. Turning it off also turns off
// optimization, which is meaningless without a listing.
func (s *Store) SetGenerate(on bool) Prefs {
	s.mu.Lock()
	s.cur.GenerateTAC = on
	if !on {
		s.cur.OptimizeTAC = false
	}
	p := s.cur
	s.mu.Unlock()
	s.persist()
	return p
}

// SetOptimize switches TAC optimization. Turning it on forces generation on.
func (s *Store) SetOptimize(on bool) Prefs {
	s.mu.Lock()
	s.cur.OptimizeTAC = on
	if on {
		s.cur.GenerateTAC = true
	}
	p := s.cur
	s.mu.Unlock()
	s.persist()
	return p
}

func (s *Store) persist() {
	if s.path == "" {
		return
	}
	if err := s.Save(); err != nil {
		s.log.Warn("saving preferences failed", "path", s.path, "error", err)
	}
}

// Save writes the current preferences atomically.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	p := s.Snapshot()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.toml")
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(tmp).Encode(p); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

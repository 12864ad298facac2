package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.toml"), nil)
	assert.Equal(t, Prefs{Theme: ThemeLight}, s.Snapshot())
}

func TestOptimizeForcesGenerate(t *testing.T) {
	s := NewStore(Defaults())

	got := s.SetOptimize(true)

	assert.True(t, got.GenerateTAC)
	assert.True(t, got.OptimizeTAC)
	assert.Equal(t, got, s.Snapshot())
}

func TestDisablingGenerateClearsOptimize(t *testing.T) {
	s := NewStore(Prefs{Theme: ThemeLight, GenerateTAC: true, OptimizeTAC: true})

	got := s.SetGenerate(false)

	assert.False(t, got.GenerateTAC)
	assert.False(t, got.OptimizeTAC)
}

func TestOptimizeOffKeepsGenerate(t *testing.T) {
	s := NewStore(Defaults())
	s.SetOptimize(true)

	got := s.SetOptimize(false)

	assert.True(t, got.GenerateTAC)
	assert.False(t, got.OptimizeTAC)
}

func TestToggleThemePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	s := Open(path, nil)

	assert.Equal(t, ThemeDark, s.ToggleTheme())
	s.SetOptimize(true)

	reopened := Open(path, nil)
	assert.Equal(t, Prefs{Theme: ThemeDark, GenerateTAC: true, OptimizeTAC: true}, reopened.Snapshot())

	assert.Equal(t, ThemeLight, reopened.ToggleTheme())
}

func TestLoadNormalizesHandEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"solarized\"\noptimize_tac = true\n"), 0o644))

	s := Open(path, nil)

	assert.Equal(t, Prefs{Theme: ThemeLight, GenerateTAC: true, OptimizeTAC: true}, s.Snapshot())
}

func TestLoadInvalidFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = [\n"), 0o644))

	s := Open(path, nil)

	assert.Equal(t, Defaults(), s.Snapshot())
}

func TestInMemoryStoreSaveIsNoop(t *testing.T) {
	s := NewStore(Defaults())
	assert.NoError(t, s.Save())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("HOME", dir)
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("server", "", "")
	fs.Duration("timeout", 0, "")
	fs.String("locale", "", "")
	fs.String("log-level", "", "")
	fs.String("color", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Server)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "auto", cfg.UI)
	assert.Equal(t, "prefs.toml", filepath.Base(cfg.PrefsFile))
	assert.Equal(t, "session.msgpack", filepath.Base(cfg.SessionFile))
}

func TestLoadPrecedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
server = "http://file:8000"
locale = "es"
timeout = "5s"
log_level = "debug"
`), 0o644))
	t.Setenv("CPS_LOCALE", "en")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--server", "http://flag:9000"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "http://flag:9000", cfg.Server, "flag beats file")
	assert.Equal(t, "en", cfg.Locale, "env beats file")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel, "unset flag does not mask file")
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Color = "rainbow"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.UI = "gui"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Server = " "
	assert.Error(t, bad.Validate())
}

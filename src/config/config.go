// Package config resolves console settings from defaults, an optional TOML
// file, CPS_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const appName = "cps-console"

// Config is the resolved console configuration.
type Config struct {
	Server        string        `mapstructure:"server"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Locale        string        `mapstructure:"locale"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFile       string        `mapstructure:"log_file"`
	PrefsFile     string        `mapstructure:"prefs_file"`
	SessionFile   string        `mapstructure:"session_file"`
	UTCPProviders string        `mapstructure:"utcp_providers"`
	Color         string        `mapstructure:"color"`
	UI            string        `mapstructure:"ui"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"server":         "server",
	"timeout":        "timeout",
	"locale":         "locale",
	"log-level":      "log_level",
	"log-file":       "log_file",
	"prefs-file":     "prefs_file",
	"session-file":   "session_file",
	"utcp-providers": "utcp_providers",
	"color":          "color",
	"ui":             "ui",
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server:      "http://127.0.0.1:8000",
		Locale:      "en",
		LogLevel:    "info",
		LogFile:     filepath.Join(StateDir(), "console.log"),
		PrefsFile:   filepath.Join(ConfigDir(), "prefs.toml"),
		SessionFile: filepath.Join(StateDir(), "session.msgpack"),
		Color:       "auto",
		UI:          "auto",
	}
}

// Load resolves the configuration. An explicit configFile must exist; the
// default config.toml under ConfigDir is optional. Only flags that were set
// on the command line override lower layers.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("server", def.Server)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("prefs_file", def.PrefsFile)
	v.SetDefault("session_file", def.SessionFile)
	v.SetDefault("utcp_providers", "")
	v.SetDefault("color", def.Color)
	v.SetDefault("ui", def.UI)

	v.SetConfigType("toml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix("CPS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server) == "" {
		return errors.New("server must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	switch c.UI {
	case "auto", "tui", "plain":
	default:
		return fmt.Errorf("ui must be auto, tui or plain, got %q", c.UI)
	}
	return nil
}

// ConfigDir is where config.toml and prefs.toml live.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, appName)
}

// StateDir is where the log and the session snapshot live.
func StateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "."+appName)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, appName)
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/config"
	"github.com/Protocol-Lattice/cps-console/src/logging"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

// env holds what every command needs once flags are parsed.
type env struct {
	cfg       *config.Config
	log       *slog.Logger
	logFile   *os.File
	prefs     *prefs.Store
	loc       ui.Localizer
	transport analysis.Transport
}

func setup(cmd *cobra.Command) (*env, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	e := &env{cfg: cfg, loc: ui.NewLocalizer(cfg.Locale)}
	e.log, e.logFile, err = logging.NewFileLogger(cfg.LogFile, logging.LevelFromString(cfg.LogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️ logging disabled:", err)
		e.log = logging.NewDiscardLogger()
	}
	e.log.Info("starting", "version", version, "server", cfg.Server, "command", cmd.Name())

	e.prefs = prefs.Open(cfg.PrefsFile, e.log)

	if cfg.UTCPProviders != "" {
		t, err := analysis.NewUTCPTransport(cmd.Context(), cfg.UTCPProviders, "")
		if err != nil {
			e.close()
			return nil, err
		}
		e.transport = t
	} else {
		e.transport = analysis.NewHTTPTransport(cfg.Server, cfg.Timeout, e.log)
	}
	return e, nil
}

// serverLabel is what the header shows as the analysis endpoint.
func (e *env) serverLabel() string {
	if e.cfg.UTCPProviders != "" {
		return "utcp:" + analysis.DefaultUTCPTool
	}
	return e.cfg.Server
}

func (e *env) close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

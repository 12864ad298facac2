// Command cps-mcp exposes the Compiscript analysis service as MCP tools so
// editor agents can check programs the same way the console does.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/config"
	"github.com/Protocol-Lattice/cps-console/src/logging"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

var version = "dev"

func main() {
	fs := pflag.NewFlagSet("cps-mcp", pflag.ExitOnError)
	configFile := fs.String("config", "", "config file")
	transport := fs.String("transport", "stdio", "stdio|http")
	addr := fs.String("addr", ":8090", "addr for http")
	def := config.Default()
	fs.String("server", def.Server, "analysis service base URL")
	fs.Duration("timeout", def.Timeout, "request timeout")
	fs.String("locale", def.Locale, "report language (en|es)")
	fs.String("log-level", def.LogLevel, "log level")
	fs.String("log-file", def.LogFile, "log file")
	fs.String("prefs-file", def.PrefsFile, "preferences file for default TAC flags")
	fs.String("utcp-providers", "", "UTCP providers file")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configFile, fs)
	if err != nil {
		log.Fatal(err)
	}
	// Reports travel as tool text, never to a terminal.
	color.NoColor = true

	logger, logFile, err := logging.NewFileLogger(cfg.LogFile, logging.LevelFromString(cfg.LogLevel))
	if err != nil {
		logger = logging.NewDiscardLogger()
	} else {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var t analysis.Transport
	if cfg.UTCPProviders != "" {
		if t, err = analysis.NewUTCPTransport(ctx, cfg.UTCPProviders, ""); err != nil {
			log.Fatal(err)
		}
	} else {
		t = analysis.NewHTTPTransport(cfg.Server, cfg.Timeout, logger)
	}

	b := &bridge{
		transport: t,
		defaults:  prefs.Open(cfg.PrefsFile, logger).Snapshot(),
		loc:       ui.NewLocalizer(cfg.Locale),
		log:       logger,
	}

	s := server.NewMCPServer(
		"cps-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	b.register(s)
	logger.Info("mcp bridge starting", "transport", *transport, "server", cfg.Server)

	switch *transport {
	case "stdio":
		if err := server.ServeStdio(s); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case "http":
		h := server.NewStreamableHTTPServer(s)
		log.Printf("HTTP listening on %s", *addr)
		if err := h.Start(*addr); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal("unknown transport: ", *transport)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Protocol-Lattice/cps-console/src/config"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// errChecksFailed makes the process exit 1 without printing an error line;
// the reports already said what went wrong.
var errChecksFailed = errors.New("analysis reported diagnostics")

var rootCmd = &cobra.Command{
	Use:   "cps-console",
	Short: "Terminal console for the Compiscript analysis service",
	Long: `cps-console edits Compiscript programs, sends them to the analysis service
and shows the diagnostics, the symbol table and the three-address code it returns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	def := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default "+config.ConfigDir()+"/config.toml)")
	pf.String("server", def.Server, "analysis service base URL")
	pf.Duration("timeout", def.Timeout, "request timeout (0 waits indefinitely)")
	pf.String("locale", def.Locale, "interface language (en|es)")
	pf.String("log-level", def.LogLevel, "log level (debug|info|warn|error)")
	pf.String("log-file", def.LogFile, "log file")
	pf.String("prefs-file", def.PrefsFile, "preferences file")
	pf.String("session-file", def.SessionFile, "session snapshot file")
	pf.String("utcp-providers", "", "UTCP providers file; analysis goes through UTCP when set")
	pf.String("color", def.Color, "colorize headless output (auto|always|never)")
	pf.String("ui", def.UI, "interface mode (auto|tui|plain)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "❌", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

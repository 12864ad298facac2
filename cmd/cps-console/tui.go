package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/cps-console/src"
	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/session"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive console (default)",
	Long: `Open the editor with the diagnostics, symbols and TAC panels. When stdin or
stdout is not a terminal and --ui is auto, the program on stdin is analyzed once
and the report is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	if !interactive(e.cfg.UI) {
		return runPlain(cmd.Context(), e, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	startDir, _ := os.Getwd()
	m := src.NewModel(cmd.Context(), src.Options{
		Transport: e.transport,
		Uploader:  analysis.NewUploader(e.cfg.Server, e.cfg.Timeout, e.log),
		Prefs:     e.prefs,
		Session:   session.NewStore(e.cfg.SessionFile, e.log),
		Server:    e.serverLabel(),
		Locale:    e.cfg.Locale,
		StartDir:  startDir,
		Logger:    e.log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	e.log.Info("console closed")
	return nil
}

func interactive(mode string) bool {
	switch mode {
	case "tui":
		return true
	case "plain":
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// runPlain analyzes the program read from r once.
func runPlain(ctx context.Context, e *env, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	rep := src.CheckSource(ctx, e.transport, src.CheckOptions{
		Prefs:  e.prefs.Snapshot(),
		Logger: e.log,
	}, "<stdin>", string(data))
	if src.WriteReports(w, []src.FileReport{rep}, e.loc, false) > 0 {
		return errChecksFailed
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Protocol-Lattice/cps-console/src"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.cps>...",
	Short: "Analyze files without the console",
	Long: `Send each file to the analysis service and print its diagnostics.
Exits with status 1 when any file has diagnostics or cannot be read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("tac", false, "request three-address code (default from preferences)")
	checkCmd.Flags().Bool("optimize", false, "request optimized three-address code (default from preferences)")
	checkCmd.Flags().Bool("listing", false, "print the TAC listing; implies --tac")
	checkCmd.Flags().IntP("jobs", "j", 4, "files analyzed in parallel")
}

func runCheck(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	p := e.prefs.Snapshot()
	if cmd.Flags().Changed("tac") {
		if p.GenerateTAC, err = cmd.Flags().GetBool("tac"); err != nil {
			return fmt.Errorf("failed to get tac flag: %w", err)
		}
	}
	if cmd.Flags().Changed("optimize") {
		if p.OptimizeTAC, err = cmd.Flags().GetBool("optimize"); err != nil {
			return fmt.Errorf("failed to get optimize flag: %w", err)
		}
	}
	listing, err := cmd.Flags().GetBool("listing")
	if err != nil {
		return fmt.Errorf("failed to get listing flag: %w", err)
	}
	if listing {
		p.GenerateTAC = true
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	reports, err := src.CheckFiles(cmd.Context(), e.transport, src.CheckOptions{
		Prefs:       p,
		Parallelism: jobs,
		Logger:      e.log,
	}, args)
	if err != nil {
		return err
	}
	failed := src.WriteReports(cmd.OutOrStdout(), reports, e.loc, listing)
	e.log.Info("check finished", "files", len(reports), "failed", failed)
	if failed > 0 {
		return errChecksFailed
	}
	return nil
}

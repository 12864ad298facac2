package src

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/editor"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

// FileReport is the verdict for one checked source.
type FileReport struct {
	Path   string
	Result *analysis.Result
	// Err is set when the file could not be read; transport failures are
	// folded into Result like in the console.
	Err error
}

// Failed reports whether the source did not pass cleanly.
func (r FileReport) Failed() bool {
	return r.Err != nil || r.Result == nil || !r.Result.OK
}

// CheckOptions configures a headless run.
type CheckOptions struct {
	Prefs       prefs.Prefs
	Parallelism int
	Logger      *slog.Logger
}

// CheckSource analyzes a single buffer the same way the console does.
func CheckSource(ctx context.Context, t analysis.Transport, opts CheckOptions, name, source string) FileReport {
	orch := analysis.NewOrchestrator(t, editor.NewMemory(source), prefs.NewStore(opts.Prefs), nil, opts.Logger)
	out := orch.Run(ctx)
	return FileReport{Path: name, Result: out.Result}
}

// CheckFiles analyzes paths concurrently. Reports come back in the order of
// paths; only cancellation of ctx is returned as an error.
func CheckFiles(ctx context.Context, t analysis.Transport, opts CheckOptions, paths []string) ([]FileReport, error) {
	reports := make([]FileReport, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallelism > 0 {
		g.SetLimit(opts.Parallelism)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				reports[i] = FileReport{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
				return nil
			}
			reports[i] = CheckSource(ctx, t, opts, path, string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// WriteReports prints each report as the console's diagnostics panel would
// show it and returns the number of reports that failed.
func WriteReports(w io.Writer, reports []FileReport, loc ui.Localizer, showListing bool) int {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	failed := 0
	for _, r := range reports {
		bold.Fprintln(w, r.Path)
		if r.Failed() {
			failed++
		}
		switch {
		case r.Err != nil:
			red.Fprintf(w, "  ❌ %v\n", r.Err)
			continue
		case r.Result == nil:
			continue
		case len(r.Result.Diagnostics) == 0:
			green.Fprintf(w, "  ✔ %s\n", loc.Text(ui.MsgNoErrors))
		default:
			for _, d := range r.Result.Diagnostics {
				c := yellow
				if d.Code == analysis.NetworkCode {
					c = red
				}
				c.Fprintf(w, "  %s\n", ui.EntryText(d))
			}
			faint.Fprintf(w, "  %s\n", loc.CountLabel(len(r.Result.Diagnostics)))
		}
		if l := r.Result.Listing; l != nil {
			if l.Stats != nil {
				faint.Fprintf(w, "  %s\n", ui.StatsLine(*l.Stats))
			}
			if showListing {
				fmt.Fprintln(w, l.Text())
			}
		}
	}
	return failed
}

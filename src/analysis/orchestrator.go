package analysis

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Protocol-Lattice/cps-console/src/prefs"
)

// TextSource yields the current editor contents.
type TextSource interface {
	Text() string
}

// PrefsSource yields the current user options.
type PrefsSource interface {
	Snapshot() prefs.Prefs
}

// StatusSink receives the status transitions of an analysis cycle.
type StatusSink interface {
	Running()
	Completed(res *Result)
}

// Outcome is the result of one cycle, tagged with its sequence number.
// Err is the transport or decode failure that was folded into Result.
type Outcome struct {
	Seq     uint64
	Result  *Result
	Err     error
	Elapsed time.Duration
}

// Ticket is a request captured from editor and preference state, ready to
// be executed off the UI loop.
type Ticket struct {
	Seq     uint64
	Request Request
	orch    *Orchestrator
}

// Orchestrator packages editor text and preferences into requests and
// normalizes whatever comes back into a Result.
//
// Overlapping cycles are allowed; each one gets a monotonic sequence number
// and only the newest issued cycle may be applied.
type Orchestrator struct {
	transport Transport
	text      TextSource
	prefs     PrefsSource
	sink      StatusSink
	log       *slog.Logger
	seq       atomic.Uint64
}

func NewOrchestrator(t Transport, text TextSource, p PrefsSource, sink StatusSink, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{transport: t, text: text, prefs: p, sink: sink, log: logger}
}

// Begin reads the editor and preferences, issues a new sequence number and
// reports the running state. It must run on the goroutine that owns the
// editor.
func (o *Orchestrator) Begin() Ticket {
	p := o.prefs.Snapshot()
	t := Ticket{
		Seq: o.seq.Add(1),
		Request: Request{
			Source:      o.text.Text(),
			GenerateTAC: p.GenerateTAC,
			OptimizeTAC: p.OptimizeTAC,
		},
		orch: o,
	}
	if o.sink != nil {
		o.sink.Running()
	}
	return t
}

// Execute performs the request. It never fails: transport and decode errors
// become a result with a single network diagnostic.
func (t Ticket) Execute(ctx context.Context) Outcome {
	o := t.orch
	start := time.Now()
	res, err := o.transport.Analyze(ctx, t.Request)
	out := Outcome{Seq: t.Seq, Elapsed: time.Since(start)}
	if err != nil {
		o.log.Warn("analysis failed", "seq", t.Seq, "error", err)
		out.Err = err
		out.Result = FailureResult(err)
		return out
	}
	res.Normalize()
	out.Result = res
	o.log.Debug("analysis result",
		"seq", t.Seq,
		"diagnostics", len(res.Diagnostics),
		"scope_depth", res.Scope.Depth(),
		"symbols", res.Scope.SymbolCount(),
		"listing_lines", listingLen(res.Listing),
		"elapsed", out.Elapsed)
	return out
}

// Current reports whether seq is the newest issued cycle.
func (o *Orchestrator) Current(seq uint64) bool {
	return o.seq.Load() == seq
}

// Finish reports the terminal status for out. Outcomes of superseded cycles
// are dropped and Finish returns false.
func (o *Orchestrator) Finish(out Outcome) bool {
	if !o.Current(out.Seq) {
		o.log.Info("dropping stale analysis result", "seq", out.Seq, "latest", o.seq.Load())
		return false
	}
	if o.sink != nil {
		o.sink.Completed(out.Result)
	}
	return true
}

// Run performs a whole cycle synchronously.
func (o *Orchestrator) Run(ctx context.Context) Outcome {
	out := o.Begin().Execute(ctx)
	o.Finish(out)
	return out
}

func listingLen(l *Listing) int {
	if l == nil {
		return 0
	}
	return len(l.Lines)
}

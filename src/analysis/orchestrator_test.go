package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/cps-console/src/prefs"
)

type staticText string

func (s staticText) Text() string { return string(s) }

type transportFunc func(ctx context.Context, req Request) (*Result, error)

func (f transportFunc) Analyze(ctx context.Context, req Request) (*Result, error) { return f(ctx, req) }

type recordingSink struct {
	events []string
	last   *Result
}

func (s *recordingSink) Running() { s.events = append(s.events, "running") }

func (s *recordingSink) Completed(res *Result) {
	s.events = append(s.events, "completed")
	s.last = res
}

func TestOrchestratorBuildsRequestFromEditorAndPrefs(t *testing.T) {
	store := prefs.NewStore(prefs.Defaults())
	store.SetOptimize(true)

	var got Request
	tr := transportFunc(func(_ context.Context, req Request) (*Result, error) {
		got = req
		return &Result{OK: true}, nil
	})
	sink := &recordingSink{}
	o := NewOrchestrator(tr, staticText("let x: integer = 1;"), store, sink, nil)

	out := o.Run(context.Background())

	assert.Equal(t, Request{Source: "let x: integer = 1;", GenerateTAC: true, OptimizeTAC: true}, got)
	assert.Equal(t, uint64(1), out.Seq)
	assert.True(t, out.Result.OK)
	assert.NoError(t, out.Err)
	assert.Equal(t, []string{"running", "completed"}, sink.events)
}

func TestOrchestratorForwardsEmptySource(t *testing.T) {
	var got Request
	tr := transportFunc(func(_ context.Context, req Request) (*Result, error) {
		got = req
		return &Result{}, nil
	})
	o := NewOrchestrator(tr, staticText(""), prefs.NewStore(prefs.Defaults()), nil, nil)

	o.Run(context.Background())

	assert.Equal(t, Request{}, got)
}

func TestOrchestratorNormalizesTransportFailure(t *testing.T) {
	boom := errors.New("connection refused")
	tr := transportFunc(func(context.Context, Request) (*Result, error) {
		return nil, errors.Join(ErrTransport, boom)
	})
	sink := &recordingSink{}
	o := NewOrchestrator(tr, staticText("x"), prefs.NewStore(prefs.Defaults()), sink, nil)

	out := o.Run(context.Background())

	require.ErrorIs(t, out.Err, boom)
	res := out.Result
	assert.False(t, res.OK)
	assert.Nil(t, res.Scope)
	assert.Nil(t, res.Listing)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, NetworkCode, res.Diagnostics[0].Code)
	assert.Contains(t, res.Diagnostics[0].Message, "connection refused")
	assert.Equal(t, 1, res.Diagnostics[0].Line)
	assert.Equal(t, 1, res.Diagnostics[0].Column)
	assert.Same(t, res, sink.last)
}

func TestOrchestratorNormalizesOKFlag(t *testing.T) {
	tr := transportFunc(func(context.Context, Request) (*Result, error) {
		return &Result{OK: true, Diagnostics: []Diagnostic{{Code: "E"}}}, nil
	})
	o := NewOrchestrator(tr, staticText(""), prefs.NewStore(prefs.Defaults()), nil, nil)

	assert.False(t, o.Run(context.Background()).Result.OK)
}

func TestOrchestratorDropsStaleOutcomes(t *testing.T) {
	tr := transportFunc(func(_ context.Context, req Request) (*Result, error) {
		return &Result{OK: true}, nil
	})
	sink := &recordingSink{}
	o := NewOrchestrator(tr, staticText(""), prefs.NewStore(prefs.Defaults()), sink, nil)

	first := o.Begin()
	second := o.Begin()
	assert.Equal(t, first.Seq+1, second.Seq)

	// The newer request answers first; the older answer must not win.
	assert.True(t, o.Finish(second.Execute(context.Background())))
	assert.False(t, o.Finish(first.Execute(context.Background())))
	assert.Equal(t, []string{"running", "running", "completed"}, sink.events)
}

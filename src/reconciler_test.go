package src

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/editor"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

func TestReconcileOneMarkerAndEntryPerDiagnostic(t *testing.T) {
	ed := editor.NewMemory("a\nb\nc")
	r := NewReconciler(ed, ui.NewLocalizer("en"))

	diags := []analysis.Diagnostic{
		{Code: "B", Message: "second", Line: 2, Column: 1},
		{Code: "A", Message: "dup", Line: 1, Column: 1},
		{Code: "A", Message: "dup", Line: 1, Column: 1},
	}
	r.Reconcile(diags)

	markers := ed.Markers()
	require.Len(t, markers, 3)
	require.Len(t, r.Entries(), 3)
	assert.Equal(t, "[B] (2:1) second", r.Entries()[0])
	assert.Equal(t, "[A] (1:1) dup", r.Entries()[2])
	assert.Equal(t, editor.Marker{Line: 2, Column: 1, EndLine: 2, EndColumn: 2, Severity: editor.SeverityError, Message: "[B] second"}, markers[0])
	assert.Equal(t, "3 errors", r.CountLabel())
}

func TestReconcileEmptyClearsEverything(t *testing.T) {
	ed := editor.NewMemory("x")
	r := NewReconciler(ed, ui.NewLocalizer("en"))
	r.Reconcile([]analysis.Diagnostic{{Code: "E", Line: 1, Column: 1}})

	r.Reconcile(nil)
	r.Reconcile(nil)

	assert.Empty(t, ed.Markers())
	assert.Empty(t, r.Entries())
	assert.Equal(t, 0, r.Count())
	assert.Equal(t, "0 errors", r.CountLabel())
}

func TestReconcileCountLabelPlurals(t *testing.T) {
	r := NewReconciler(editor.NewMemory(""), ui.NewLocalizer("es"))
	for n, want := range map[int]string{0: "0 errores", 1: "1 error", 2: "2 errores", 7: "7 errores"} {
		r.Reconcile(make([]analysis.Diagnostic, n))
		assert.Equal(t, want, r.CountLabel())
		assert.Len(t, r.Entries(), n)
	}
}

func TestActivateMovesEditor(t *testing.T) {
	ed := editor.NewMemory("line one\nline two\nline three")
	r := NewReconciler(ed, ui.NewLocalizer("en"))
	r.Reconcile([]analysis.Diagnostic{{Code: "TYPE", Message: "bad", Line: 3, Column: 7}})

	require.True(t, r.Activate(0))
	line, col := ed.Position()
	assert.Equal(t, 3, line)
	assert.Equal(t, 7, col)
	assert.Equal(t, 3, ed.Revealed())
	assert.True(t, ed.Focused())

	assert.False(t, r.Activate(1))
	assert.False(t, r.Activate(-1))
}

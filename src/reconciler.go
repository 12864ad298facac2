package src

import (
	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/editor"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

// Reconciler keeps editor markers and diagnostic list entries in lockstep
// with the latest result: after every Reconcile there is exactly one marker
// and one entry per diagnostic, in input order.
type Reconciler struct {
	editor  editor.Editor
	loc     ui.Localizer
	diags   []analysis.Diagnostic
	entries []string
}

func NewReconciler(ed editor.Editor, loc ui.Localizer) *Reconciler {
	return &Reconciler{editor: ed, loc: loc}
}

// Reconcile clears every marker and entry, then rebuilds both from diags.
// Duplicates are kept.
func (r *Reconciler) Reconcile(diags []analysis.Diagnostic) {
	r.editor.SetMarkers(nil)
	r.diags, r.entries = nil, nil

	markers := make([]editor.Marker, 0, len(diags))
	for _, d := range diags {
		markers = append(markers, editor.Marker{
			Line:      d.Line,
			Column:    d.Column,
			EndLine:   d.Line,
			EndColumn: d.Column + 1,
			Severity:  editor.SeverityError,
			Message:   ui.MarkerMessage(d),
		})
		r.entries = append(r.entries, ui.EntryText(d))
	}
	r.diags = append([]analysis.Diagnostic(nil), diags...)
	r.editor.SetMarkers(markers)
}

// Entries returns the list rows in diagnostic order.
func (r *Reconciler) Entries() []string { return r.entries }

func (r *Reconciler) Count() int { return len(r.diags) }

// CountLabel is the localized "n errors" text for the current entries.
func (r *Reconciler) CountLabel() string { return r.loc.CountLabel(len(r.diags)) }

// Activate moves the editor to entry i, scrolls it into view and focuses
// the editor. It reports false for an index outside the list.
func (r *Reconciler) Activate(i int) bool {
	if i < 0 || i >= len(r.diags) {
		return false
	}
	d := r.diags[i]
	r.editor.SetPosition(d.Line, d.Column)
	r.editor.RevealPosition(d.Line)
	r.editor.Focus()
	return true
}

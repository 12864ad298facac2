package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
)

// EntryText is the list row for a diagnostic.
func EntryText(d analysis.Diagnostic) string {
	return fmt.Sprintf("[%s] (%d:%d) %s", d.Code, d.Line, d.Column, d.Message)
}

// MarkerMessage is the hover text of a diagnostic's editor marker.
func MarkerMessage(d analysis.Diagnostic) string {
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}

// RenderDiagnostics draws the entry list, truncating rows to width. Before
// the first analysis it shows the hint; a clean result shows the OK text and
// the listing counters.
func RenderDiagnostics(p Panel, width int, focused bool, st Styles) string {
	if !p.Analyzed {
		return st.Subtle.Render(p.hint())
	}
	if len(p.Entries) == 0 {
		ok := p.OKText
		if ok == "" {
			ok = MsgNoErrors
		}
		lines := []string{st.Success.Render("✔ " + ok)}
		if p.Listing != nil && p.Listing.Stats != nil {
			lines = append(lines, st.Subtle.Render(StatsLine(*p.Listing.Stats)))
		}
		return strings.Join(lines, "\n")
	}
	rows := make([]string, 0, len(p.Entries))
	for i, e := range p.Entries {
		if width > 4 {
			e = runewidth.Truncate(e, width-4, "…")
		}
		if focused && i == p.Selected {
			rows = append(rows, st.ListSelected.Render("› "+e))
			continue
		}
		rows = append(rows, st.ListItem.Render(st.Error.Render("●")+" "+e))
	}
	return strings.Join(rows, "\n")
}

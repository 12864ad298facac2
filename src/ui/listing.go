package ui

import (
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
)

const ListingPlaceholder = "TAC not generated. Enable TAC (ctrl+g) and analyze again."

// StatsLine summarizes a listing's counters.
func StatsLine(s analysis.Stats) string {
	return fmt.Sprintf("Instructions: %d  Temporaries: %d  Labels: %d", s.Instructions, s.Temporaries, s.Labels)
}

// RenderListing shows the counters, when present, above the listing text.
func RenderListing(l *analysis.Listing, st Styles) string {
	if l == nil {
		return st.Detail.Render(ListingPlaceholder)
	}
	var parts []string
	if l.Stats != nil {
		parts = append(parts, st.Accent.Render(StatsLine(*l.Stats)), "")
	}
	parts = append(parts, st.Code.Render(l.Text()))
	return strings.Join(parts, "\n")
}

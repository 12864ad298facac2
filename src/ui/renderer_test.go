package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
)

func intPtr(n int) *int { return &n }

func TestRenderContainsTitle(t *testing.T) {
	styles := NewStyles(prefs.ThemeLight)
	state := State{
		Filename:   "/tmp/prog.cps",
		EditorView: "let x: integer = 1;",
		Spinner:    spinner.New(),
	}

	output := Render(state, styles)

	if !strings.Contains(output, Title) {
		t.Errorf("Expected output to contain %q", Title)
	}
	if !strings.Contains(output, "prog.cps") {
		t.Errorf("Expected header to show the file name")
	}
}

func TestRenderFooterContainsQuit(t *testing.T) {
	output := Render(State{Spinner: spinner.New()}, NewStyles(prefs.ThemeDark))

	if !strings.Contains(output, "ctrl+c: quit") {
		t.Errorf("Expected footer to contain quit instruction")
	}
}

func TestRenderShowsAnalyzeHintBeforeFirstRun(t *testing.T) {
	output := Render(State{Spinner: spinner.New()}, NewStyles(prefs.ThemeLight))

	if !strings.Contains(output, MsgAnalyzeHint) {
		t.Errorf("Expected diagnostics panel to show the analyze hint")
	}
}

func TestRenderRunningStatus(t *testing.T) {
	state := State{
		Status:  Status{Kind: StatusRunning, Text: "Analyzing…"},
		Spinner: spinner.New(),
	}

	output := Render(state, NewStyles(prefs.ThemeLight))

	if !strings.Contains(output, "Analyzing…") {
		t.Errorf("Expected running status text")
	}
}

func TestRenderCountChip(t *testing.T) {
	state := State{
		Status:  Status{Kind: StatusWarn, Text: "1 error"},
		Spinner: spinner.New(),
		Panel: Panel{
			Analyzed:   true,
			Entries:    []string{"[TYPE] (3:7) bad"},
			CountLabel: "1 error",
			ErrCount:   1,
		},
	}

	output := Render(state, NewStyles(prefs.ThemeLight))

	if !strings.Contains(output, "[TYPE] (3:7) bad") {
		t.Errorf("Expected diagnostic entry in panel")
	}
	if !strings.Contains(output, "1 error") {
		t.Errorf("Expected count label in footer")
	}
}

func TestRenderOKPanelShowsListingSummary(t *testing.T) {
	state := State{
		Spinner: spinner.New(),
		Panel: Panel{
			Analyzed: true,
			Listing:  &analysis.Listing{Lines: []string{"x = 1"}, Stats: &analysis.Stats{Instructions: 5, Temporaries: 2, Labels: 1}},
		},
	}

	output := Render(state, NewStyles(prefs.ThemeLight))

	if !strings.Contains(output, "No errors") {
		t.Errorf("Expected OK text")
	}
	if !strings.Contains(output, "Instructions: 5  Temporaries: 2  Labels: 1") {
		t.Errorf("Expected TAC summary in OK panel")
	}
}

func TestRenderPrefChips(t *testing.T) {
	state := State{
		Spinner: spinner.New(),
		Prefs:   prefs.Prefs{Theme: prefs.ThemeDark, GenerateTAC: true},
		Server:  "http://127.0.0.1:8000",
	}

	output := Render(state, NewStyles(prefs.ThemeDark))

	for _, want := range []string{"TAC", "OPT", "theme:dark", "server:http://127.0.0.1:8000"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected header to contain %q", want)
		}
	}
}

func TestPanelContentFollowsTab(t *testing.T) {
	styles := NewStyles(prefs.ThemeLight)
	state := State{Tab: TabSymbols}
	if got := PanelContent(state, styles, 80); !strings.Contains(got, ScopeUnavailable) {
		t.Errorf("Symbols tab without a tree = %q", got)
	}

	state.Tab = TabListing
	if got := PanelContent(state, styles, 80); !strings.Contains(got, ListingPlaceholder) {
		t.Errorf("TAC tab without a listing = %q", got)
	}
}

func TestTabCycling(t *testing.T) {
	if TabListing.Next() != TabDiagnostics {
		t.Errorf("Next should wrap around")
	}
	if TabDiagnostics.Prev() != TabListing {
		t.Errorf("Prev should wrap around")
	}
	if TabSymbols.String() != "Symbols" {
		t.Errorf("unexpected tab name %q", TabSymbols.String())
	}
}

func TestNewStyles(t *testing.T) {
	light := NewStyles(prefs.ThemeLight)
	dark := NewStyles(prefs.ThemeDark)

	if light.Accent.GetForeground() == nil {
		t.Errorf("Accent style should have a foreground color")
	}
	if light.Error.GetForeground() == dark.Error.GetForeground() {
		t.Errorf("Themes should use different palettes")
	}
}

package ui

import (
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
)

// Tab is the panel shown next to the editor.
type Tab int

const (
	TabDiagnostics Tab = iota
	TabSymbols
	TabListing
)

var tabNames = [...]string{"Errors", "Symbols", "TAC"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "?"
	}
	return tabNames[t]
}

// Next cycles forward through the tabs.
func (t Tab) Next() Tab { return (t + 1) % Tab(len(tabNames)) }

// Prev cycles backward through the tabs.
func (t Tab) Prev() Tab { return (t + Tab(len(tabNames)) - 1) % Tab(len(tabNames)) }

type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusRunning
	StatusWarn
	StatusErr
	StatusOK
)

// Status is the indicator in the footer. Text is already localized.
type Status struct {
	Kind StatusKind
	Text string
}

// Panel holds what the active tab shows.
type Panel struct {
	Entries  []string
	Selected int
	// Analyzed is false until the first cycle completes.
	Analyzed   bool
	Scope      *analysis.ScopeNode
	Listing    *analysis.Listing
	OKText     string
	Hint       string
	CountLabel string
	ErrCount   int
}

// State contains all the data required to render the UI.
// This decouples the renderer from the main application logic.
type State struct {
	Filename     string
	Server       string
	Prefs        prefs.Prefs
	Tab          Tab
	PanelFocused bool
	Picking      bool
	Status       Status
	Panel        Panel
	EditorView   string
	HelpView     string
	Width        int

	// Bubble Tea models
	Viewport viewport.Model
	Spinner  spinner.Model
	Picker   filepicker.Model
}

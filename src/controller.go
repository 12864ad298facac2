package src

import (
	"time"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

// toastTTL is how long a transient notification stays before the status
// falls back to Ready.
const toastTTL = 1200 * time.Millisecond

// viewController owns the tab selection and the status indicator. It is the
// orchestrator's status sink, so every completed cycle lands here.
type viewController struct {
	loc        ui.Localizer
	reconciler *Reconciler
	tab        ui.Tab
	manual     bool
	status     ui.Status
	toastID    int
	inFlight   bool
	result     *analysis.Result
}

func newViewController(loc ui.Localizer, r *Reconciler) *viewController {
	return &viewController{
		loc:        loc,
		reconciler: r,
		tab:        ui.TabDiagnostics,
		status:     ui.Status{Kind: ui.StatusIdle, Text: loc.Text(ui.MsgReady)},
	}
}

func (c *viewController) Running() {
	c.toastID++
	c.inFlight = true
	c.status = c.running()
}

func (c *viewController) running() ui.Status {
	return ui.Status{Kind: ui.StatusRunning, Text: c.loc.Text(ui.MsgAnalyzing)}
}

// Completed applies a cycle's result: markers and entries are rebuilt, the
// tab is chosen automatically and any manual selection is forgotten.
func (c *viewController) Completed(res *analysis.Result) {
	c.result = res
	c.inFlight = false
	c.reconciler.Reconcile(res.Diagnostics)
	c.manual = false
	c.tab = autoTab(res)

	if n := len(res.Diagnostics); n > 0 {
		c.status = ui.Status{Kind: ui.StatusWarn, Text: c.reconciler.CountLabel()}
		return
	}
	c.status = ui.Status{Kind: ui.StatusOK, Text: c.loc.Text(ui.MsgReady)}
}

// autoTab picks the panel after a cycle: diagnostics win, then a listing,
// then the symbol table.
func autoTab(res *analysis.Result) ui.Tab {
	switch {
	case len(res.Diagnostics) > 0:
		return ui.TabDiagnostics
	case res.Listing != nil:
		return ui.TabListing
	default:
		return ui.TabSymbols
	}
}

// Select is a manual tab activation; it holds until the next cycle.
func (c *viewController) Select(t ui.Tab) {
	c.tab = t
	c.manual = true
}

// Busy shows a running status that is not an analysis, such as an upload.
func (c *viewController) Busy(text string) {
	c.toastID++
	c.status = ui.Status{Kind: ui.StatusRunning, Text: text}
}

// Toast shows a transient status and returns its id for Expire.
func (c *viewController) Toast(kind ui.StatusKind, text string) int {
	c.toastID++
	c.status = ui.Status{Kind: kind, Text: text}
	return c.toastID
}

// Expire ends toast id if it is still the one showing. The status falls
// back to Running while an analysis is outstanding, otherwise to Ready.
func (c *viewController) Expire(id int) bool {
	if id != c.toastID {
		return false
	}
	if c.inFlight {
		c.status = c.running()
		return true
	}
	c.status = ui.Status{Kind: ui.StatusIdle, Text: c.loc.Text(ui.MsgReady)}
	return true
}

func (c *viewController) Tab() ui.Tab { return c.tab }

func (c *viewController) Status() ui.Status { return c.status }

func (c *viewController) Result() *analysis.Result { return c.result }

package src

import (
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

func (m *model) View() string {
	return ui.Render(m.state(), m.styles)
}

func (m *model) state() ui.State {
	res := m.ctrl.Result()
	panel := ui.Panel{
		Entries:    m.ctrl.reconciler.Entries(),
		Selected:   m.selected,
		Analyzed:   res != nil,
		OKText:     m.loc.Text(ui.MsgNoErrors),
		Hint:       m.loc.Text(ui.MsgAnalyzeHint),
		CountLabel: m.ctrl.reconciler.CountLabel(),
		ErrCount:   m.ctrl.reconciler.Count(),
	}
	if res != nil {
		panel.Scope = res.Scope
		panel.Listing = res.Listing
	}
	return ui.State{
		Filename:     m.filename,
		Server:       m.server,
		Prefs:        m.prefs.Snapshot(),
		Tab:          m.ctrl.Tab(),
		PanelFocused: m.panelFocused,
		Picking:      m.picking,
		Status:       m.ctrl.Status(),
		Panel:        panel,
		EditorView:   m.textarea.View(),
		HelpView:     m.help.View(m.keys),
		Width:        m.width,
		Viewport:     m.viewport,
		Spinner:      m.spinner,
		Picker:       m.picker,
	}
}

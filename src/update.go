package src

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Protocol-Lattice/cps-console/src/prefs"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.refreshPanel()
	return m, cmd
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return nil

	case analysisMsg:
		if m.orch.Finish(msg.out) {
			m.selected = 0
			m.viewport.GotoTop()
		}
		return nil

	case uploadMsg:
		return m.finishUpload(msg)

	case toastExpiredMsg:
		if m.ctrl.Expire(msg.id) && m.ctrl.Status().Kind == ui.StatusRunning {
			// The spinner stopped ticking while the toast was up.
			return m.spinner.Tick
		}
		return nil

	case spinner.TickMsg:
		if m.ctrl.Status().Kind != ui.StatusRunning {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}

	if m.picking {
		return m.updatePicker(msg)
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveSession()
		return tea.Quit

	case key.Matches(msg, m.keys.Analyze):
		return m.startAnalysis()

	case key.Matches(msg, m.keys.Upload):
		if m.uploader == nil {
			return nil
		}
		m.picking = true
		return m.picker.Init()

	case key.Matches(msg, m.keys.Generate):
		m.prefs.SetGenerate(!m.prefs.Snapshot().GenerateTAC)
		return nil

	case key.Matches(msg, m.keys.Optimize):
		m.prefs.SetOptimize(!m.prefs.Snapshot().OptimizeTAC)
		return nil

	case key.Matches(msg, m.keys.Theme):
		theme := m.prefs.ToggleTheme()
		m.applyTheme(theme)
		return m.toast(ui.StatusIdle, m.loc.Text(ui.MsgTheme, theme))

	case key.Matches(msg, m.keys.Copy):
		return m.copyListing()

	case key.Matches(msg, m.keys.Focus):
		m.setPanelFocus(!m.panelFocused)
		return nil

	case key.Matches(msg, m.keys.TabErr):
		m.ctrl.Select(ui.TabDiagnostics)
		return nil

	case key.Matches(msg, m.keys.TabSym):
		m.ctrl.Select(ui.TabSymbols)
		return nil

	case key.Matches(msg, m.keys.TabTAC):
		m.ctrl.Select(ui.TabListing)
		return nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return nil
	}

	if m.panelFocused {
		return m.handlePanelKey(msg)
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return cmd
}

func (m *model) handlePanelKey(msg tea.KeyMsg) tea.Cmd {
	entries := m.ctrl.reconciler.Count()
	onList := m.ctrl.Tab() == ui.TabDiagnostics && entries > 0

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.ctrl.Select(m.ctrl.Tab().Next())
		return nil

	case key.Matches(msg, m.keys.PrevTab):
		m.ctrl.Select(m.ctrl.Tab().Prev())
		return nil

	case onList && key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return nil

	case onList && key.Matches(msg, m.keys.Down):
		if m.selected < entries-1 {
			m.selected++
		}
		return nil

	case onList && key.Matches(msg, m.keys.Activate):
		if m.ctrl.reconciler.Activate(m.selected) {
			m.panelFocused = false
		}
		return nil
	}

	switch msg.String() {
	case "1":
		m.ctrl.Select(ui.TabDiagnostics)
		return nil
	case "2":
		m.ctrl.Select(ui.TabSymbols)
		return nil
	case "3":
		m.ctrl.Select(ui.TabListing)
		return nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *model) updatePicker(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Focus) {
		m.picking = false
		return nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return tea.Batch(cmd, m.startUpload(path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		return tea.Batch(cmd, m.toast(ui.StatusErr, m.loc.Text(ui.MsgUploadFailed, path)))
	}
	return cmd
}

// startAnalysis begins a cycle on the UI goroutine and runs the request in
// a command.
func (m *model) startAnalysis() tea.Cmd {
	return tea.Batch(m.analyzeCmd(), m.spinner.Tick)
}

func (m *model) analyzeCmd() tea.Cmd {
	ticket := m.orch.Begin()
	ctx := m.ctx
	return func() tea.Msg {
		return analysisMsg{out: ticket.Execute(ctx)}
	}
}

func (m *model) startUpload(path string) tea.Cmd {
	m.ctrl.Busy(m.loc.Text(ui.MsgUploading))
	ctx, up := m.ctx, m.uploader
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		u, err := up.UploadFile(ctx, path)
		return uploadMsg{upload: u, err: err}
	})
}

// finishUpload replaces the buffer on success. A rejected upload only shows
// a toast; the editor is left alone.
func (m *model) finishUpload(msg uploadMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Warn("upload failed", "error", msg.err)
		return m.toast(ui.StatusErr, m.loc.Text(ui.MsgUploadFailed, msg.err))
	}
	m.editor.SetText(msg.upload.Code)
	m.filename = msg.upload.Filename
	m.saveSession()
	return m.toast(ui.StatusOK, m.loc.Text(ui.MsgUploaded, msg.upload.Filename))
}

func (m *model) copyListing() tea.Cmd {
	res := m.ctrl.Result()
	if res == nil || res.Listing == nil {
		return m.toast(ui.StatusWarn, m.loc.Text(ui.MsgNothingToCopy))
	}
	if err := m.copyText(res.Listing.Text()); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		return m.toast(ui.StatusErr, m.loc.Text(ui.MsgCopyFailed, err))
	}
	return m.toast(ui.StatusOK, m.loc.Text(ui.MsgCopied))
}

func (m *model) toast(kind ui.StatusKind, text string) tea.Cmd {
	id := m.ctrl.Toast(kind, text)
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *model) setPanelFocus(on bool) {
	m.panelFocused = on
	if on {
		m.textarea.Blur()
		return
	}
	m.textarea.Focus()
}

func (m *model) applyTheme(theme prefs.Theme) {
	m.styles = ui.NewStyles(theme)
	m.spinner.Style = m.styles.Running
}

func (m *model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.help.Width = m.width
	headerHeight := 2
	footerHeight := 1 + lipgloss.Height(m.help.View(m.keys))
	bodyHeight := max(m.height-headerHeight-footerHeight-2, 3) // -2 for borders

	editorWidth := m.width * 11 / 20
	panelWidth := m.width - editorWidth

	m.textarea.SetWidth(editorWidth - 2)
	m.textarea.SetHeight(bodyHeight)
	m.viewport.Width = panelWidth - 2
	m.viewport.Height = bodyHeight - 1 // -1 for the tab row
	m.picker.Height = max(bodyHeight-1, 3)
}

// refreshPanel re-renders the active tab into the viewport and keeps the
// selected diagnostic on screen.
func (m *model) refreshPanel() {
	m.viewport.SetContent(ui.PanelContent(m.state(), m.styles, m.viewport.Width))
	if m.ctrl.Tab() != ui.TabDiagnostics || m.viewport.Height <= 0 {
		return
	}
	switch {
	case m.selected < m.viewport.YOffset:
		m.viewport.SetYOffset(m.selected)
	case m.selected >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.selected - m.viewport.Height + 1)
	}
}

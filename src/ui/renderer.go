package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const Title = "Compiscript Console"

// Render generates the full UI string based on the provided state.
func Render(s State, styles Styles) string {
	header := renderHeader(s, styles)
	body := renderBody(s, styles)
	footer := renderFooter(s, styles)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func renderHeader(s State, styles Styles) string {
	name := s.Filename
	if name == "" {
		name = "untitled.cps"
	}
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Header.Render(Title),
		styles.Subtitle.Render(filepath.Base(name)),
	)
	chips := lipgloss.JoinHorizontal(lipgloss.Top,
		chip("TAC", s.Prefs.GenerateTAC, styles),
		" ",
		chip("OPT", s.Prefs.OptimizeTAC, styles),
		" ",
		styles.Subtle.Render(fmt.Sprintf("theme:%s  server:%s", s.Prefs.Theme, s.Server)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, chips)
}

func chip(label string, on bool, styles Styles) string {
	if on {
		return styles.ChipOn.Render(label)
	}
	return styles.ChipOff.Render(label)
}

func renderBody(s State, styles Styles) string {
	if s.Picking {
		return styles.PanelFocused.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.Accent.Render("Open a .cps file"),
			s.Picker.View(),
		))
	}
	editorBox := styles.Textarea
	panelBox := styles.Panel
	if s.PanelFocused {
		editorBox, panelBox = styles.Panel, styles.PanelFocused
	}
	editor := editorBox.Render(s.EditorView)

	content := s.Viewport.View()
	if s.Viewport.Height == 0 {
		content = PanelContent(s, styles, s.Viewport.Width)
	}
	panel := panelBox.Render(lipgloss.JoinVertical(lipgloss.Left, renderTabs(s, styles), content))
	return lipgloss.JoinHorizontal(lipgloss.Top, editor, panel)
}

func renderTabs(s State, styles Styles) string {
	tabs := make([]string, 0, 3)
	for t := TabDiagnostics; t <= TabListing; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == s.Tab {
			tabs = append(tabs, styles.TabActive.Render(label))
			continue
		}
		tabs = append(tabs, styles.Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// PanelContent renders the body of the active tab.
func PanelContent(s State, styles Styles, width int) string {
	switch s.Tab {
	case TabSymbols:
		return RenderScopeTree(s.Panel.Scope, styles)
	case TabListing:
		return RenderListing(s.Panel.Listing, styles)
	default:
		return RenderDiagnostics(s.Panel, width, s.PanelFocused, styles)
	}
}

func (p Panel) hint() string {
	if p.Hint == "" {
		return MsgAnalyzeHint
	}
	return p.Hint
}

func renderFooter(s State, styles Styles) string {
	var status string
	switch s.Status.Kind {
	case StatusRunning:
		status = styles.Running.Render(fmt.Sprintf("%s %s", s.Spinner.View(), s.Status.Text))
	case StatusWarn:
		status = styles.Warn.Render("⚠ " + s.Status.Text)
	case StatusErr:
		status = styles.Error.Render("❌ " + s.Status.Text)
	case StatusOK:
		status = styles.Success.Render("✔ " + s.Status.Text)
	default:
		status = styles.Status.Render(s.Status.Text)
	}

	items := []string{status}
	if s.Panel.Analyzed {
		count := styles.CountOK
		if s.Panel.ErrCount > 0 {
			count = styles.CountErr
		}
		items = append(items, " ", count.Render(s.Panel.CountLabel))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, items...)

	help := s.HelpView
	if help == "" {
		help = "ctrl+c: quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, styles.Footer.Render(strings.TrimRight(help, "\n")))
}

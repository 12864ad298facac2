package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Protocol-Lattice/cps-console/src/prefs"
)

type Styles struct {
	Header        lipgloss.Style
	Subtitle      lipgloss.Style
	Panel         lipgloss.Style
	PanelFocused  lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	ListItem      lipgloss.Style
	ListSelected  lipgloss.Style
	Textarea      lipgloss.Style
	Help          lipgloss.Style
	Footer        lipgloss.Style
	Accent        lipgloss.Style
	Error         lipgloss.Style
	Warn          lipgloss.Style
	Success       lipgloss.Style
	Running       lipgloss.Style
	Status        lipgloss.Style
	ChipOn        lipgloss.Style
	ChipOff       lipgloss.Style
	CountErr      lipgloss.Style
	CountOK       lipgloss.Style
	ScopeTitle    lipgloss.Style
	SymbolKind    lipgloss.Style
	SymbolName    lipgloss.Style
	Aux           lipgloss.Style
	Label         lipgloss.Style
	Detail        lipgloss.Style
	Code          lipgloss.Style
	Subtle        lipgloss.Style
	Center        lipgloss.Style
}

type palette struct {
	accent, text, subtle, footer, border, selected string
	err, warn, success, aux, label, chipText       string
}

var (
	darkPalette = palette{
		accent:   "#AD8CFF",
		text:     "#E6E6E6",
		subtle:   "#999999",
		footer:   "#777777",
		border:   "#AD8CFF",
		selected: "#00E6B8",
		err:      "#FF5C5C",
		warn:     "#F6C85F",
		success:  "#3DDC97",
		aux:      "#4CC9F0",
		label:    "#F6C85F",
		chipText: "#FFFFFF",
	}
	lightPalette = palette{
		accent:   "#6B4FD8",
		text:     "#1F1F1F",
		subtle:   "#666666",
		footer:   "#777777",
		border:   "#8A6FE8",
		selected: "#00A383",
		err:      "#D7263D",
		warn:     "#B7791F",
		success:  "#00A86B",
		aux:      "#0B7FA6",
		label:    "#A66A00",
		chipText: "#FFFFFF",
	}
)

// NewStyles returns the styles for theme; anything but dark gets the light
// palette.
func NewStyles(theme prefs.Theme) Styles {
	p := lightPalette
	if theme == prefs.ThemeDark {
		p = darkPalette
	}
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.accent)).
			Bold(true).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.subtle)),

		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.accent)).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		ListItem: lipgloss.NewStyle().
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.selected)).
			Bold(true).
			Padding(0, 1),

		Textarea: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.footer)),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.footer)).
			Faint(true),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.accent)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.err)).
			Bold(true),

		Warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warn)).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),

		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.text)).
			Padding(0, 1),

		ChipOn: lipgloss.NewStyle().
			Background(lipgloss.Color(p.accent)).
			Foreground(lipgloss.Color(p.chipText)).
			Padding(0, 1),

		ChipOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)).
			Padding(0, 1),

		CountErr: lipgloss.NewStyle().
			Background(lipgloss.Color(p.err)).
			Foreground(lipgloss.Color(p.chipText)).
			Padding(0, 1),

		CountOK: lipgloss.NewStyle().
			Background(lipgloss.Color(p.success)).
			Foreground(lipgloss.Color(p.chipText)).
			Padding(0, 1),

		ScopeTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.accent)).
			Bold(true),

		SymbolKind: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),

		SymbolName: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.text)).
			Bold(true),

		Aux: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.aux)),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.label)),

		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)).
			Italic(true),

		Code: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.text)),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),

		Center: lipgloss.NewStyle().
			Align(lipgloss.Center),
	}
}

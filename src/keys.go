package src

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Analyze  key.Binding
	Upload   key.Binding
	Generate key.Binding
	Optimize key.Binding
	Theme    key.Binding
	Copy     key.Binding
	Focus    key.Binding
	TabErr   key.Binding
	TabSym   key.Binding
	TabTAC   key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Analyze:  key.NewBinding(key.WithKeys("ctrl+r", "f5"), key.WithHelp("ctrl+r", "analyze")),
		Upload:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open .cps")),
		Generate: key.NewBinding(key.WithKeys("ctrl+g", "f7"), key.WithHelp("ctrl+g", "TAC")),
		Optimize: key.NewBinding(key.WithKeys("f8"), key.WithHelp("f8", "optimize")),
		Theme:    key.NewBinding(key.WithKeys("f9"), key.WithHelp("f9", "theme")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy TAC")),
		Focus:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "editor/panel")),
		TabErr:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "errors")),
		TabSym:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "symbols")),
		TabTAC:   key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "TAC")),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go to error")),
		Help:     key.NewBinding(key.WithKeys("f10"), key.WithHelp("f10", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Upload, k.Generate, k.Optimize, k.Focus, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Analyze, k.Upload, k.Copy, k.Quit},
		{k.Generate, k.Optimize, k.Theme, k.Help},
		{k.TabErr, k.TabSym, k.TabTAC, k.Focus},
		{k.NextTab, k.PrevTab, k.Up, k.Down, k.Activate},
	}
}

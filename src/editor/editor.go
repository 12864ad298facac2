// Package editor defines the contract the console needs from its source
// editor and two implementations: a bubbles textarea adapter for the TUI and
// an in-memory buffer for tests and headless runs.
package editor

import "strings"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Marker highlights a range of the buffer. Positions are 1-based and the
// end column is exclusive.
type Marker struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Severity  Severity
	Message   string
}

// Editor is what the console drives. SetMarkers replaces every marker in a
// single call; positions outside the buffer are clamped.
type Editor interface {
	Text() string
	SetText(text string)
	SetMarkers(markers []Marker)
	Markers() []Marker
	SetPosition(line, column int)
	RevealPosition(line int)
	Focus()
}

// Memory is an Editor backed by a string.
type Memory struct {
	text     string
	markers  []Marker
	line     int
	column   int
	revealed int
	focused  bool
}

func NewMemory(text string) *Memory {
	return &Memory{text: text, line: 1, column: 1, revealed: 1}
}

func (m *Memory) Text() string { return m.text }

func (m *Memory) SetText(text string) {
	m.text = text
	m.line, m.column = 1, 1
}

func (m *Memory) SetMarkers(markers []Marker) {
	m.markers = append([]Marker(nil), markers...)
}

func (m *Memory) Markers() []Marker {
	return append([]Marker(nil), m.markers...)
}

func (m *Memory) SetPosition(line, column int) {
	m.line, m.column = clampPosition(m.text, line, column)
}

func (m *Memory) RevealPosition(line int) {
	m.revealed, _ = clampPosition(m.text, line, 1)
}

func (m *Memory) Focus() { m.focused = true }

// Position returns the 1-based cursor position.
func (m *Memory) Position() (line, column int) { return m.line, m.column }

// Revealed returns the last line scrolled into view.
func (m *Memory) Revealed() int { return m.revealed }

func (m *Memory) Focused() bool { return m.focused }

// clampPosition limits a 1-based position to the lines of text. Columns may
// sit one past the end of a line.
func clampPosition(text string, line, column int) (int, int) {
	lines := strings.Split(text, "\n")
	line = min(max(line, 1), len(lines))
	width := len([]rune(lines[line-1]))
	column = min(max(column, 1), width+1)
	return line, column
}

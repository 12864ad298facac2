package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/mattn/go-runewidth"
)

const (
	markerGlyph = "● "
	blankGutter = "  "
)

// TextArea adapts a bubbles textarea owned by the Bubble Tea model. Markers
// are drawn as a glyph in the prompt gutter of the first row of each marked
// line; the messages themselves live in the diagnostics panel.
type TextArea struct {
	ta      *textarea.Model
	markers []Marker
	marked  map[int]bool // 0-based logical lines
	owners  []int        // display row -> logical line, rebuilt on each render
}

// NewTextArea configures ta for editing whole programs and installs the
// marker gutter.
func NewTextArea(ta *textarea.Model) *TextArea {
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	e := &TextArea{ta: ta, marked: map[int]bool{}}
	ta.SetPromptFunc(runewidth.StringWidth(markerGlyph), e.prompt)
	return e
}

// prompt is called by the textarea once per display row, top to bottom.
func (e *TextArea) prompt(row int) string {
	if row == 0 {
		e.owners = displayOwners(e.ta.Value(), e.ta.Width())
	}
	if row >= len(e.owners) {
		return blankGutter
	}
	line := e.owners[row]
	if e.marked[line] && (row == 0 || e.owners[row-1] != line) {
		return markerGlyph
	}
	return blankGutter
}

// displayOwners approximates the textarea's soft wrap: a line occupies one
// row per full width of text, plus the row holding the cursor slot.
func displayOwners(text string, width int) []int {
	var owners []int
	for i, line := range strings.Split(text, "\n") {
		rows := 1
		if width > 0 {
			rows = runewidth.StringWidth(line)/width + 1
		}
		for range rows {
			owners = append(owners, i)
		}
	}
	return owners
}

func (e *TextArea) Text() string { return e.ta.Value() }

func (e *TextArea) SetText(text string) {
	e.ta.SetValue(text)
	e.moveTo(0)
	e.ta.CursorStart()
}

func (e *TextArea) SetMarkers(markers []Marker) {
	e.markers = append([]Marker(nil), markers...)
	e.marked = make(map[int]bool, len(markers))
	for _, mk := range markers {
		line, _ := clampPosition(e.ta.Value(), mk.Line, 1)
		e.marked[line-1] = true
	}
}

func (e *TextArea) Markers() []Marker {
	return append([]Marker(nil), e.markers...)
}

func (e *TextArea) SetPosition(line, column int) {
	line, column = clampPosition(e.ta.Value(), line, column)
	e.moveTo(line - 1)
	e.ta.SetCursor(column - 1)
}

// RevealPosition puts the cursor on line; the textarea scrolls to keep the
// cursor row visible.
func (e *TextArea) RevealPosition(line int) {
	line, _ = clampPosition(e.ta.Value(), line, 1)
	if e.ta.Line() != line-1 {
		e.moveTo(line - 1)
	}
}

func (e *TextArea) Focus() { e.ta.Focus() }

// Position returns the 1-based cursor position.
func (e *TextArea) Position() (line, column int) {
	info := e.ta.LineInfo()
	return e.ta.Line() + 1, info.StartColumn + info.ColumnOffset + 1
}

// moveTo walks the cursor to a 0-based logical line. CursorUp and CursorDown
// step over display rows, so the walk is bounded by the number of runes.
func (e *TextArea) moveTo(target int) {
	limit := len(e.ta.Value()) + e.ta.LineCount() + 1
	for i := 0; e.ta.Line() > target && i < limit; i++ {
		e.ta.CursorUp()
	}
	for i := 0; e.ta.Line() < target && i < limit; i++ {
		e.ta.CursorDown()
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
)

const (
	ScopeUnavailable = "Symbol table unavailable."
	NoSymbols        = "— no symbols —"
	anonName         = "(anon)"
	unknownKind      = "symbol"
)

// LineKind selects the style a tree line is drawn with.
type LineKind int

const (
	LineScope LineKind = iota
	LineSymbol
	LineDetail
	LineMember
	LinePlaceholder
)

// Segment is a run of text in a tree line. Aux segments are annotations
// such as offsets and labels, drawn apart from the signature.
type Segment struct {
	Text string
	Aux  bool
}

type TreeLine struct {
	Depth    int
	Kind     LineKind
	Segments []Segment
}

// Plain returns the line text without styling or indentation.
func (l TreeLine) Plain() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ScopeView is a scope tree flattened depth-first into lines.
type ScopeView []TreeLine

// BuildScopeView flattens root. A nil root yields the unavailable
// placeholder.
func BuildScopeView(root *analysis.ScopeNode) ScopeView {
	if root == nil {
		return ScopeView{placeholder(0, ScopeUnavailable)}
	}
	return scopeLines(root, 0)
}

func scopeLines(n *analysis.ScopeNode, depth int) []TreeLine {
	name := n.Name
	if name == "" {
		name = "global"
	}
	lines := []TreeLine{{Depth: depth, Kind: LineScope, Segments: []Segment{{Text: "Scope: " + name}}}}
	if len(n.Symbols) == 0 {
		lines = append(lines, placeholder(depth+1, NoSymbols))
	}
	for _, sym := range n.Symbols {
		lines = append(lines, symbolLines(sym, depth+1)...)
	}
	for _, child := range n.Children {
		if child != nil {
			lines = append(lines, scopeLines(child, depth+1)...)
		}
	}
	return lines
}

func symbolLines(sym analysis.Symbol, depth int) []TreeLine {
	switch s := sym.(type) {
	case analysis.Variable:
		return variableLines(s, depth)
	case analysis.Function:
		return functionLines(s, depth)
	case analysis.Class:
		return classLines(s, depth)
	case analysis.Generic:
		return genericLines(s, depth)
	default:
		return nil
	}
}

func variableLines(v analysis.Variable, depth int) []TreeLine {
	segs := head(v.Kind, v.Name)
	segs = appendType(segs, v.Type)
	segs = appendOffset(segs, v.Offset)
	return []TreeLine{{Depth: depth, Kind: LineSymbol, Segments: segs}}
}

func functionLines(f analysis.Function, depth int) []TreeLine {
	segs := head(f.Kind, f.Name)
	// The parameter list appears only when there are parameters; each one
	// is always a name: type pair.
	if len(f.Params) > 0 {
		segs = append(segs, Segment{Text: "("})
		for i, p := range f.Params {
			if i > 0 {
				segs = append(segs, Segment{Text: ", "})
			}
			segs = append(segs, Segment{Text: orAnon(p.Name) + ": " + p.Type})
			segs = appendOffset(segs, p.Offset)
		}
		segs = append(segs, Segment{Text: ")"})
	}
	segs = appendType(segs, f.ReturnType)
	if f.Label != "" {
		segs = append(segs, Segment{Text: " [" + f.Label + "]", Aux: true})
	}

	lines := []TreeLine{{Depth: depth, Kind: LineSymbol, Segments: segs}}
	if f.Frame != nil && f.Frame.Size > 0 {
		lines = append(lines, detail(depth+1, fmt.Sprintf("Frame: %d B (params: %d B, locals: %d B)",
			f.Frame.Size, f.Frame.ParamsSize, f.Frame.LocalsSize)))
	}
	return lines
}

func classLines(c analysis.Class, depth int) []TreeLine {
	segs := appendType(head(c.Kind, c.Name), c.Type)
	lines := []TreeLine{{Depth: depth, Kind: LineSymbol, Segments: segs}}
	if c.InstanceSize != nil && *c.InstanceSize > 0 {
		lines = append(lines, detail(depth+1, fmt.Sprintf("Instance: %d bytes", *c.InstanceSize)))
	}
	for _, f := range c.Fields {
		text := "• Field " + orAnon(f.Name)
		if f.Type != "" {
			text += ": " + f.Type
		}
		lines = append(lines, TreeLine{Depth: depth + 1, Kind: LineMember, Segments: []Segment{{Text: text}}})
	}
	for _, m := range c.Methods {
		text := fmt.Sprintf("• Method %s (%s)", orAnon(m.Name), strings.Join(m.ParamTypes, ", "))
		if m.ReturnType != "" {
			text += " → " + m.ReturnType
		}
		lines = append(lines, TreeLine{Depth: depth + 1, Kind: LineMember, Segments: []Segment{{Text: text}}})
	}
	return lines
}

func genericLines(g analysis.Generic, depth int) []TreeLine {
	segs := appendType(head(g.Kind, g.Name), g.Type)
	return []TreeLine{{Depth: depth, Kind: LineSymbol, Segments: segs}}
}

func head(kind, name string) []Segment {
	if kind == "" {
		kind = unknownKind
	}
	return []Segment{{Text: kind + " "}, {Text: orAnon(name)}}
}

func appendType(segs []Segment, typ string) []Segment {
	if typ == "" {
		return segs
	}
	return append(segs, Segment{Text: ": " + typ})
}

func appendOffset(segs []Segment, off *int) []Segment {
	if off == nil {
		return segs
	}
	return append(segs, Segment{Text: fmt.Sprintf(" [offset=%d]", *off), Aux: true})
}

func orAnon(name string) string {
	if strings.TrimSpace(name) == "" {
		return anonName
	}
	return name
}

func placeholder(depth int, text string) TreeLine {
	return TreeLine{Depth: depth, Kind: LinePlaceholder, Segments: []Segment{{Text: text}}}
}

func detail(depth int, text string) TreeLine {
	return TreeLine{Depth: depth, Kind: LineDetail, Segments: []Segment{{Text: text}}}
}

// RenderScopeTree draws the tree with two spaces of indentation per level.
func RenderScopeTree(root *analysis.ScopeNode, st Styles) string {
	view := BuildScopeView(root)
	out := make([]string, 0, len(view))
	for _, l := range view {
		out = append(out, strings.Repeat("  ", l.Depth)+renderTreeLine(l, st))
	}
	return strings.Join(out, "\n")
}

func renderTreeLine(l TreeLine, st Styles) string {
	switch l.Kind {
	case LineScope:
		return st.ScopeTitle.Render(l.Plain())
	case LineDetail, LinePlaceholder:
		return st.Detail.Render(l.Plain())
	case LineMember:
		return st.Subtle.Render(l.Plain())
	}
	var b strings.Builder
	for i, s := range l.Segments {
		switch {
		case s.Aux && strings.HasPrefix(s.Text, " [offset="):
			b.WriteString(st.Aux.Render(s.Text))
		case s.Aux:
			b.WriteString(st.Label.Render(s.Text))
		case i == 0:
			b.WriteString(st.SymbolKind.Render(s.Text))
		case i == 1:
			b.WriteString(st.SymbolName.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

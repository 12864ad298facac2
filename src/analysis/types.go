package analysis

import "strings"

// Request is the body sent to the analysis endpoint.
type Request struct {
	Source      string `json:"source"`
	GenerateTAC bool   `json:"generate_tac"`
	OptimizeTAC bool   `json:"optimize_tac"`
}

// Diagnostic is one reported problem. Line and Column are 1-based.
type Diagnostic struct {
	Code    string
	Message string
	Line    int
	Column  int
}

// Result is the decoded verdict of one analysis cycle.
type Result struct {
	OK          bool
	Diagnostics []Diagnostic
	Scope       *ScopeNode
	Listing     *Listing
}

// Normalize makes OK agree with the diagnostics, which are authoritative.
func (r *Result) Normalize() {
	r.OK = len(r.Diagnostics) == 0
}

type ScopeNode struct {
	Name     string
	Symbols  []Symbol
	Children []*ScopeNode
}

// Symbol is one declaration inside a scope. The concrete type is selected by
// the kind tag the service sends: Variable, Function, Class or Generic.
type Symbol interface {
	KindTag() string
	SymbolName() string
	symbol()
}

type Variable struct {
	Kind   string
	Name   string
	Type   string
	Offset *int
}

type Param struct {
	Name   string
	Type   string
	Offset *int
}

// Frame is the activation record layout of a function.
type Frame struct {
	Size       int
	ParamsSize int
	LocalsSize int
}

type Function struct {
	Kind       string
	Name       string
	ReturnType string
	Params     []Param
	Label      string
	Frame      *Frame
}

type Field struct {
	Name string
	Type string
}

type Method struct {
	Name       string
	ParamTypes []string
	ReturnType string
}

type Class struct {
	Kind         string
	Name         string
	Type         string
	Fields       []Field
	Methods      []Method
	InstanceSize *int
}

// Generic carries a symbol whose kind tag is missing or not recognized.
type Generic struct {
	Kind string
	Name string
	Type string
}

func (v Variable) KindTag() string    { return v.Kind }
func (v Variable) SymbolName() string { return v.Name }
func (Variable) symbol()              {}

func (f Function) KindTag() string    { return f.Kind }
func (f Function) SymbolName() string { return f.Name }
func (Function) symbol()              {}

func (c Class) KindTag() string    { return c.Kind }
func (c Class) SymbolName() string { return c.Name }
func (Class) symbol()              {}

func (g Generic) KindTag() string    { return g.Kind }
func (g Generic) SymbolName() string { return g.Name }
func (Generic) symbol()              {}

type variant int

const (
	variantGeneric variant = iota
	variantVariable
	variantFunction
	variantClass
)

// classify maps the service kind tag ("VariableSymbol", "function", ...) to
// a variant.
func classify(kind string) variant {
	k := strings.ToLower(strings.TrimSpace(kind))
	k = strings.TrimSuffix(k, "symbol")
	switch k {
	case "variable", "var", "let", "const", "constant", "param", "parameter", "field":
		return variantVariable
	case "function", "func", "method":
		return variantFunction
	case "class":
		return variantClass
	default:
		return variantGeneric
	}
}

// Stats are the aggregate counters of a generated listing.
type Stats struct {
	Instructions int
	Temporaries  int
	Labels       int
}

type Listing struct {
	Lines []string
	Stats *Stats
}

// Text is the listing as shown and copied: lines joined by newlines.
func (l *Listing) Text() string {
	if l == nil {
		return ""
	}
	return strings.Join(l.Lines, "\n")
}

// Depth returns the number of scope levels below and including n.
func (n *ScopeNode) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// SymbolCount counts symbols over the whole tree.
func (n *ScopeNode) SymbolCount() int {
	if n == nil {
		return 0
	}
	total := len(n.Symbols)
	for _, c := range n.Children {
		total += c.SymbolCount()
	}
	return total
}

package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// DecodeResult parses an analysis response. Only a body that is not a JSON
// object is an error; every missing, null or mistyped field inside it is
// treated as absent.
func DecodeResult(body []byte) (*Result, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return resultFrom(obj), nil
}

func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrDecode, jsonKind(raw))
	}
	return obj, nil
}

// isResultObject reports whether obj carries at least one of the keys every
// analysis answer has.
func isResultObject(obj map[string]any) bool {
	_, hasOK := obj["ok"]
	_, hasErrors := obj["errors"]
	return hasOK || hasErrors
}

// ResultFromValue decodes an already unmarshalled payload, as returned by
// tool-calling transports.
func ResultFromValue(v any) (*Result, error) {
	switch t := v.(type) {
	case string:
		return DecodeResult([]byte(t))
	case []byte:
		return DecodeResult(t)
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return DecodeResult(body)
}

func resultFrom(obj map[string]any) *Result {
	res := &Result{}
	for _, item := range arrayField(obj, "errors") {
		res.Diagnostics = append(res.Diagnostics, diagnosticFrom(item))
	}
	if scope, ok := obj["symbols"].(map[string]any); ok {
		res.Scope = scopeFrom(scope)
	}
	if tac, ok := obj["tac"].(map[string]any); ok {
		res.Listing = listingFrom(tac)
	}
	res.Normalize()
	return res
}

func diagnosticFrom(v any) Diagnostic {
	obj, _ := v.(map[string]any)
	d := Diagnostic{
		Code:    stringField(obj, "code"),
		Message: stringField(obj, "message"),
		Line:    positionField(obj, "line"),
		Column:  positionField(obj, "column"),
	}
	if d.Code == "" {
		d.Code = "ERR"
	}
	if d.Message == "" {
		d.Message = "Error"
	}
	return d
}

// positionField reads a 1-based coordinate, defaulting to 1.
func positionField(obj map[string]any, key string) int {
	n, ok := intField(obj, key)
	if !ok || n < 1 {
		return 1
	}
	return n
}

func scopeFrom(obj map[string]any) *ScopeNode {
	node := &ScopeNode{Name: stringField(obj, "scope_name")}
	if node.Name == "" {
		node.Name = stringField(obj, "name")
	}
	if node.Name == "" {
		node.Name = "global"
	}
	for _, item := range arrayField(obj, "symbols") {
		node.Symbols = append(node.Symbols, symbolFrom(item))
	}
	for _, item := range arrayField(obj, "children") {
		if child, ok := item.(map[string]any); ok {
			node.Children = append(node.Children, scopeFrom(child))
		}
	}
	return node
}

func symbolFrom(v any) Symbol {
	obj, _ := v.(map[string]any)
	kind := stringField(obj, "kind")
	name := stringField(obj, "name")
	switch classify(kind) {
	case variantVariable:
		return Variable{Kind: kind, Name: name, Type: stringField(obj, "type"), Offset: optionalInt(obj, "offset")}
	case variantFunction:
		return functionFrom(obj, kind, name)
	case variantClass:
		return classFrom(obj, kind, name)
	default:
		return Generic{Kind: kind, Name: name, Type: stringField(obj, "type")}
	}
}

func functionFrom(obj map[string]any, kind, name string) Function {
	fn := Function{
		Kind:       kind,
		Name:       name,
		ReturnType: stringField(obj, "return_type"),
		Label:      stringField(obj, "label"),
	}
	for _, item := range arrayField(obj, "params") {
		p, _ := item.(map[string]any)
		fn.Params = append(fn.Params, Param{
			Name:   stringField(p, "name"),
			Type:   stringField(p, "type"),
			Offset: optionalInt(p, "offset"),
		})
	}
	// The layout is sent either flat on the symbol or nested under
	// "activation_record".
	layout := obj
	if ar, ok := obj["activation_record"].(map[string]any); ok {
		layout = ar
	}
	if size, ok := intField(layout, "frame_size"); ok {
		params, _ := intField(layout, "params_size")
		locals, _ := intField(layout, "locals_size")
		fn.Frame = &Frame{Size: size, ParamsSize: params, LocalsSize: locals}
	}
	return fn
}

func classFrom(obj map[string]any, kind, name string) Class {
	c := Class{
		Kind:         kind,
		Name:         name,
		Type:         stringField(obj, "type"),
		InstanceSize: optionalInt(obj, "instance_size"),
	}
	for _, item := range arrayField(obj, "fields") {
		f, _ := item.(map[string]any)
		c.Fields = append(c.Fields, Field{Name: stringField(f, "name"), Type: stringField(f, "type")})
	}
	for _, item := range arrayField(obj, "methods") {
		m, _ := item.(map[string]any)
		method := Method{Name: stringField(m, "name"), ReturnType: stringField(m, "return_type")}
		for _, p := range arrayField(m, "params") {
			method.ParamTypes = append(method.ParamTypes, paramType(p))
		}
		c.Methods = append(c.Methods, method)
	}
	return c
}

// paramType accepts both a bare type string and a serialized parameter.
func paramType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		return stringField(t, "type")
	default:
		return scalarString(v)
	}
}

func listingFrom(obj map[string]any) *Listing {
	code, ok := obj["code"].([]any)
	if !ok {
		return nil
	}
	l := &Listing{Lines: make([]string, 0, len(code))}
	for _, line := range code {
		l.Lines = append(l.Lines, scalarString(line))
	}
	if stats, ok := obj["stats"].(map[string]any); ok {
		instr, _ := intField(stats, "instructions")
		temps, _ := intField(stats, "temporals")
		labels, _ := intField(stats, "labels")
		l.Stats = &Stats{Instructions: instr, Temporaries: temps, Labels: labels}
	}
	return l
}

func arrayField(obj map[string]any, key string) []any {
	if obj == nil {
		return nil
	}
	arr, _ := obj[key].([]any)
	return arr
}

func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	return scalarString(obj[key])
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func optionalInt(obj map[string]any, key string) *int {
	n, ok := intField(obj, key)
	if !ok {
		return nil
	}
	return &n
}

// intField reads an integral number. Fractions, overflow and non-numeric
// strings are reported as absent.
func intField(obj map[string]any, key string) (int, bool) {
	if obj == nil {
		return 0, false
	}
	var num json.Number
	switch t := obj[key].(type) {
	case json.Number:
		num = t
	case string:
		num = json.Number(strings.TrimSpace(t))
	case float64:
		num = json.Number(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return 0, false
	}
	if i, err := num.Int64(); err == nil {
		n, err := safecast.Conv[int](i)
		return n, err == nil
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	n, err := safecast.Convert[int](f)
	return n, err == nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

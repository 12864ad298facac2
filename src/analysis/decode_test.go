package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResultFull(t *testing.T) {
	body := `{
		"ok": false,
		"errors": [{"code": "TYPE", "message": "bad", "line": 3, "column": 7}],
		"symbols": {
			"scope_name": "global",
			"symbols": [
				{"kind": "VariableSymbol", "name": "x", "type": "integer", "offset": 0},
				{"kind": "FunctionSymbol", "name": "add", "return_type": "integer",
				 "params": [{"name": "a", "type": "integer", "offset": 0}, {"name": "b", "type": "integer"}],
				 "label": "L_add", "frame_size": 12, "locals_size": 4},
				{"kind": "ClassSymbol", "name": "Point", "instance_size": 8,
				 "fields": [{"name": "x", "type": "integer"}],
				 "methods": [{"name": "norm", "params": ["integer", {"name": "k", "type": "float"}], "return_type": "float"}]}
			],
			"children": [{"scope_name": "add", "symbols": [], "children": []}, 5]
		},
		"tac": {"code": ["t1 = a + b", "return t1"], "stats": {"instructions": 5, "temporals": 2, "labels": 1}}
	}`

	res, err := DecodeResult([]byte(body))
	require.NoError(t, err)

	assert.False(t, res.OK)
	assert.Equal(t, []Diagnostic{{Code: "TYPE", Message: "bad", Line: 3, Column: 7}}, res.Diagnostics)

	require.NotNil(t, res.Scope)
	assert.Equal(t, "global", res.Scope.Name)
	require.Len(t, res.Scope.Symbols, 3)
	require.Len(t, res.Scope.Children, 1)
	assert.Equal(t, "add", res.Scope.Children[0].Name)

	v, ok := res.Scope.Symbols[0].(Variable)
	require.True(t, ok)
	require.NotNil(t, v.Offset)
	assert.Equal(t, 0, *v.Offset)

	fn, ok := res.Scope.Symbols[1].(Function)
	require.True(t, ok)
	assert.Equal(t, "integer", fn.ReturnType)
	assert.Equal(t, "L_add", fn.Label)
	require.Len(t, fn.Params, 2)
	assert.Nil(t, fn.Params[1].Offset)
	assert.Equal(t, &Frame{Size: 12, ParamsSize: 0, LocalsSize: 4}, fn.Frame)

	cls, ok := res.Scope.Symbols[2].(Class)
	require.True(t, ok)
	require.NotNil(t, cls.InstanceSize)
	assert.Equal(t, 8, *cls.InstanceSize)
	assert.Equal(t, []Field{{Name: "x", Type: "integer"}}, cls.Fields)
	assert.Equal(t, []Method{{Name: "norm", ParamTypes: []string{"integer", "float"}, ReturnType: "float"}}, cls.Methods)

	require.NotNil(t, res.Listing)
	assert.Equal(t, "t1 = a + b\nreturn t1", res.Listing.Text())
	assert.Equal(t, &Stats{Instructions: 5, Temporaries: 2, Labels: 1}, res.Listing.Stats)
}

func TestDecodeDiagnosticDefaults(t *testing.T) {
	body := `{"errors": [
		{"line": 0, "column": -4},
		{"code": "SYN", "message": "x", "line": "7", "column": 2.0},
		{"line": 2.5, "column": "abc"},
		null
	]}`

	res, err := DecodeResult([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, []Diagnostic{
		{Code: "ERR", Message: "Error", Line: 1, Column: 1},
		{Code: "SYN", Message: "x", Line: 7, Column: 2},
		{Code: "ERR", Message: "Error", Line: 1, Column: 1},
		{Code: "ERR", Message: "Error", Line: 1, Column: 1},
	}, res.Diagnostics)
	assert.False(t, res.OK)
}

func TestDecodeDiagnosticsAreAuthoritative(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{"ok true with errors", `{"ok": true, "errors": [{"code": "E1"}]}`, false},
		{"ok false without errors", `{"ok": false, "errors": []}`, true},
		{"ok missing", `{}`, true},
		{"errors not a list", `{"ok": false, "errors": "boom"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DecodeResult([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, res.OK)
		})
	}
}

func TestDecodeAbsentSections(t *testing.T) {
	res, err := DecodeResult([]byte(`{"ok": true, "errors": [], "symbols": null, "tac": null}`))
	require.NoError(t, err)
	assert.Nil(t, res.Scope)
	assert.Nil(t, res.Listing)

	res, err = DecodeResult([]byte(`{"tac": {"stats": {"instructions": 1}}}`))
	require.NoError(t, err)
	assert.Nil(t, res.Listing, "a listing without code is absent")

	res, err = DecodeResult([]byte(`{"tac": {"code": []}}`))
	require.NoError(t, err)
	require.NotNil(t, res.Listing)
	assert.Nil(t, res.Listing.Stats)
}

func TestDecodeScopeDefaults(t *testing.T) {
	res, err := DecodeResult([]byte(`{"symbols": {"symbols": [{"name": 3}, "junk", {"kind": "Mystery", "type": "t"}]}}`))
	require.NoError(t, err)

	require.NotNil(t, res.Scope)
	assert.Equal(t, "global", res.Scope.Name)
	assert.Equal(t, []Symbol{
		Generic{Name: "3"},
		Generic{},
		Generic{Kind: "Mystery", Type: "t"},
	}, res.Scope.Symbols)
}

func TestDecodeNestedActivationRecord(t *testing.T) {
	res, err := DecodeResult([]byte(`{"symbols": {"symbols": [
		{"kind": "function", "name": "f", "activation_record": {"frame_size": 16, "params_size": 8}}
	]}}`))
	require.NoError(t, err)

	fn := res.Scope.Symbols[0].(Function)
	assert.Equal(t, &Frame{Size: 16, ParamsSize: 8}, fn.Frame)
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `[]`, `"ok"`, `null`, `{"ok":`} {
		_, err := DecodeResult([]byte(body))
		assert.ErrorIs(t, err, ErrDecode, "body %q", body)
	}
}

func TestResultFromValue(t *testing.T) {
	res, err := ResultFromValue(map[string]any{"ok": true, "errors": []any{}})
	require.NoError(t, err)
	assert.True(t, res.OK)

	res, err = ResultFromValue(`{"errors": [{"code": "X", "line": 2, "column": 3}]}`)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Diagnostics[0].Line)

	_, err = ResultFromValue(42)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, variantVariable, classify("VariableSymbol"))
	assert.Equal(t, variantFunction, classify("FunctionSymbol"))
	assert.Equal(t, variantClass, classify(" class "))
	assert.Equal(t, variantGeneric, classify(""))
	assert.Equal(t, variantGeneric, classify("Namespace"))
}

func TestScopeDepthAndCount(t *testing.T) {
	var nilScope *ScopeNode
	assert.Equal(t, 0, nilScope.Depth())
	assert.Equal(t, 0, nilScope.SymbolCount())

	root := &ScopeNode{
		Symbols: []Symbol{Generic{}},
		Children: []*ScopeNode{
			{Children: []*ScopeNode{{Symbols: []Symbol{Generic{}, Generic{}}}}},
		},
	}
	assert.Equal(t, 3, root.Depth())
	assert.Equal(t, 3, root.SymbolCount())
}

func TestDecodeFloatPositions(t *testing.T) {
	tests := []struct {
		name     string
		diag     string
		wantLine int
		wantCol  int
	}{
		{"integral float", `{"line": 3.0, "column": 7.0}`, 3, 7},
		{"exponent", `{"line": 2e1, "column": 1}`, 20, 1},
		{"fraction", `{"line": 2.5, "column": 4}`, 1, 4},
		{"overflow", `{"line": 5, "column": 1e400}`, 5, 1},
		{"too large for int", `{"line": 1e30, "column": 2}`, 1, 2},
		{"float literal in a string", `{"line": "6.0", "column": "-2.0"}`, 6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DecodeResult([]byte(`{"errors": [` + tt.diag + `]}`))
			require.NoError(t, err)
			require.Len(t, res.Diagnostics, 1)
			assert.Equal(t, tt.wantLine, res.Diagnostics[0].Line)
			assert.Equal(t, tt.wantCol, res.Diagnostics[0].Column)
		})
	}
}

func TestDecodeFloatSizes(t *testing.T) {
	res, err := DecodeResult([]byte(`{"symbols": {"symbols": [
		{"kind": "function", "name": "f", "frame_size": 16.0, "params_size": 8.5, "locals_size": 8}
	]}}`))
	require.NoError(t, err)

	fn := res.Scope.Symbols[0].(Function)
	assert.Equal(t, &Frame{Size: 16, ParamsSize: 0, LocalsSize: 8}, fn.Frame)
}

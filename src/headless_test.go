package src

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

// fakeService reports one diagnostic for every source containing "bad".
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req analysis.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if strings.Contains(req.Source, "bad") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"ok": false, "errors": [{"code": "SEM", "message": "undeclared", "line": 1, "column": 5}]}`))
			return
		}
		body := `{"ok": true, "errors": []}`
		if req.GenerateTAC {
			body = `{"ok": true, "errors": [], "tac": {"code": ["halt"], "stats": {"instructions": 1, "temporals": 0, "labels": 0}}}`
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCheckFilesKeepsOrder(t *testing.T) {
	srv := fakeService(t)
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.cps", "let a: integer = 1;"),
		writeSource(t, dir, "b.cps", "bad"),
		filepath.Join(dir, "missing.cps"),
	}

	reports, err := CheckFiles(context.Background(), analysis.NewHTTPTransport(srv.URL, 0, nil),
		CheckOptions{Prefs: prefs.Prefs{GenerateTAC: true}, Parallelism: 2}, paths)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.False(t, reports[0].Failed())
	assert.NotNil(t, reports[0].Result.Listing)
	assert.True(t, reports[1].Failed())
	assert.Equal(t, "SEM", reports[1].Result.Diagnostics[0].Code)
	assert.True(t, reports[2].Failed())
	assert.ErrorIs(t, reports[2].Err, os.ErrNotExist)
}

func TestCheckFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CheckFiles(ctx, analysis.NewHTTPTransport("http://127.0.0.1:1", 0, nil), CheckOptions{}, []string{"a.cps"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteReports(t *testing.T) {
	color.NoColor = true
	stats := &analysis.Stats{Instructions: 1}
	reports := []FileReport{
		{Path: "ok.cps", Result: &analysis.Result{OK: true, Listing: &analysis.Listing{Lines: []string{"halt"}, Stats: stats}}},
		{Path: "bad.cps", Result: &analysis.Result{Diagnostics: []analysis.Diagnostic{{Code: "SEM", Message: "undeclared", Line: 1, Column: 5}}}},
	}

	var buf bytes.Buffer
	failed := WriteReports(&buf, reports, ui.NewLocalizer("en"), true)

	assert.Equal(t, 1, failed)
	out := buf.String()
	assert.Contains(t, out, "✔ No errors")
	assert.Contains(t, out, "Instructions: 1  Temporaries: 0  Labels: 0")
	assert.Contains(t, out, "halt")
	assert.Contains(t, out, "[SEM] (1:5) undeclared")
	assert.Contains(t, out, "1 error")
}

package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Protocol-Lattice/cps-console/src"
	"github.com/Protocol-Lattice/cps-console/src/analysis"
	"github.com/Protocol-Lattice/cps-console/src/prefs"
	"github.com/Protocol-Lattice/cps-console/src/ui"
)

const (
	toolAnalyzeSource = "analyze_source"
	toolAnalyzeFile   = "analyze_file"
)

// bridge answers MCP tool calls with the same reports `cps-console check`
// prints.
type bridge struct {
	transport analysis.Transport
	defaults  prefs.Prefs
	loc       ui.Localizer
	log       *slog.Logger
}

func (b *bridge) register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool(toolAnalyzeSource,
		mcp.WithDescription("Analyze a Compiscript program and report diagnostics, optionally with its three-address code"),
		mcp.WithString("source", mcp.Required(), mcp.Description("Program text")),
		mcp.WithBoolean("generate_tac", mcp.Description("Request three-address code")),
		mcp.WithBoolean("optimize_tac", mcp.Description("Request optimized three-address code; implies generate_tac")),
		mcp.WithBoolean("listing", mcp.Description("Include the TAC listing in the report")),
	), b.analyzeSource)

	s.AddTool(mcp.NewTool(toolAnalyzeFile,
		mcp.WithDescription("Analyze a .cps file from disk"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the .cps file")),
		mcp.WithBoolean("generate_tac", mcp.Description("Request three-address code")),
		mcp.WithBoolean("optimize_tac", mcp.Description("Request optimized three-address code; implies generate_tac")),
		mcp.WithBoolean("listing", mcp.Description("Include the TAC listing in the report")),
	), b.analyzeFile)
}

func (b *bridge) analyzeSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rep := src.CheckSource(ctx, b.transport, b.options(req), "<source>", source)
	return b.result(rep, req.GetBool("listing", false)), nil
}

func (b *bridge) analyzeFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !strings.EqualFold(filepath.Ext(path), analysis.SourceExt) {
		return mcp.NewToolResultError("only " + analysis.SourceExt + " files can be analyzed"), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError("Failed to read file: " + err.Error()), nil
	}
	rep := src.CheckSource(ctx, b.transport, b.options(req), path, string(data))
	return b.result(rep, req.GetBool("listing", false)), nil
}

func (b *bridge) options(req mcp.CallToolRequest) src.CheckOptions {
	p := b.defaults
	p.GenerateTAC = req.GetBool("generate_tac", p.GenerateTAC)
	p.OptimizeTAC = req.GetBool("optimize_tac", p.OptimizeTAC)
	if req.GetBool("listing", false) {
		p.GenerateTAC = true
	}
	return src.CheckOptions{Prefs: p, Logger: b.log}
}

func (b *bridge) result(rep src.FileReport, listing bool) *mcp.CallToolResult {
	var buf bytes.Buffer
	src.WriteReports(&buf, []src.FileReport{rep}, b.loc, listing)
	b.log.Info("tool call answered", "path", rep.Path, "failed", rep.Failed())
	return mcp.NewToolResultText(buf.String())
}

package analysis

import (
	"context"
	"fmt"
	"os"

	utcp "github.com/universal-tool-calling-protocol/go-utcp"
)

// DefaultUTCPTool is the tool the UTCP transport calls.
const DefaultUTCPTool = "compiscript.analyze"

// toolCaller is the part of the UTCP client the transport needs.
type toolCaller interface {
	CallTool(ctx context.Context, toolName string, args map[string]any) (any, error)
}

// UTCPTransport routes analysis requests through a UTCP tool provider
// instead of the HTTP endpoint.
type UTCPTransport struct {
	client toolCaller
	tool   string
}

// NewUTCPTransport initializes a UTCP client from a providers file.
func NewUTCPTransport(ctx context.Context, providersPath, tool string) (*UTCPTransport, error) {
	if _, err := os.Stat(providersPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("UTCP unavailable: providers file missing at %s", providersPath)
	}
	cfg := &utcp.UtcpClientConfig{
		ProvidersFilePath: providersPath,
	}
	client, err := utcp.NewUTCPClient(ctx, cfg, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("UTCP unavailable: %w", err)
	}
	if tool == "" {
		tool = DefaultUTCPTool
	}
	return &UTCPTransport{client: client, tool: tool}, nil
}

func (t *UTCPTransport) Analyze(ctx context.Context, req Request) (*Result, error) {
	out, err := t.client.CallTool(ctx, t.tool, map[string]any{
		"source":       req.Source,
		"generate_tac": req.GenerateTAC,
		"optimize_tac": req.OptimizeTAC,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: utcp %s: %w", ErrTransport, t.tool, err)
	}
	return ResultFromValue(out)
}

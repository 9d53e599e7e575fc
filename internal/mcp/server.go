// Package mcp exposes the tool registry over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"linearmcp/internal/tools"
)

type Server struct {
	registry *tools.Registry
	logger   *slog.Logger
	mcp      *sdk.Server
}

func NewServer(registry *tools.Registry, version string, logger *slog.Logger) *Server {
	s := &Server{
		registry: registry,
		logger:   logger.With("component", "mcp-server"),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "linearmcp",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// registerTools announces every descriptor with its declared input schema.
// Argument validation happens in the registry, so all tools share one
// handler shape.
func (s *Server) registerTools() {
	for _, d := range s.registry.Descriptors() {
		s.mcp.AddTool(&sdk.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		}, s.handleCall(d.Name))
	}
}

func (s *Server) handleCall(name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		args := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, fmt.Errorf("decoding arguments for %s: %w", name, err)
			}
		}
		s.logger.Debug("tool call", "tool", name)
		result := s.registry.Dispatch(ctx, name, args)
		return toCallToolResult(result), nil
	}
}

func toCallToolResult(result tools.Result) *sdk.CallToolResult {
	content := make([]sdk.Content, 0, len(result.Content))
	for _, c := range result.Content {
		content = append(content, &sdk.TextContent{Text: c.Text})
	}
	return &sdk.CallToolResult{
		Content: content,
		IsError: result.IsError,
	}
}

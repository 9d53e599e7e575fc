package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"linearmcp/internal/auth"
	"linearmcp/internal/client"
	"linearmcp/internal/config"
	"linearmcp/internal/linear"
	"linearmcp/internal/mcp"
	"linearmcp/internal/tools"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	// stdout carries the MCP stream, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	provider := auth.NewAPIKey(cfg.APIKey)
	exec := client.New(client.Config{
		Endpoint:         cfg.Endpoint,
		MaxRetries:       cfg.Retry.MaxRetries,
		InitialBackoff:   cfg.Retry.InitialBackoff.Std(),
		MaxBackoff:       cfg.Retry.MaxBackoff.Std(),
		MaxRequests:      cfg.Rate.MaxRequests,
		Window:           cfg.Rate.Window.Std(),
		BatchConcurrency: cfg.Batch.Concurrency,
	}, provider, logger)

	issues := linear.NewIssueService(exec, logger)
	registry, err := tools.NewRegistry(cfg.ToolPrefix, tools.Services{
		Issues:   issues,
		Projects: linear.NewProjectService(exec, issues, logger),
		Teams:    linear.NewTeamService(exec, logger),
		Users:    linear.NewUserService(exec, logger),
		Comments: linear.NewCommentService(exec, logger),
	}, provider, logger)
	if err != nil {
		return err
	}

	server := mcp.NewServer(registry, version, logger)
	logger.Info("starting MCP server", "endpoint", cfg.Endpoint, "tools", len(registry.Descriptors()))
	return server.Run(cmd.Context(), &sdk.StdioTransport{})
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tableau/pkg/adapters/mcp"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/observability"
	"github.com/aretw0/tableau/pkg/table"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts Tableau as an MCP Server.
This allows AI agents to inspect tables and move cards through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Run: func(cmd *cobra.Command, args []string) {
			transport, _ := cmd.Flags().GetString("transport")
			port, _ := cmd.Flags().GetInt("port")

			cfg, err := loadConfig(cmd)
			if err != nil {
				log.Fatalf("Error: %v", err)
			}
			// The logger writes to stderr, so logs don't corrupt JSON-RPC on Stdout.
			logger, err := newLogger(cmd)
			if err != nil {
				log.Fatalf("Error: %v", err)
			}
			slog.SetDefault(logger)

			logHooks := observability.LogHooks(logger)
			tables := table.NewManager(tableFactory(cfg, logger, func(string) domain.LifecycleHooks { return logHooks }),
				table.WithLogger(logger))
			srv := mcp.NewServer(tables)

			switch transport {
			case "stdio":
				log.SetOutput(os.Stderr)
				logger.Info("Starting Tableau MCP Server (Stdio)...")
				if err := srv.ServeStdio(); err != nil {
					logger.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			case "sse":
				logger.Info("Starting Tableau MCP Server (SSE)", "port", port)

				// Create a context that cancels on interrupt signal
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := srv.ServeSSE(ctx, port); err != nil {
					// Ignore server closed error if it was caused by context cancellation
					if err != http.ErrServerClosed {
						logger.Error("MCP Server execution failed", "error", err)
						os.Exit(1)
					}
				}
				logger.Info("MCP Server stopped gracefully")
			default:
				log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
			}
		},
	}

	cmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	return cmd
}

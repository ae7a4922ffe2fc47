package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/tinkit/internal/cli"
	"github.com/aretw0/tinkit/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes scale_tin, tin_centroid and tin_inspect as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app := setupApp(cmd)
		defer app.Close()

		srv := mcp.NewServer(app.Toolkit, app.Logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			app.Logger.Info("Starting tinkit MCP Server (Stdio)")
			if err := srv.ServeStdio(); err != nil {
				fail(app, fmt.Errorf("MCP server execution failed: %w", err))
			}
		case "sse":
			app.Logger.Info("Starting tinkit MCP Server (SSE)", "port", port)

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, port); err != nil && err != http.ErrServerClosed {
				fail(app, fmt.Errorf("MCP server execution failed: %w", err))
			}
			app.Logger.Info("MCP Server stopped gracefully", "signal", ctx.Signal())
		default:
			fail(app, fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport))
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}

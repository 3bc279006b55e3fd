package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the engine to AI agents as MCP tools: compile_regex, simulate, convert,
minimize and graph, plus the automata://catalog resource when --dir is set.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options(cmd)
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger, err := cli.NewLogger(opts)
		if err != nil {
			return err
		}
		eng, err := cli.NewEngine(opts, logger)
		if err != nil {
			return err
		}

		var source ports.DefinitionSource
		if opts.Dir != "" {
			loader, err := loam.Open(opts.Dir)
			if err != nil {
				return err
			}
			source = loader
		}
		srv := mcp.NewServer(eng, source, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			logger.Info("Starting automata MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport %q (stdio, sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}

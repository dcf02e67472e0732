package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the window tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the window
enumeration and control commands as tools, so agents can drive them without
shell overhead.

The close operation is deliberately not exposed: it requires interactive
confirmation and autonomous callers must not close windows.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  cursorctl serve
  cursorctl serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	srv := newMCPServer()

	mcpCfg := MCPConfig{Transport: transport, Port: port}
	if err := srv.serve(mcpCfg); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

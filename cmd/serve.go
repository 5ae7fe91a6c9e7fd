package cmd

import (
	"fmt"

	"github.com/mj1618/sysprefs-cli/internal/server"
	"github.com/mj1618/sysprefs-cli/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing sysprefs tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes sysprefs commands as
tools. Tool calls are handled one at a time and always read the target afresh.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  sysprefs serve
  sysprefs serve --transport streamable-http --port 8080
  sysprefs --backend simulator serve`,
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

	s, err := newSession()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	srv := server.New(s.app, s.provider.Screenshotter, version.Version, log)
	return srv.Serve(server.Config{Transport: transport, Port: port})
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feelio-app/feelio/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Feelio MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the journal's
entries, statistics, and export functionality as MCP tools via STDIO.

The --dbpath flag is optional. If not provided, a system-specific default
location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\feelio\feelio.db
- macOS: ~/Library/Application Support/feelio/feelio.db
- Linux: ~/.local/share/feelio/feelio.db

Example:
  feelio mcp
  feelio mcp --dbpath feelio.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewFeelioMCPServer(dbPath, appLog)
		if err != nil {
			return err
		}
		defer srv.Close()

		srv.RegisterAllTools()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Feelio MCP server started. DB: %s\n", srv.DbPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, add_entry, get_entry, update_entry, delete_entry, list_entries, search_entries, journal_stats, export_journal")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}

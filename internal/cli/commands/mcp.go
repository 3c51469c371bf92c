package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server on stdin and stdout.

The server offers the bitting_analyze, bitting_match, keyway_list and
keyway_show tools, plus session tools backed by the same workbench as
"keybit session". Logs go to stderr so stdout stays reserved for the
protocol.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	server := mcp.NewServer(Version, e.table,
		mcp.WithStore(e.store),
		mcp.WithDefaults(e.cfg.Defaults),
		mcp.WithSessionOptions(e.sessionOptions(nil)...),
		mcp.WithLogger(e.log.With("component", "mcp")),
	)

	if err := server.ServeStdio(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

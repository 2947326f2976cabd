package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/var1d/folio/internal/cli"
	"github.com/var1d/folio/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  `Exposes the theme and contact sessions as Model Context Protocol tools over stdio (default) or SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, debug, err := setup(cmd)
		if err != nil {
			return err
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		stack, err := cli.BuildStack(sc, cfg, logger, cli.StackOptions{Debug: debug})
		if err != nil {
			return err
		}
		defer stack.Close(context.Background())

		server := mcp.NewServer(stack.App.Theme, stack.App.Sessions, mcp.WithLogger(logger))

		if sse, _ := cmd.Flags().GetBool("sse"); sse {
			port, _ := cmd.Flags().GetInt("port")
			return server.ServeSSE(sc, port)
		}
		return cli.HandleExecutionError(server.ServeStdio())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().IntP("port", "p", 8081, "Port for SSE mode")
}

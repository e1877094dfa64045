package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/docuscan/docuscan/internal/mcp"
	"github.com/docuscan/docuscan/internal/observability"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for docuscan",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := observability.NewLogger(observability.LogConfig{
				Level:  "warn",
				Format: "json",
			})

			server, err := mcp.NewServer(log)
			if err != nil {
				return err
			}

			return server.Run(context.Background())
		},
	}

	return cmd
}

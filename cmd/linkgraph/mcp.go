package main

import (
	"github.com/spf13/cobra"

	"github.com/dusk-indust/linkgraph/internal/mcptools"
)

func (c *cli) serveMCPCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve the linkgraph tools over MCP",
		Long: `Serve parse_phrase, expand_connector, decode_disjunct and graph_stats
as MCP tools. Uses stdio unless --addr is given, in which case it listens
for streamable HTTP.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			policy, dicts, err := c.newPolicy()
			if err != nil {
				return err
			}
			defer dicts.Close()

			store, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := mcptools.NewLinkGraphService(policy, store, c.emitOptions()...)
			if addr == "" {
				logger.Debug("serving MCP on stdio")
				return mcptools.RunMCPServerStdio(ctx, svc)
			}
			logger.Info("serving MCP", "addr", addr)
			return mcptools.RunMCPServer(ctx, svc, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address for streamable HTTP (default: stdio)")
	return cmd
}

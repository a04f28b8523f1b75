package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpTransport "github.com/kailas-cloud/labdex/internal/transport/mcp"
)

func newMCPCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve labdex tools to an MCP client over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			a, err := buildApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			logger.Info("Starting MCP server on stdio")
			srv := mcpTransport.NewServer(a.search, a.retrieval, a.insight, a.analytics, cfg.Search.DefaultPageSize, logger)
			if err := srv.Serve(); err != nil {
				logger.Error("MCP server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

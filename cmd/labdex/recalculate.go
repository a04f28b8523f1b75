package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecalculateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate",
		Short: "Compute an analytics snapshot for every project once",
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

			summary, err := a.analytics.RecalculateAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "calculated %d, failed %d, skipped %d\n",
				summary.Calculated, summary.Failed, summary.Skipped)
			if summary.Failed > 0 {
				return fmt.Errorf("%d projects failed", summary.Failed)
			}
			return nil
		},
	}
}

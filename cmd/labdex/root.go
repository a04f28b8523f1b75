package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/config"
	logpkg "github.com/kailas-cloud/labdex/internal/logger"
	"github.com/kailas-cloud/labdex/internal/version"
)

type globalFlags struct {
	env        string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "labdex",
		Short:         "Research project search, answers and analytics",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "environment name (selects config/<env>.yaml)")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "explicit config file path (overrides --env lookup)")

	root.AddCommand(
		newServeCmd(flags),
		newMCPCmd(flags),
		newRecalculateCmd(flags),
		newSeedCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// setup loads configuration and builds the logger for a command.
func (f *globalFlags) setup() (config.Config, *zap.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load(f.env)
	}
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(f.env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

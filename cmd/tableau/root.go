package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/pkg/config"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/table"
	"github.com/spf13/cobra"
)

// newRootCmd assembles the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tableau",
		Short: "Tableau is a drag-and-drop engine for card layouts",
		Long: `Tableau moves stacks of cards between deck, tableau and receiver slots,
enforcing each slot's drop rules and keeping every slot laid out.

Tables can be driven over HTTP, through an MCP server, or inspected from the CLI.`,
		SilenceUsage: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "tableau.yaml", "Layout configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a configuration key, e.g. --set camera.scale=80")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newServeCmd(),
		newMCPCmd(),
		newShowCmd(),
		newMoveCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies every --set override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	overrides, _ := cmd.Flags().GetStringArray("set")
	cfg, err := config.Load(path, overrides...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger for --log-level.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// tableFactory builds tables from cfg, attaching the hooks returned by hooks.
func tableFactory(cfg *config.Config, logger *slog.Logger, hooks func(id string) domain.LifecycleHooks) table.Factory {
	return func(id string) (*tableau.Table, error) {
		opts := []tableau.Option{
			tableau.WithConfig(cfg),
			tableau.WithLogger(logger),
		}
		if hooks != nil {
			opts = append(opts, tableau.WithLifecycleHooks(hooks(id)))
		}
		return tableau.New(id, opts...)
	}
}

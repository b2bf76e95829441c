package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/internal/presentation/tui"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the configured table",
		Long: `Show builds the table described by the configuration, deals the deck and
prints every slot with its cards. Output is styled on a terminal and plain
Markdown when piped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := buildTable(cmd)
			if err != nil {
				return err
			}
			return printSnapshot(cmd, table.Snapshot())
		},
	}
	cmd.Flags().Bool("json", false, "Print the snapshot as JSON")
	return cmd
}

func buildTable(cmd *cobra.Command) (*tableau.Table, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	return tableFactory(cfg, logger, nil)("cli")
}

func printSnapshot(cmd *cobra.Command, snap domain.Snapshot) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	return writeSnapshot(cmd.OutOrStdout(), snap, asJSON)
}

func writeSnapshot(w io.Writer, snap domain.Snapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return nil
	}
	return tui.RenderSnapshot(w, snap)
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move CARD:SLOT...",
		Short: "Drag cards onto slots and render the result",
		Long: `Move replays one drag per argument on a freshly dealt table. Each argument
names the grabbed card and the slot it is released over; the card carries
every card stacked above it. Rejected drops revert and are reported.

Examples:
  tableau move Card52:tableau-1
  tableau move Card52:tableau-1 Card51:receiver-1 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := buildTable(cmd)
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			for _, arg := range args {
				cardID, slotID, ok := strings.Cut(arg, ":")
				if !ok || cardID == "" || slotID == "" {
					return fmt.Errorf("invalid move %q: expected CARD:SLOT", arg)
				}
				result, err := table.Move(cmd.Context(), cardID, slotID)
				if err != nil {
					return fmt.Errorf("move %s: %w", arg, err)
				}
				if result.Committed() {
					fmt.Fprintf(out, "%s: moved %s\n", arg, strings.Join(result.Cards, ", "))
				} else {
					fmt.Fprintf(out, "%s: reverted (%s)\n", arg, result.Reason)
				}
			}
			return printSnapshot(cmd, table.Snapshot())
		},
	}
	cmd.Flags().Bool("json", false, "Print the snapshot as JSON")
	return cmd
}

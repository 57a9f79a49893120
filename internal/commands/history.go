package commands

import (
	"github.com/spf13/cobra"

	"github.com/qcforge/qcmend/internal/output"
	"github.com/qcforge/qcmend/internal/store"
)

// NewHistoryCmd creates the history command: recent journal rows, newest
// first. It lists; it does not aggregate.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent check/correct cycles from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			last, _ := cmd.Flags().GetInt("last")

			var cycles []store.Cycle
			if err := withDB(func(db *DB) error {
				var err error
				cycles, err = store.ListCycles(db, last)
				return err
			}); err != nil {
				return err
			}

			type resp struct {
				Cycles []store.Cycle `json:"cycles"`
				Count  int           `json:"count"`
			}
			return output.PrintSuccess(resp{Cycles: cycles, Count: len(cycles)})
		},
	}

	cmd.Flags().Int("last", 20, "Number of cycles to list")
	return cmd
}

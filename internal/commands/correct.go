package commands

import (
	"github.com/spf13/cobra"

	"github.com/qcforge/qcmend/internal/models"
	"github.com/qcforge/qcmend/internal/output"
)

// NewCorrectCmd creates the correct command: check, then apply at most one
// remediation and persist the edited deck.
func NewCorrectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Detect errors and correct the input deck for the next attempt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handlerName, _ := cmd.Flags().GetString("handler")
			noJournal, _ := cmd.Flags().GetBool("no-journal")

			h, inputFile, outputFile, err := buildHandler(cmd, handlerName)
			if err != nil {
				return cmdErr(err)
			}

			hasErrors, err := h.Check()
			if err != nil {
				return cmdErr(err)
			}

			correction := &models.Correction{Errors: []models.ErrorTag{}}
			if hasErrors {
				correction, err = h.Correct()
				if err != nil {
					return cmdErr(err)
				}
			}

			var cycleID int64
			if !noJournal {
				cycleID, err = journalCycle(handlerName, inputFile, outputFile, hasErrors, correction)
				if err != nil {
					return err
				}
			}

			type resp struct {
				HasErrors  bool               `json:"has_errors"`
				Correction *models.Correction `json:"correction"`
				CycleID    int64              `json:"cycle_id,omitempty"`
			}
			return output.PrintSuccess(resp{HasErrors: hasErrors, Correction: correction, CycleID: cycleID})
		},
	}

	cmd.Flags().String("handler", handlerGeneral, "Handler to run (general|scf)")
	cmd.Flags().Bool("no-journal", false, "Skip recording the cycle in the journal database")
	return cmd
}

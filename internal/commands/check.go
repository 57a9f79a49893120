package commands

import (
	"github.com/spf13/cobra"

	"github.com/qcforge/qcmend/internal/models"
	"github.com/qcforge/qcmend/internal/output"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse the run output and report detected error tags",
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
			tags := h.Errors()
			if tags == nil {
				tags = []models.ErrorTag{}
			}

			var cycleID int64
			if !noJournal {
				cycleID, err = journalCycle(handlerName, inputFile, outputFile, hasErrors,
					&models.Correction{Errors: tags})
				if err != nil {
					return err
				}
			}

			type resp struct {
				HasErrors bool              `json:"has_errors"`
				Errors    []models.ErrorTag `json:"errors"`
				CycleID   int64             `json:"cycle_id,omitempty"`
			}
			return output.PrintSuccess(resp{HasErrors: hasErrors, Errors: tags, CycleID: cycleID})
		},
	}

	cmd.Flags().String("handler", handlerGeneral, "Handler to run (general|scf)")
	cmd.Flags().Bool("no-journal", false, "Skip recording the cycle in the journal database")
	return cmd
}

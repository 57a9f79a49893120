package commands

import (
	"github.com/spf13/cobra"

	"github.com/qcforge/qcmend/internal/output"
	"github.com/qcforge/qcmend/internal/qcio"
)

// NewDeckCmd creates the deck command group.
func NewDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Inspect the QChem input deck",
	}
	cmd.AddCommand(newDeckShowCmd())
	return cmd
}

func newDeckShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Parse the input deck and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile, _, _ := resolveArtifacts(cmd)

			deck, err := qcio.LoadDeck(inputFile)
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Path string     `json:"path"`
				Deck *qcio.Deck `json:"deck"`
			}
			return output.PrintSuccess(resp{Path: inputFile, Deck: deck})
		},
	}
}

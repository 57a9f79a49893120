package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qcforge/qcmend/internal/app"
	"github.com/qcforge/qcmend/internal/output"
)

// Execute runs the CLI application.
func Execute(version string) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	root := &cobra.Command{
		Use:           "qcmend",
		Short:         "Check QChem run output for known errors and correct the input deck",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintSuccess(resp{Version: version})
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.EnsureConfigDir(); err != nil {
				return err
			}

			// Wire --db-path into app-level resolver.
			if dbPath, err := cmd.Flags().GetString("db-path"); err == nil && dbPath != "" {
				app.SetDBPathOverride(dbPath)
			}

			return nil
		},
	}

	root.PersistentFlags().String("db-path", "", "Override journal database path")
	root.PersistentFlags().StringP("input", "i", "", "QChem input deck path (default from config: mol.qcin)")
	root.PersistentFlags().StringP("output", "o", "", "Parsed output summary path (default from config: mol.qcout.json)")
	root.Flags().BoolP("version", "v", false, "version for qcmend")

	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewCorrectCmd())
	root.AddCommand(NewDeckCmd())
	root.AddCommand(NewHistoryCmd())
	root.AddCommand(NewDBCmd())
	root.AddCommand(newSchemaCmd(root))

	err := root.Execute()
	if err != nil {
		var pe printedError
		if !errors.As(err, &pe) {
			slog.Error("command failed", "error", err.Error())
		}
	}
	return err
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qcforge/qcmend/internal/app"
	"github.com/qcforge/qcmend/internal/handlers"
	"github.com/qcforge/qcmend/internal/models"
	"github.com/qcforge/qcmend/internal/store"
)

// Handler names accepted by --handler.
const (
	handlerGeneral = "general"
	handlerSCF     = "scf"
)

// resolveArtifacts returns the input deck and output summary paths,
// preferring flags over config.yaml over built-in defaults.
func resolveArtifacts(cmd *cobra.Command) (inputFile, outputFile string, cfg app.HandlerSettings) {
	cfg = app.EffectiveHandlerSettings()
	inputFile, outputFile = cfg.InputFile, cfg.OutputFile
	if v, err := cmd.Flags().GetString("input"); err == nil && v != "" {
		inputFile = v
	}
	if v, err := cmd.Flags().GetString("output"); err == nil && v != "" {
		outputFile = v
	}
	return inputFile, outputFile, cfg
}

// buildHandler constructs the named handler over the resolved artifacts.
func buildHandler(cmd *cobra.Command, name string) (handlers.Handler, string, string, error) {
	inputFile, outputFile, cfg := resolveArtifacts(cmd)

	switch name {
	case handlerGeneral, "":
		lim := handlers.Limits{SCFMaxCycles: cfg.SCFMaxCycles, GeomMaxCycles: cfg.GeomMaxCycles}
		h, err := handlers.NewQChemHandler(inputFile, outputFile, lim, nil)
		return h, inputFile, outputFile, err
	case handlerSCF:
		h, err := handlers.NewSCFHandler(inputFile, outputFile, cfg.SCFMaxCycles, cfg.RCAGDMThresh, nil)
		return h, inputFile, outputFile, err
	default:
		return nil, "", "", fmt.Errorf("unknown handler %q (supported: %s, %s)", name, handlerGeneral, handlerSCF)
	}
}

// journalCycle appends the cycle to the audit journal.
func journalCycle(handlerName, inputFile, outputFile string, hasErrors bool, c *models.Correction) (int64, error) {
	var id int64
	err := withDB(func(db *DB) error {
		var recErr error
		id, recErr = store.RecordCycle(db, handlerName, inputFile, outputFile, hasErrors, c)
		return recErr
	})
	return id, err
}

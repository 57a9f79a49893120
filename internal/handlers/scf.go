package handlers

import (
	"fmt"
	"log/slog"

	"github.com/qcforge/qcmend/internal/models"
	"github.com/qcforge/qcmend/internal/qcio"
)

// SCFHandler is the dedicated handler for SCF non-convergence. The intended
// refinement picks between RCA-DIIS and DIIS-GDM based on the last deltaE
// against RCAGDMThresh; that selection logic is not implemented, so Correct
// reports the captured errors without acting on them.
type SCFHandler struct {
	inputFile  string
	outputFile string
	scfMax     int
	thresh     float64
	parser     qcio.OutputParser

	deck *qcio.Deck
	out  *qcio.Output
	errs []models.ErrorTag
}

// NewSCFHandler loads the input deck and prepares an SCF handler. Zero
// values for scfMaxCycles and rcaGDMThresh select the defaults.
func NewSCFHandler(inputFile, outputFile string, scfMaxCycles int, rcaGDMThresh float64, parser qcio.OutputParser) (*SCFHandler, error) {
	deck, err := qcio.LoadDeck(inputFile)
	if err != nil {
		return nil, fmt.Errorf("load input deck: %w", err)
	}
	if parser == nil {
		parser = qcio.JSONOutputParser{}
	}
	if scfMaxCycles <= 0 {
		scfMaxCycles = DefaultSCFMaxCycles
	}
	if rcaGDMThresh <= 0 {
		rcaGDMThresh = DefaultRCAGDMThresh
	}
	return &SCFHandler{
		inputFile:  inputFile,
		outputFile: outputFile,
		scfMax:     scfMaxCycles,
		thresh:     rcaGDMThresh,
		parser:     parser,
		deck:       deck,
	}, nil
}

// Check parses the output artifact and captures its error tags.
func (h *SCFHandler) Check() (bool, error) {
	out, err := h.parser.Parse(h.outputFile)
	if err != nil {
		return false, err
	}
	h.out = out
	h.errs = out.Errors
	return len(h.errs) > 0, nil
}

// Correct reports the captured errors with no actions. The deck and the
// file are left untouched.
func (h *SCFHandler) Correct() (*models.Correction, error) {
	if len(h.errs) == 0 {
		return nil, models.ErrNoErrorsCaptured
	}
	slog.Warn("scf handler cannot correct yet", "reason", models.ErrNotImplemented, "errors", h.errs)
	return &models.Correction{Errors: h.errs}, nil
}

// Errors returns the tag set captured by the last Check.
func (h *SCFHandler) Errors() []models.ErrorTag { return h.errs }

// Monitor reports false: this handler runs after the job completes.
func (h *SCFHandler) Monitor() bool { return false }

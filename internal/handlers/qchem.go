package handlers

import (
	"fmt"
	"log/slog"

	"github.com/qcforge/qcmend/internal/models"
	"github.com/qcforge/qcmend/internal/qcio"
)

// QChemHandler handles the common errors of a QChem run: SCF
// non-convergence, exhausted optimization cycles, basis problems, failed
// coordinate transforms, and the transient/unrecoverable tail of the tag
// vocabulary. One instance serves one check/correct cycle.
type QChemHandler struct {
	inputFile  string
	outputFile string
	limits     Limits
	parser     qcio.OutputParser

	deck *qcio.Deck
	out  *qcio.Output
	errs []models.ErrorTag
}

// NewQChemHandler loads the input deck at inputFile and prepares a handler
// for the run whose output lands at outputFile. A nil parser selects the
// JSON summary parser.
func NewQChemHandler(inputFile, outputFile string, lim Limits, parser qcio.OutputParser) (*QChemHandler, error) {
	deck, err := qcio.LoadDeck(inputFile)
	if err != nil {
		return nil, fmt.Errorf("load input deck: %w", err)
	}
	if parser == nil {
		parser = qcio.JSONOutputParser{}
	}
	if lim.SCFMaxCycles <= 0 {
		lim.SCFMaxCycles = DefaultSCFMaxCycles
	}
	if lim.GeomMaxCycles <= 0 {
		lim.GeomMaxCycles = DefaultGeomMaxCycles
	}
	return &QChemHandler{
		inputFile:  inputFile,
		outputFile: outputFile,
		limits:     lim,
		parser:     parser,
		deck:       deck,
	}, nil
}

// Check parses the output artifact and captures its error tags.
// Parse failures propagate to the caller untouched.
func (h *QChemHandler) Check() (bool, error) {
	out, err := h.parser.Parse(h.outputFile)
	if err != nil {
		return false, err
	}
	h.out = out
	h.errs = out.Errors
	return len(h.errs) > 0, nil
}

// Correct runs the rule table against the captured tags. When the table
// produced deck edits, the deck is rewritten in place before returning, so
// the on-disk file always matches the returned action list.
func (h *QChemHandler) Correct() (*models.Correction, error) {
	if len(h.errs) == 0 {
		return nil, models.ErrNoErrorsCaptured
	}

	c, err := correctDeck(h.deck, h.out, h.errs, h.limits)
	if err != nil {
		return nil, err
	}
	if len(c.Actions) > 0 {
		if err := h.deck.WriteFile(h.inputFile); err != nil {
			return nil, fmt.Errorf("persist corrected deck: %w", err)
		}
		slog.Info("corrected input deck", "input", h.inputFile, "actions", c.Actions)
	}
	return &c, nil
}

// Errors returns the tag set captured by the last Check.
func (h *QChemHandler) Errors() []models.ErrorTag { return h.errs }

// Monitor reports false: this handler runs after the job completes.
func (h *QChemHandler) Monitor() bool { return false }

// Deck exposes the in-memory deck, mainly for tests and the CLI.
func (h *QChemHandler) Deck() *qcio.Deck { return h.deck }

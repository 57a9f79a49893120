// Package handlers implements the check/correct error handlers the retry
// orchestrator drives after each QChem run. A handler inspects the parsed
// output for known failure tags and, when it knows a remedy, edits the
// input deck for the next attempt.
package handlers

import "github.com/qcforge/qcmend/internal/models"

// Default iteration caps applied when raising deck limits.
const (
	DefaultSCFMaxCycles  = 200
	DefaultGeomMaxCycles = 200

	// DefaultRCAGDMThresh is the deltaE threshold reserved for the
	// SCF handler's RCA/GDM algorithm selection.
	DefaultRCAGDMThresh = 1.0e-3
)

// Handler is the two-phase contract the orchestrator expects: Check after
// a run, Correct when Check found errors, then rerun and repeat.
type Handler interface {
	// Check parses the run's output and reports whether it contains
	// error tags. The parsed snapshot is retained for Correct.
	Check() (bool, error)

	// Correct applies at most one remediation for the tags captured by
	// the preceding Check and persists any deck edits before returning.
	Correct() (*models.Correction, error)

	// Errors returns the tag set captured by the last Check.
	Errors() []models.ErrorTag

	// Monitor reports whether the handler runs during execution and may
	// interrupt the job. Both handlers here are post-mortem.
	Monitor() bool
}

// Limits bounds the iteration caps the corrector may raise.
type Limits struct {
	SCFMaxCycles  int
	GeomMaxCycles int
}

// DefaultLimits returns the standard caps.
func DefaultLimits() Limits {
	return Limits{SCFMaxCycles: DefaultSCFMaxCycles, GeomMaxCycles: DefaultGeomMaxCycles}
}

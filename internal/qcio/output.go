package qcio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/qcforge/qcmend/internal/models"
)

// Output is an immutable snapshot of one QChem run, as reported by the
// external output parser: the detected error tags, the optimization
// trajectory, and the molecule at the last geometry step.
type Output struct {
	Errors                   []models.ErrorTag `json:"errors"`
	EnergyTrajectory         []float64         `json:"energy_trajectory"`
	MoleculeFromLastGeometry *Molecule         `json:"molecule_from_last_geometry,omitempty"`
}

// OutputParser yields the structured result for one run's output artifact.
type OutputParser interface {
	Parse(path string) (*Output, error)
}

// JSONOutputParser reads the JSON summary the external parsing tool writes
// next to the raw QChem log. It is the production parser; tests substitute
// their own OutputParser where convenient.
type JSONOutputParser struct{}

// Parse reads and decodes the summary at path. Failures are returned
// as-is: a missing or malformed artifact is the caller's problem.
func (JSONOutputParser) Parse(path string) (*Output, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read output %s: %w", path, err)
	}
	var out Output
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode output %s: %w", path, err)
	}
	return &out, nil
}

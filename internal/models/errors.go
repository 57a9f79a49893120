package models

import "errors"

// ErrorTag names a failure mode detected in a QChem output file. The
// vocabulary is fixed by the output parser; tags outside it are carried
// through unchanged and classified as unrecognized.
type ErrorTag string

const (
	TagSCFFailedToConverge     ErrorTag = "SCF_failed_to_converge"
	TagOutOfOptCycles          ErrorTag = "out_of_opt_cycles"
	TagUnableToDetermineLambda ErrorTag = "unable_to_determine_lambda"
	TagLinearDependentBasis    ErrorTag = "linear_dependent_basis"
	TagFailedToTransformCoords ErrorTag = "failed_to_transform_coords"
	TagInputFileError          ErrorTag = "input_file_error"
	TagFailedToReadInput       ErrorTag = "failed_to_read_input"
	TagIOError                 ErrorTag = "IO_error"
	TagCannotReadCharges       ErrorTag = "cannot_read_charges"
	TagUnknownError            ErrorTag = "unknown_error"
)

// Recovery classifies what the corrector can do about a tag.
type Recovery int

const (
	// RecoveryEdit means the input deck can be edited and the job rerun.
	RecoveryEdit Recovery = iota
	// RecoveryRerun means the failure is transient; rerun the job unchanged.
	RecoveryRerun
	// RecoveryManual means the failure needs a human; report only.
	RecoveryManual
	// RecoveryUnrecognized means the tag is outside the known vocabulary.
	RecoveryUnrecognized
)

// Classify maps a tag to its recovery category.
func (t ErrorTag) Classify() Recovery {
	switch t {
	case TagSCFFailedToConverge, TagOutOfOptCycles, TagUnableToDetermineLambda,
		TagLinearDependentBasis, TagFailedToTransformCoords:
		return RecoveryEdit
	case TagFailedToReadInput, TagIOError:
		return RecoveryRerun
	case TagInputFileError, TagCannotReadCharges, TagUnknownError:
		return RecoveryManual
	default:
		return RecoveryUnrecognized
	}
}

// Known reports whether the tag belongs to the parser's vocabulary.
func (t ErrorTag) Known() bool {
	return t.Classify() != RecoveryUnrecognized
}

// Sentinel errors shared by the handler packages.
var (
	// ErrNoErrorsCaptured is returned when Correct is called before a
	// failing Check in the same cycle.
	ErrNoErrorsCaptured = errors.New("no errors captured: run check first")

	// ErrNotImplemented is returned by handlers whose correction path
	// is intentionally not built yet.
	ErrNotImplemented = errors.New("correction not implemented")

	// ErrGeometryMismatch indicates the geometry offered by the output
	// parser disagrees with the deck on charge or spin multiplicity.
	ErrGeometryMismatch = errors.New("last geometry disagrees with deck charge/spin")
)

package handlers

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/qcforge/qcmend/internal/models"
	"github.com/qcforge/qcmend/internal/qcio"
)

// tagPriority fixes which tag is handled when several are present at once.
// Exactly one branch runs per correction cycle; the rest wait for the next
// check/correct round.
var tagPriority = []models.ErrorTag{
	models.TagSCFFailedToConverge,
	models.TagOutOfOptCycles,
	models.TagUnableToDetermineLambda,
	models.TagLinearDependentBasis,
	models.TagFailedToTransformCoords,
	models.TagInputFileError,
	models.TagFailedToReadInput,
	models.TagIOError,
	models.TagCannotReadCharges,
	models.TagUnknownError,
}

// correctDeck is the rule table. It edits only the deck it is given and
// returns the correction record; persisting the deck is the caller's job.
// Escalation is driven entirely by deck state, so repeated calls walk each
// tag's remediation ladder monotonically.
func correctDeck(deck *qcio.Deck, out *qcio.Output, errs []models.ErrorTag, lim Limits) (models.Correction, error) {
	if len(errs) == 0 {
		return models.Correction{}, models.ErrNoErrorsCaptured
	}
	c := models.Correction{Errors: errs}

	tag, ok := firstRecognized(errs)
	if !ok {
		slog.Warn("unrecognized error tags, nothing to do", "errors", errs)
		return c, nil
	}

	switch tag {
	case models.TagSCFFailedToConverge:
		// Ladder: raise the SCF cycle cap, then swap DIIS for RCA-DIIS,
		// then hand off to the dedicated SCF handler.
		if deck.Rem.GetDefault("max_scf_cycles", "") != strconv.Itoa(lim.SCFMaxCycles) {
			deck.Rem.Set("max_scf_cycles", strconv.Itoa(lim.SCFMaxCycles))
			c.Actions = append(c.Actions, models.Action{Field: "max_scf_cycles", Value: lim.SCFMaxCycles})
		} else if strings.EqualFold(deck.Rem.GetDefault("scf_algorithm", "diis"), "diis") {
			deck.Rem.Set("scf_algorithm", "rca_diis")
			c.Actions = append(c.Actions, models.Action{Field: "scf_algorithm", Value: "rca_diis"})
		} else {
			slog.Warn("more advanced changes may impact the SCF result, use the SCF error handler")
		}

	case models.TagOutOfOptCycles:
		if deck.Rem.GetDefault("geom_opt_max_cycles", "") != strconv.Itoa(lim.GeomMaxCycles) {
			deck.Rem.Set("geom_opt_max_cycles", strconv.Itoa(lim.GeomMaxCycles))
			c.Actions = append(c.Actions, models.Action{Field: "geom_opt_max_cycles", Value: lim.GeomMaxCycles})
		} else {
			slog.Warn("optimization already at the maximum cycle cap, no further remedy known")
		}

	case models.TagUnableToDetermineLambda:
		if len(out.EnergyTrajectory) > 1 {
			mol := out.MoleculeFromLastGeometry
			if mol == nil {
				return c, fmt.Errorf("output has a %d-step trajectory but no last geometry", len(out.EnergyTrajectory))
			}
			if mol.SpinMultiplicity != deck.Molecule.SpinMultiplicity || mol.Charge != deck.Molecule.Charge {
				return c, fmt.Errorf("%w: deck %d/%d, geometry %d/%d", models.ErrGeometryMismatch,
					deck.Molecule.Charge, deck.Molecule.SpinMultiplicity, mol.Charge, mol.SpinMultiplicity)
			}
			deck.Molecule = *mol
			c.Actions = append(c.Actions, models.Action{Field: "molecule", Value: "molecule_from_last_geometry"})
		} else if !strings.EqualFold(deck.Rem.GetDefault("scf_algorithm", "diis"), "rca_diis") {
			deck.Rem.Set("scf_algorithm", "rca_diis")
			c.Actions = append(c.Actions, models.Action{Field: "scf_algorithm", Value: "rca_diis"})
		} else {
			slog.Warn("lambda still undetermined, consider a different initial guess or basis")
		}

	case models.TagLinearDependentBasis:
		if v, _ := deck.Rem.Get("scf_algorithm"); !strings.EqualFold(v, "rca_diis") {
			deck.Rem.Set("scf_algorithm", "rca_diis")
			c.Actions = append(c.Actions, models.Action{Field: "scf_algorithm", Value: "rca_diis"})
		} else {
			slog.Warn("basis remains linear dependent under rca_diis, consider a better basis")
		}

	case models.TagFailedToTransformCoords:
		if !remTrue(deck.Rem, "sym_ignore") || remTrue(deck.Rem, "symmetry") {
			deck.Rem.Set("sym_ignore", "true")
			deck.Rem.Set("symmetry", "false")
			c.Actions = append(c.Actions,
				models.Action{Field: "sym_ignore", Value: true},
				models.Action{Field: "symmetry", Value: false})
		} else {
			slog.Warn("coordinate transform still failing with symmetry off, consider raising the threshold")
		}

	case models.TagInputFileError:
		slog.Warn("input file is malformed, examine the error message by hand")

	case models.TagFailedToReadInput, models.TagIOError:
		// Almost certainly transient. Rerun the job unchanged.
		c.RerunAsIs = true

	case models.TagCannotReadCharges:
		slog.Warn("charges could not be read, the job most likely went wrong at startup")

	case models.TagUnknownError:
		slog.Warn("unknown error, examine the output by hand")
	}

	return c, nil
}

// firstRecognized returns the highest-priority known tag present in errs.
func firstRecognized(errs []models.ErrorTag) (models.ErrorTag, bool) {
	present := make(map[models.ErrorTag]bool, len(errs))
	for _, e := range errs {
		present[e] = true
	}
	for _, t := range tagPriority {
		if present[t] {
			return t, true
		}
	}
	return "", false
}

// remTrue reports whether a rem flag is set to a true value. Unset counts
// as false, matching QChem's defaults for the symmetry flags.
func remTrue(rem *qcio.Rem, key string) bool {
	v, ok := rem.Get(key)
	return ok && strings.EqualFold(v, "true")
}

package models

import (
	"encoding/json"
	"fmt"
)

// RerunSignal is the literal actions value reported when a transient
// failure should be retried without touching the input deck. The string
// is part of the contract with the retry orchestrator.
const RerunSignal = "rerun job as-is"

// Action records one input-deck field edit: key and the value written.
type Action struct {
	Field string
	Value any
}

// MarshalJSON emits the action as a single-pair object, e.g.
// {"max_scf_cycles":200}, matching the orchestrator contract.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{a.Field: a.Value})
}

// UnmarshalJSON accepts the single-pair object form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("action must be a single-pair object, got %d keys", len(m))
	}
	for k, v := range m {
		a.Field = k
		a.Value = v
	}
	return nil
}

// Correction is the structured result of one correct() call: the error
// tags as captured by the preceding check, plus what was done about them.
// Exactly one of the three shapes holds:
//   - Actions non-empty: the deck was edited and persisted.
//   - RerunAsIs true: transient failure, deck untouched, rerun unchanged.
//   - neither: report-only, deck untouched.
type Correction struct {
	Errors    []ErrorTag
	Actions   []Action
	RerunAsIs bool
}

// correctionJSON is the wire shape: actions is an ordered list, the
// rerun signal string, or null.
type correctionJSON struct {
	Errors  []ErrorTag `json:"errors"`
	Actions any        `json:"actions"`
}

func (c Correction) MarshalJSON() ([]byte, error) {
	out := correctionJSON{Errors: c.Errors}
	switch {
	case c.RerunAsIs:
		out.Actions = RerunSignal
	case len(c.Actions) > 0:
		out.Actions = c.Actions
	}
	return json.Marshal(out)
}

func (c *Correction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Errors  []ErrorTag      `json:"errors"`
		Actions json.RawMessage `json:"actions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Errors = raw.Errors
	c.Actions = nil
	c.RerunAsIs = false

	if len(raw.Actions) == 0 || string(raw.Actions) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Actions, &s); err == nil {
		if s != RerunSignal {
			return fmt.Errorf("unexpected actions signal %q", s)
		}
		c.RerunAsIs = true
		return nil
	}
	return json.Unmarshal(raw.Actions, &c.Actions)
}

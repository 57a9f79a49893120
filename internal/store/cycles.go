package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qcforge/qcmend/internal/models"
)

// Cycle is one journaled check/correct round.
type Cycle struct {
	ID         int64             `json:"id"`
	CreatedAt  string            `json:"created_at"`
	Handler    string            `json:"handler"`
	InputFile  string            `json:"input_file"`
	OutputFile string            `json:"output_file"`
	HasErrors  bool              `json:"has_errors"`
	Errors     []models.ErrorTag `json:"errors"`
	Actions    []models.Action   `json:"actions,omitempty"`
	RerunAsIs  bool              `json:"rerun_as_is"`
}

// RecordCycle appends one cycle row. correction may be nil for a clean
// check (no errors, nothing corrected).
func RecordCycle(db *sql.DB, handler, inputFile, outputFile string, hasErrors bool, correction *models.Correction) (int64, error) {
	if handler == "" {
		return 0, errors.New("handler name is required")
	}

	tags := []models.ErrorTag{}
	var actionsJSON sql.NullString
	rerun := false
	if correction != nil {
		if correction.Errors != nil {
			tags = correction.Errors
		}
		rerun = correction.RerunAsIs
		if len(correction.Actions) > 0 {
			b, err := json.Marshal(correction.Actions)
			if err != nil {
				return 0, fmt.Errorf("marshal actions: %w", err)
			}
			actionsJSON = sql.NullString{String: string(b), Valid: true}
		}
	}
	errsJSON, err := json.Marshal(tags)
	if err != nil {
		return 0, fmt.Errorf("marshal errors: %w", err)
	}

	var id int64
	err = RetryWithBackoff(func() error {
		res, execErr := db.Exec(`
			INSERT INTO cycles (handler, input_file, output_file, has_errors, errors, actions, rerun_as_is)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			handler, inputFile, outputFile, boolToInt(hasErrors), string(errsJSON), actionsJSON, boolToInt(rerun))
		if execErr != nil {
			return execErr
		}
		id, execErr = res.LastInsertId()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("insert cycle: %w", err)
	}
	return id, nil
}

// ListCycles returns the most recent cycles, newest first.
func ListCycles(db *sql.DB, limit int) ([]Cycle, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT id, created_at, handler, input_file, output_file, has_errors, errors, actions, rerun_as_is
		FROM cycles ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	var out []Cycle
	for rows.Next() {
		var (
			c           Cycle
			hasErrors   int
			rerun       int
			errsJSON    string
			actionsJSON sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.Handler, &c.InputFile, &c.OutputFile,
			&hasErrors, &errsJSON, &actionsJSON, &rerun); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		c.HasErrors = hasErrors != 0
		c.RerunAsIs = rerun != 0
		if err := json.Unmarshal([]byte(errsJSON), &c.Errors); err != nil {
			return nil, fmt.Errorf("decode errors for cycle %d: %w", c.ID, err)
		}
		if actionsJSON.Valid {
			if err := json.Unmarshal([]byte(actionsJSON.String), &c.Actions); err != nil {
				return nil, fmt.Errorf("decode actions for cycle %d: %w", c.ID, err)
			}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cycles: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

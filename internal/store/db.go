// Package store persists the correction-cycle journal: one row per
// check/correct cycle, recording what was detected and what was done.
// It records only; no aggregation or cross-run statistics live here.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/qcforge/qcmend/internal/app"
	_ "modernc.org/sqlite"
)

// defaultBusyTimeoutMS is the SQLite busy_timeout in milliseconds.
// Override with QCMEND_BUSY_TIMEOUT_MS for environments with contention.
const defaultBusyTimeoutMS = 5000

// InitDB initializes the database connection with SQLite + WAL mode
// and runs migrations automatically.
func InitDB() (*sql.DB, error) {
	dbPath, err := app.GetDBPath()
	if err != nil {
		return nil, err
	}
	return InitDBWithPath(dbPath)
}

// InitDBWithPath initializes a database at a specific path (useful for testing).
func InitDBWithPath(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if _, err := app.EnsureDBDir(dbPath); err != nil {
			return nil, err
		}
	}

	// modernc.org/sqlite is strict about DSNs. Use a file: URI with
	// mode=rwc so the database is created/written consistently.
	db, err := sql.Open("sqlite", normalizeSQLiteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection is plenty for a CLI tool and sidesteps SQLite
	// write contention within the process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	busyTimeout := defaultBusyTimeoutMS
	if v := os.Getenv("QCMEND_BUSY_TIMEOUT_MS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			busyTimeout = parsed
		}
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", p, err)
		}
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// normalizeSQLiteDSN maps a filesystem path (or ":memory:") to a DSN the
// modernc driver accepts.
func normalizeSQLiteDSN(dbPath string) string {
	if dbPath == ":memory:" || strings.Contains(dbPath, ":memory:") {
		return ":memory:"
	}
	if strings.HasPrefix(dbPath, "file:") {
		return dbPath
	}
	return "file:" + dbPath + "?mode=rwc"
}

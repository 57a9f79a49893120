package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDBPath resolves the journal database path.
// Order of precedence:
// 1) CLI override (e.g. --db-path)
// 2) Environment variable: QCMEND_DB_PATH
// 3) config.yaml: db_path
// 4) Default: ~/.config/qcmend/qcmend.db
// Ensures the parent directory exists.
func GetDBPath() (string, error) {
	if override := getDBPathOverride(); override != "" {
		return EnsureDBDir(override)
	}

	if envPath := os.Getenv("QCMEND_DB_PATH"); envPath != "" {
		return EnsureDBDir(envPath)
	}

	cfg, err := LoadSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DBPath != "" {
		return EnsureDBDir(cfg.DBPath)
	}

	configDir, err := ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return EnsureDBDir(filepath.Join(configDir, "qcmend.db"))
}

// ResolveDBPathDetailed returns the resolved DB path along with the source
// of that decision. For debugging/reporting; normal code uses GetDBPath.
func ResolveDBPathDetailed() (path string, source string, err error) {
	if override := getDBPathOverride(); override != "" {
		resolved, ensureErr := EnsureDBDir(override)
		return resolved, "cli(--db-path)", ensureErr
	}

	if envPath := os.Getenv("QCMEND_DB_PATH"); envPath != "" {
		resolved, ensureErr := EnsureDBDir(envPath)
		return resolved, "env(QCMEND_DB_PATH)", ensureErr
	}

	cfg, err := LoadSettings()
	if err != nil {
		return "", "", fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DBPath != "" {
		resolved, ensureErr := EnsureDBDir(cfg.DBPath)
		return resolved, "config(db_path)", ensureErr
	}

	configDir, err := ConfigDir()
	if err != nil {
		return "", "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	resolved, err := EnsureDBDir(filepath.Join(configDir, "qcmend.db"))
	return resolved, "default(~/.config/qcmend/qcmend.db)", err
}

// EnsureDBDir makes sure the database's parent directory exists.
func EnsureDBDir(dbPath string) (string, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return dbPath, nil
}

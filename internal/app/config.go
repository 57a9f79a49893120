package app

import (
	"os"
	"path/filepath"
)

// ConfigDir returns ~/.config/qcmend/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qcmend"), nil
}

// EnsureConfigDir creates the config directory and default config.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return os.WriteFile(configFile, []byte(defaultConfig), 0600)
	}
	return nil
}

const defaultConfig = `# qcmend configuration
# Run: qcmend --help

# Default input/output artifact names, relative to the job directory.
# input_file: mol.qcin
# output_file: mol.qcout.json

# Iteration caps written into the deck when raising limits.
# scf_max_cycles: 200
# geom_max_cycles: 200

# Optional: override the SQLite journal location.
# Can also be set via QCMEND_DB_PATH or --db-path.
# db_path: ~/.config/qcmend/qcmend.db
`

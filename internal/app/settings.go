package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/qcforge/qcmend/internal/handlers"
)

// Settings represents configuration loaded from config.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	DBPath        string  `yaml:"db_path"`
	InputFile     string  `yaml:"input_file"`
	OutputFile    string  `yaml:"output_file"`
	SCFMaxCycles  int     `yaml:"scf_max_cycles"`
	GeomMaxCycles int     `yaml:"geom_max_cycles"`
	RCAGDMThresh  float64 `yaml:"rca_gdm_thresh"`
}

// HandlerSettings are effective runtime values used when constructing handlers.
type HandlerSettings struct {
	InputFile     string  `json:"input_file"`
	OutputFile    string  `json:"output_file"`
	SCFMaxCycles  int     `json:"scf_max_cycles"`
	GeomMaxCycles int     `json:"geom_max_cycles"`
	RCAGDMThresh  float64 `json:"rca_gdm_thresh"`
}

const (
	defaultInputFile  = "mol.qcin"
	defaultOutputFile = "mol.qcout.json"

	// Hard ceiling on configured iteration caps. QChem itself refuses
	// anything wildly larger, and a typo'd cap should not end up in decks.
	maxCycleCap = 10000
)

// EffectiveHandlerSettings returns validated handler settings with defaults.
// Invalid or missing config values fall back to safe defaults.
func EffectiveHandlerSettings() HandlerSettings {
	cfg := HandlerSettings{
		InputFile:     defaultInputFile,
		OutputFile:    defaultOutputFile,
		SCFMaxCycles:  handlers.DefaultSCFMaxCycles,
		GeomMaxCycles: handlers.DefaultGeomMaxCycles,
		RCAGDMThresh:  handlers.DefaultRCAGDMThresh,
	}

	s, err := LoadSettings()
	if err != nil {
		return cfg
	}

	if s.InputFile != "" {
		cfg.InputFile = s.InputFile
	}
	if s.OutputFile != "" {
		cfg.OutputFile = s.OutputFile
	}
	if s.SCFMaxCycles > 0 {
		cfg.SCFMaxCycles = s.SCFMaxCycles
	}
	if s.GeomMaxCycles > 0 {
		cfg.GeomMaxCycles = s.GeomMaxCycles
	}
	if s.RCAGDMThresh > 0 {
		cfg.RCAGDMThresh = s.RCAGDMThresh
	}

	if cfg.SCFMaxCycles > maxCycleCap {
		cfg.SCFMaxCycles = maxCycleCap
	}
	if cfg.GeomMaxCycles > maxCycleCap {
		cfg.GeomMaxCycles = maxCycleCap
	}
	return cfg
}

// settingsOnce, settings, settingsErr implement the sync.Once lazy-load
// singleton for config. dbPathOverrideMu and dbPathOverride carry the
// process-wide CLI --db-path override.
//
//nolint:gochecknoglobals // sync.Once singleton + RWMutex override are intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error

	dbPathOverrideMu sync.RWMutex
	dbPathOverride   string
)

// SetDBPathOverride sets a process-wide database path override.
// Intended for CLI flag support (e.g. --db-path).
func SetDBPathOverride(path string) {
	dbPathOverrideMu.Lock()
	dbPathOverride = path
	dbPathOverrideMu.Unlock()
}

func getDBPathOverride() string {
	dbPathOverrideMu.RLock()
	v := dbPathOverride
	dbPathOverrideMu.RUnlock()
	return v
}

// LoadSettings loads configuration once using the documented lookup order.
// Lookup order (first found wins):
// 1) ~/.config/qcmend/config.yaml
// 2) /etc/qcmend/config.yaml
// 3) ./config.yaml (lowest priority; allows job-local overrides)
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		settings = Settings{}

		dir, err := ConfigDir()
		if err != nil {
			settingsErr = err
			return
		}
		paths := []string{
			filepath.Join(dir, "config.yaml"),
			filepath.Join(string(os.PathSeparator), "etc", "qcmend", "config.yaml"),
			"config.yaml",
		}
		for _, p := range paths {
			s, err := loadSettingsFile(p)
			if err == nil {
				settings = s
				return
			}
			if !errors.Is(err, os.ErrNotExist) {
				settingsErr = err
				return
			}
		}
	})

	return settings, settingsErr
}

func loadSettingsFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Package config loads the operator's yaml configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file looked up in the home directory.
const FileName = ".timbro.yaml"

// Config holds the operator-level settings. Everything has a usable
// zero-config default; the file only overrides.
type Config struct {
	// Database is the path of the SQLite file.
	Database string `yaml:"database"`

	// DefaultNation is prefilled on new clients when the command line
	// does not supply one.
	DefaultNation string `yaml:"default_nation,omitempty"`

	// DefaultWorkType is prefilled on logged jobs when the command line
	// does not supply one.
	DefaultWorkType string `yaml:"default_work_type,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Database: "timesheet.sqlite"}
}

// Locate returns the default config file path under the user's home
// directory, or "" when the home directory cannot be determined.
func Locate() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the config file at path. A missing file (or empty path)
// yields the defaults; a present but malformed file is an error.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Database == "" {
		cfg.Database = Default().Database
	}
	return cfg, nil
}

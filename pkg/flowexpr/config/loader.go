package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads engine settings from a YAML or JSON file, picking the
// decoder by extension (.yaml, .yml, .json).
//
// The settings flowexpr.FromConfig recognizes:
//
//	max_depth     int     nested interpolation limit
//	history_path  string  SQLite evaluation history location
//	tracing       bool    span recording around evaluations
//	metrics       bool    metrics recording
//
// Unrecognized keys are kept and stay reachable through the typed
// getters, so hosts can carry their own settings in the same file.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("unrecognized config extension %q", filepath.Ext(path))
	}
}

// FromYAML decodes YAML settings.
func FromYAML(data []byte) (Config, error) {
	var settings map[string]any
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Config{}, fmt.Errorf("decode yaml config: %w", err)
	}
	return New(settings), nil
}

// FromJSON decodes JSON settings.
func FromJSON(data []byte) (Config, error) {
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return Config{}, fmt.Errorf("decode json config: %w", err)
	}
	return New(settings), nil
}

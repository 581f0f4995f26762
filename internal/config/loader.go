package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "planner.yaml"

// Load resolves the configuration.
// Search order: customPath -> ~/.config/proximity-planner/planner.yaml ->
// ./configs/planner.yaml -> embedded default.
// It returns the path that was used, or "" for the embedded default.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := LoadFromPath(customPath)
		return cfg, customPath, err
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		return cfg, path, err
	}

	cfg, err := Parse(defaultPlannerYAML)
	if err != nil {
		return DefaultConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// LoadFromPath reads and validates the config file at path.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig, so omitted keys keep their
// default values, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file, or "" if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "proximity-planner", fileName)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTransition loads the transition configuration.
// Search order: customPath -> ~/.chronoshift/configs/transition.yaml -> ./configs/transition.yaml -> embedded default
// Files are laid over the defaults, so a partial file only overrides what it names.
func LoadTransition(customPath string) (TransitionConfig, error) {
	cfg := DefaultTransitionConfig()
	if err := load("transition.yaml", customPath, defaultTransitionYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLevels loads the level list.
// Search order: customPath -> ~/.chronoshift/configs/levels.yaml -> ./configs/levels.yaml -> embedded default
func LoadLevels(customPath string) (LevelsConfig, error) {
	cfg := DefaultLevelsConfig()
	if err := load("levels.yaml", customPath, defaultLevelsYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load decodes the first config file found into out.
// A custom path must exist and parse; the other locations are best-effort.
func load(filename, customPath string, embedded []byte, out any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; out already holds the hardcoded defaults
	//nolint:errcheck // Hardcoded defaults remain if the embed is broken
	yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chronoshift", "configs", filename)
}

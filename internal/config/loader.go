package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCuboid loads the cuboid configuration.
// Search order: customPath -> ~/.cuboid/configs/cuboid.yaml -> ./configs/cuboid.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadCuboid(customPath string) (CuboidConfig, error) {
	cfg := DefaultCuboidConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("cuboid.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "cuboid.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCuboidYAML, &cfg); err != nil {
		return DefaultCuboidConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// skipped so the next source in the search order is used.
func tryLoad(path string) (CuboidConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CuboidConfig{}, false
	}
	cfg := DefaultCuboidConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CuboidConfig{}, false
	}
	if cfg.Validate() != nil {
		return CuboidConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cuboid", "configs", filename)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads soundbuddy configuration.
// Search order: customPath -> ~/.soundbuddy/config.yaml -> ./configs/soundbuddy.yaml -> embedded default.
// Files are layered over the defaults, so a file may set only the keys it changes.
// A customPath that cannot be read or parsed is an error; the other locations are optional.
func Load(customPath string) (Config, error) {
	cfg := embedded()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			layered := cfg
			if err := yaml.Unmarshal(data, &layered); err == nil {
				return layered, layered.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/soundbuddy.yaml"); err == nil {
		layered := cfg
		if err := yaml.Unmarshal(data, &layered); err == nil {
			return layered, layered.Validate()
		}
	}

	return cfg, nil
}

// embedded parses the embedded default YAML.
func embedded() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".soundbuddy", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

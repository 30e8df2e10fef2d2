package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMaztic loads Maztic configuration.
// Search order: customPath -> ~/.arcade/configs/maztic.yaml -> ./configs/maztic.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets.
func LoadMaztic(customPath string) (MazticConfig, error) {
	cfg := DefaultMazticConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("maztic.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "maztic.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMazticYAML, &cfg); err != nil {
		return DefaultMazticConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unparsable or invalid
// files are skipped.
func tryLoad(path string) (MazticConfig, bool) {
	cfg := DefaultMazticConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyMazticPreset modifies the config based on a difficulty preset.
func ApplyMazticPreset(cfg *MazticConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the starting level shape based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Generator.Agents = 2
		cfg.Generator.TargetCycles = 24
	case DifficultyHard:
		cfg.Generator.Agents = 4
		cfg.Generator.TargetCycles = 16
	}
}

// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "fmt"

// MazticConfig contains all configuration for the Maztic game.
type MazticConfig struct {
	Generator  MazticGenerator  `yaml:"generator"`
	Gameplay   MazticGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MazticGenerator defines level generation parameters.
type MazticGenerator struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Agents         int     `yaml:"agents"`
	TargetCycles   int     `yaml:"target_cycles"` // Convergence budget in movement cycles
	Candidates     int     `yaml:"candidates"`
	CarveMin       float64 `yaml:"carve_min"`
	CarveMax       float64 `yaml:"carve_max"`
	ToggleChance   float64 `yaml:"toggle_chance"`
	MinCheckCycles int     `yaml:"min_check_cycles"`
}

// MazticGameplay defines gameplay parameters.
type MazticGameplay struct {
	TicksPerFrame int  `yaml:"ticks_per_frame"` // Simulation ticks per rendered frame
	Lives         int  `yaml:"lives"`           // Timeouts allowed before game over, 0 for unlimited
	LevelPoints   int  `yaml:"level_points"`    // Points for clearing a level
	TimeBonus     int  `yaml:"time_bonus"`      // Points per remaining cycle
	ShowHint      bool `yaml:"show_hint"`       // Show when the generator toggled
}

// Validate reports settings the game cannot run with.
func (c MazticConfig) Validate() error {
	g := c.Generator
	if g.Width < 5 || g.Height < 5 {
		return fmt.Errorf("config: generator size %dx%d too small", g.Width, g.Height)
	}
	if g.Agents < 1 {
		return fmt.Errorf("config: generator agents must be positive, got %d", g.Agents)
	}
	if g.TargetCycles < 1 || g.Candidates < 1 {
		return fmt.Errorf("config: target_cycles and candidates must be positive")
	}
	if c.Gameplay.Lives < 0 {
		return fmt.Errorf("config: lives must not be negative, got %d", c.Gameplay.Lives)
	}
	if c.Gameplay.TicksPerFrame < 1 {
		return fmt.Errorf("config: ticks_per_frame must be positive, got %d", c.Gameplay.TicksPerFrame)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over play.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "levels", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Levels cleared or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	AgentIncrease   int `yaml:"agent_increase"`   // Extra balls at max difficulty
	TargetReduction int `yaml:"target_reduction"` // Cycles removed from the time budget at max difficulty
	SizeIncrease    int `yaml:"size_increase"`    // Extra columns and rows at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset parses a preset name. Empty input means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

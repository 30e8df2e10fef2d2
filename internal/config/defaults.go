package config

import (
	_ "embed"
)

//go:embed defaults/maztic.yaml
var defaultMazticYAML []byte

// DefaultMazticConfig returns the default Maztic configuration.
func DefaultMazticConfig() MazticConfig {
	return MazticConfig{
		Generator: MazticGenerator{
			Width:          17,
			Height:         11,
			Agents:         3,
			TargetCycles:   20,
			Candidates:     60,
			CarveMin:       0.3,
			CarveMax:       0.4,
			ToggleChance:   0.25,
			MinCheckCycles: 5,
		},
		Gameplay: MazticGameplay{
			TicksPerFrame: 1,
			Lives:         3,
			LevelPoints:   100,
			TimeBonus:     5,
			ShowHint:      false,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "levels",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				AgentIncrease:   2,
				TargetReduction: 6,
				SizeIncrease:    4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "maztic":
		return defaultMazticYAML
	default:
		return nil
	}
}

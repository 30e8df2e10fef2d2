package config

import "math"

// DifficultyManager calculates level parameters from progress through the game.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on levels
// cleared or score.
func (d *DifficultyManager) Level(cleared int, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "levels":
		progress = float64(cleared) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Agents returns the ball count for the next level, capped at maxAgents.
func (d *DifficultyManager) Agents(base, maxAgents, cleared, score int) int {
	level := d.Level(cleared, score)
	n := base + int(level*float64(d.cfg.Scaling.AgentIncrease))
	if n > maxAgents {
		n = maxAgents
	}
	if n < 1 {
		n = 1
	}
	return n
}

// TargetCycles returns the time budget for the next level.
func (d *DifficultyManager) TargetCycles(base, cleared, score int) int {
	level := d.Level(cleared, score)
	// Budget shrinks as difficulty increases
	result := base - int(level*float64(d.cfg.Scaling.TargetReduction))
	if result < 8 { // Minimum playable budget
		result = 8
	}
	return result
}

// Size returns the level dimensions for the next level.
func (d *DifficultyManager) Size(baseW, baseH, cleared, score int) (int, int) {
	level := d.Level(cleared, score)
	grow := int(level * float64(d.cfg.Scaling.SizeIncrease))
	return baseW + grow, baseH + grow
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

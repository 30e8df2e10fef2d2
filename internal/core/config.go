package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Levels cleared
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Event is something notable that happened during a step.
type Event int

const (
	EventNone          Event = iota
	EventLevelStarted        // A new level was generated and is in play
	EventLevelCleared        // Every ball came to rest on a goal
	EventLevelFailed         // The clock ran out and the level restarts
	EventToggled             // The player switched the grid
)

// String returns the event name used by remote clients.
func (e Event) String() string {
	switch e {
	case EventLevelStarted:
		return "level_started"
	case EventLevelCleared:
		return "level_cleared"
	case EventLevelFailed:
		return "level_failed"
	case EventToggled:
		return "toggled"
	default:
		return "none"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has returns true if the step produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}

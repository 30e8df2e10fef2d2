// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/maztic-arcade/internal/core"
)

// Game is the core interface that all arcade games must implement.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "maztic").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting after game over.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Toggle, Pause, etc.).
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, level, game over, paused).
	State() core.GameState
}

// Resumable is implemented by games whose progress survives between sessions.
type Resumable interface {
	// Progress returns the number of levels cleared and the score so far.
	Progress() (cleared, score int)
	// Resume continues a run from saved progress. Call after Reset.
	Resume(cleared, score int)
}

// Options carries per-session settings to a factory.
type Options struct {
	ConfigPath string // Custom config file, empty for the default search
	Difficulty string // Difficulty preset name, empty for normal
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(opts Options) (Game, error)

type entry struct {
	title   string
	factory Factory
}

var (
	games = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := games[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	games[id] = entry{title: title, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(games))
	for id, e := range games {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered or the factory fails.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := games[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: creating %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := games[id]
	return ok
}

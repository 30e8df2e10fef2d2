package maztic

import "github.com/vovakirdan/maztic-arcade/internal/maze"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateLevelFailed  GameStateType = "level_failed"
	StateGameOver     GameStateType = "game_over"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// BallView is a ball as seen by a remote client.
type BallView struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Dir   string  `json:"dir"`
	Glide float64 `json:"glide"`
}

// Snapshot captures the game state for determinism testing and for
// streaming to remote clients.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	SimTick   int           `json:"sim_tick"`
	Level     int           `json:"level"` // 1-indexed for display
	LevelID   string        `json:"level_id"`
	Custom    bool          `json:"custom"`
	Score     int           `json:"score"`
	Lives     int           `json:"lives"`
	Remaining int           `json:"remaining"` // Clock in cycles
	Toggles   int           `json:"toggles"`
	Rows      []string      `json:"rows"`
	Balls     []BallView    `json:"balls"`
	State     GameStateType `json:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.levelFailed:
		state = StateLevelFailed
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:      g.tick,
		Level:     g.cleared + 1,
		Custom:    g.custom,
		Score:     g.score,
		Lives:     g.lives,
		Remaining: g.Remaining() / maze.TicksPerCell,
		State:     state,
	}
	if g.level != nil {
		snap.LevelID = g.level.ID
	}
	if g.sim != nil {
		snap.SimTick = g.sim.Tick
		snap.Toggles = g.sim.Toggles()
		snap.Rows = g.sim.Grid.Rows()
		snap.Balls = make([]BallView, len(g.sim.Balls))
		for i, b := range g.sim.Balls {
			snap.Balls[i] = BallView{X: b.Pos.X, Y: b.Pos.Y, Dir: b.Dir.String(), Glide: b.Glide()}
		}
	}
	return snap
}

// Detail returns the snapshot for clients that draw the maze themselves.
func (g *Game) Detail() any {
	return g.Snapshot()
}

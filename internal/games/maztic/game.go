// Package maztic implements the Maztic puzzle: balls roll through a generated
// maze of mirrors and gates, and the player flips every switchable tile at
// once to steer all of them onto goals before the clock runs out.
package maztic

import (
	"fmt"

	"github.com/vovakirdan/maztic-arcade/internal/config"
	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/registry"
)

const (
	hudHeight    = 2
	footerHeight = 1
	bannerTicks  = 90 // ~1.5 seconds at 60 FPS
	seedStride   = 0x9e3779b97f4a7c15
)

// Game implements the Maztic game.
type Game struct {
	cfg  config.MazticConfig
	diff *config.DifficultyManager

	baseSeed uint64
	tick     uint64
	score    int
	cleared  int // Levels cleared this run
	lives    int

	level    *maze.Level
	report   maze.Report
	sim      *maze.Simulator
	custom   bool // Current level was installed with PlayLevel
	genErr   error
	showHint bool

	// Screen dimensions
	screenW int
	screenH int
	mapRect core.Rect

	// Game state flags
	gameOver bool
	paused   bool
	tooSmall bool

	// Level cleared / failed banner
	levelCleared bool
	levelFailed  bool
	bannerTicks  int

	events []core.Event
}

func init() {
	registry.Register("maztic", "Maztic", func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New loads configuration and applies the difficulty preset named in opts.
func New(opts registry.Options) (*Game, error) {
	cfg, err := config.LoadMaztic(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(opts.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyMazticPreset(&cfg, preset)
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates a game from an already loaded configuration.
func NewWithConfig(cfg config.MazticConfig) *Game {
	return &Game{
		cfg:      cfg,
		diff:     config.NewDifficultyManager(cfg.Difficulty),
		showHint: cfg.Gameplay.ShowHint,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "maztic" }

// Title returns the display name.
func (g *Game) Title() string { return "Maztic" }

// Reset starts a new run on a freshly generated first level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.baseSeed = uint64(cfg.Seed)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.score = 0
	g.cleared = 0
	g.lives = g.cfg.Gameplay.Lives
	g.gameOver = false
	g.paused = false
	g.events = nil
	g.startLevel()
}

// Progress returns the levels cleared and score of the current run.
func (g *Game) Progress() (cleared, score int) {
	return g.cleared, g.score
}

// Resume continues a run from saved progress.
func (g *Game) Resume(cleared, score int) {
	g.cleared = max(0, cleared)
	g.score = max(0, score)
	g.startLevel()
}

// PlayLevel replaces the current level with l. Once it is cleared the run
// continues on generated levels.
func (g *Game) PlayLevel(l *maze.Level) error {
	if err := l.Validate(); err != nil {
		return err
	}
	g.level = l.Clone()
	g.report = maze.Report{}
	g.custom = true
	g.genErr = nil
	g.beginLevel()
	return nil
}

// Level returns the level in play, or nil if generation failed.
func (g *Game) Level() *maze.Level { return g.level }

// Simulator returns the live simulation of the level in play.
func (g *Game) Simulator() *maze.Simulator { return g.sim }

// Report returns the generation report of the current level.
func (g *Game) Report() maze.Report { return g.report }

// Err returns the last generation error.
func (g *Game) Err() error { return g.genErr }

// Remaining returns the ticks left on the level clock.
func (g *Game) Remaining() int {
	if g.level == nil || g.sim == nil {
		return 0
	}
	return max(0, g.level.ConvergenceTicks-g.sim.Tick)
}

// GeneratorParams maps the generator section of cfg onto generator
// parameters for the given seed, without difficulty scaling.
func GeneratorParams(cfg config.MazticConfig, seed uint64) maze.GenParams {
	gc := cfg.Generator
	p := maze.DefaultGenParams()
	p.Width, p.Height = gc.Width, gc.Height
	p.Agents = gc.Agents
	p.TargetTicks = gc.TargetCycles * maze.TicksPerCell
	p.Candidates = gc.Candidates
	p.CarveMin = gc.CarveMin
	p.CarveMax = gc.CarveMax
	p.ToggleChance = gc.ToggleChance
	p.MinCheckTicks = gc.MinCheckCycles * maze.TicksPerCell
	p.Seed = seed
	return p
}

// genParams derives generator parameters for the next level from
// configuration, difficulty and the available screen.
func (g *Game) genParams() maze.GenParams {
	gc := g.cfg.Generator
	p := GeneratorParams(g.cfg, g.baseSeed+uint64(g.cleared+1)*seedStride)

	p.Width, p.Height = g.diff.Size(gc.Width, gc.Height, g.cleared, g.score)
	if g.screenW > 0 && g.screenH > 0 {
		p.Width = min(p.Width, g.screenW-2)
		p.Height = min(p.Height, g.screenH-hudHeight-footerHeight)
	}
	p.Agents = g.diff.Agents(gc.Agents, maze.MaxAgents, g.cleared, g.score)
	p.TargetTicks = g.diff.TargetCycles(gc.TargetCycles, g.cleared, g.score) * maze.TicksPerCell
	return p
}

// startLevel generates the level for the current progress.
func (g *Game) startLevel() {
	g.custom = false
	gen, err := maze.NewGenerator(g.genParams())
	if err != nil {
		g.genErr = fmt.Errorf("maztic: level %d: %w", g.cleared+1, err)
		g.level = nil
		g.sim = nil
		g.tooSmall = true
		return
	}
	g.genErr = nil
	g.level, g.report = gen.Generate()
	g.level.ID = fmt.Sprintf("run-%d", g.cleared+1)
	g.beginLevel()
}

// beginLevel spawns the balls of the current level and lays it out.
func (g *Game) beginLevel() {
	g.levelCleared = false
	g.levelFailed = false
	g.bannerTicks = 0
	g.sim = g.level.NewSimulator(true)
	g.layout()
	g.events = append(g.events, core.EventLevelStarted)
}

// layout centers the level below the HUD.
func (g *Game) layout() {
	requiredW := g.level.Width()
	requiredH := g.level.Height() + hudHeight + footerHeight
	g.tooSmall = g.screenW < requiredW || g.screenH < requiredH
	g.mapRect = core.NewRect(0, 0, g.level.Width(), g.level.Height()).
		CenterIn(g.screenW, g.screenH-hudHeight-footerHeight)
	g.mapRect.Y += hudHeight
}

// Resize adapts the layout to a new screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.level == nil {
		g.startLevel()
		return
	}
	g.layout()
}

// restartLevel puts the balls back at their start with the clock full.
func (g *Game) restartLevel() {
	if g.level == nil {
		g.startLevel()
		return
	}
	g.beginLevel()
}

// Step advances the game by one frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	g.events = g.events[:0]

	if input.Has(core.ActionRestart) {
		if g.gameOver {
			g.Reset(core.RuntimeConfig{
				Seed:    int64(g.baseSeed + seedStride),
				ScreenW: g.screenW,
				ScreenH: g.screenH,
			})
		} else {
			g.restartLevel()
		}
		return g.result()
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if input.Has(core.ActionHint) {
		g.showHint = !g.showHint
	}

	if g.gameOver || g.paused || g.tooSmall || g.sim == nil {
		return g.result()
	}

	if g.levelCleared || g.levelFailed {
		g.bannerTicks++
		if g.bannerTicks >= bannerTicks {
			if g.levelCleared {
				g.startLevel()
			} else {
				g.restartLevel()
			}
		}
		return g.result()
	}

	if input.Has(core.ActionToggle) {
		g.sim.Toggle()
		g.events = append(g.events, core.EventToggled)
	}

	for range g.cfg.Gameplay.TicksPerFrame {
		g.sim.Advance(1)
		if g.checkOutcome() {
			break
		}
	}
	return g.result()
}

// checkOutcome ends the level when every ball rests on a goal or the clock
// runs out. Goals are only judged on cycle boundaries.
func (g *Game) checkOutcome() bool {
	if g.sim.AtRest() && g.sim.IsGoalReached() {
		remaining := g.Remaining() / maze.TicksPerCell
		g.score += g.cfg.Gameplay.LevelPoints + g.cfg.Gameplay.TimeBonus*remaining
		g.cleared++
		g.levelCleared = true
		g.bannerTicks = 0
		g.events = append(g.events, core.EventLevelCleared)
		return true
	}
	if g.sim.Tick < g.level.ConvergenceTicks {
		return false
	}

	g.events = append(g.events, core.EventLevelFailed)
	if g.cfg.Gameplay.Lives > 0 {
		g.lives--
		if g.lives <= 0 {
			g.gameOver = true
			return true
		}
	}
	g.levelFailed = true
	g.bannerTicks = 0
	return true
}

func (g *Game) result() core.StepResult {
	events := append([]core.Event(nil), g.events...)
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.cleared,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

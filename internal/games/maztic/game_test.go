package maztic

import (
	"strings"
	"testing"

	"github.com/vovakirdan/maztic-arcade/internal/config"
	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/registry"
)

func testConfig() config.MazticConfig {
	cfg := config.DefaultMazticConfig()
	cfg.Generator.Candidates = 8
	return cfg
}

func newTestGame(t *testing.T, cfg config.MazticConfig) *Game {
	t.Helper()
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24})
	if g.Err() != nil {
		t.Fatalf("generation failed: %v", g.Err())
	}
	return g
}

func mustLevel(t *testing.T, rows []string, balls []maze.BallPlace, ticks int) *maze.Level {
	t.Helper()
	grid, err := maze.ParseGrid(rows)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return &maze.Level{ID: "test", Grid: grid, Balls: balls, ConvergenceTicks: ticks}
}

// One ball rolls east onto the goal next to it in a single cycle.
func rollLevel(t *testing.T) *maze.Level {
	return mustLevel(t, []string{
		"wwwwwww",
		"w     w",
		"w  G  w",
		"w     w",
		"wwwwwww",
	}, []maze.BallPlace{{Pos: maze.C(2, 2), Dir: maze.DirEast}}, 3*maze.TicksPerCell)
}

// One ball bounces along a row that has no goal.
func stuckLevel(t *testing.T) *maze.Level {
	return mustLevel(t, []string{
		"wwwwwww",
		"w  G  w",
		"w     w",
		"w     w",
		"wwwwwww",
	}, []maze.BallPlace{{Pos: maze.C(2, 3), Dir: maze.DirEast}}, 2*maze.TicksPerCell)
}

func stepN(g *Game, n int, in core.InputFrame) []core.Event {
	var events []core.Event
	for range n {
		events = append(events, g.Step(in).Events...)
	}
	return events
}

func hasEvent(events []core.Event, e core.Event) bool {
	for _, ev := range events {
		if ev == e {
			return true
		}
	}
	return false
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, testConfig())
	g2 := newTestGame(t, testConfig())

	input := core.NewInputFrame()
	for i := range 120 {
		input.Clear()
		if i == 30 || i == 75 {
			input.Set(core.ActionToggle)
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if strings.Join(s1.Rows, "\n") != strings.Join(s2.Rows, "\n") {
		t.Errorf("grids diverged:\n%s\n\n%s", strings.Join(s1.Rows, "\n"), strings.Join(s2.Rows, "\n"))
	}
	if len(s1.Balls) != len(s2.Balls) {
		t.Fatalf("ball count mismatch: %d vs %d", len(s1.Balls), len(s2.Balls))
	}
	for i := range s1.Balls {
		if s1.Balls[i] != s2.Balls[i] {
			t.Errorf("ball %d mismatch: %+v vs %+v", i, s1.Balls[i], s2.Balls[i])
		}
	}
	if s1.Toggles != s2.Toggles || s1.SimTick != s2.SimTick || s1.Score != s2.Score {
		t.Errorf("progress diverged: %+v vs %+v", s1, s2)
	}
}

func TestGeneratedLevelFitsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty.Enabled = false
	g := newTestGame(t, cfg)

	l := g.Level()
	if l.Width() != cfg.Generator.Width || l.Height() != cfg.Generator.Height {
		t.Errorf("level is %dx%d, expected %dx%d", l.Width(), l.Height(), cfg.Generator.Width, cfg.Generator.Height)
	}
	if len(g.Report().Candidates) != cfg.Generator.Candidates {
		t.Errorf("report has %d candidates, expected %d", len(g.Report().Candidates), cfg.Generator.Candidates)
	}
	if g.Remaining() != l.ConvergenceTicks {
		t.Errorf("clock starts at %d, expected %d", g.Remaining(), l.ConvergenceTicks)
	}
}

func TestLevelSizeLimitedByScreen(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty.Enabled = false
	cfg.Generator.Width = 40
	cfg.Generator.Height = 30

	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 30, ScreenH: 20})
	if g.Err() != nil {
		t.Fatalf("generation failed: %v", g.Err())
	}
	if g.Level().Width() > 28 || g.Level().Height() > 20-hudHeight-footerHeight {
		t.Errorf("level %dx%d does not fit the screen", g.Level().Width(), g.Level().Height())
	}
	if g.tooSmall {
		t.Error("level should fit after clamping")
	}
}

func TestToggleFlipsGrid(t *testing.T) {
	g := newTestGame(t, testConfig())
	l := mustLevel(t, []string{
		"wwwwwww",
		"w /   w",
		"w   | w",
		"w G   w",
		"wwwwwww",
	}, []maze.BallPlace{{Pos: maze.C(1, 2), Dir: maze.DirEast}}, 10*maze.TicksPerCell)
	if err := g.PlayLevel(l); err != nil {
		t.Fatalf("PlayLevel: %v", err)
	}

	input := core.NewInputFrame()
	input.Set(core.ActionToggle)
	res := g.Step(input)
	if !res.Has(core.EventToggled) {
		t.Error("expected toggled event")
	}

	grid := g.Simulator().Grid
	if grid.At(maze.C(2, 1)) != maze.MirrorBackslash {
		t.Errorf("mirror not flipped: %q", grid.At(maze.C(2, 1)).String())
	}
	if grid.At(maze.C(4, 2)) != maze.GateHorizontal {
		t.Errorf("gate not flipped: %q", grid.At(maze.C(4, 2)).String())
	}
	if l.Grid.At(maze.C(2, 1)) != maze.MirrorSlash {
		t.Error("toggling must not change the stored level")
	}
}

func TestClearLevel(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	if err := g.PlayLevel(rollLevel(t)); err != nil {
		t.Fatalf("PlayLevel: %v", err)
	}

	events := stepN(g, maze.TicksPerCell, core.NewInputFrame())
	if !hasEvent(events, core.EventLevelCleared) {
		t.Fatalf("expected level cleared, snapshot %+v", g.Snapshot())
	}

	// Two cycles were left on the clock.
	want := cfg.Gameplay.LevelPoints + 2*cfg.Gameplay.TimeBonus
	if cleared, score := g.Progress(); cleared != 1 || score != want {
		t.Errorf("progress = (%d, %d), expected (1, %d)", cleared, score, want)
	}
	if g.Snapshot().State != StateLevelCleared {
		t.Errorf("state = %s, expected %s", g.Snapshot().State, StateLevelCleared)
	}

	events = stepN(g, bannerTicks, core.NewInputFrame())
	if !hasEvent(events, core.EventLevelStarted) {
		t.Error("expected a new level after the banner")
	}
	if g.Level().ID != "run-2" || g.Snapshot().Custom {
		t.Errorf("expected generated level run-2, got %q", g.Level().ID)
	}
}

func TestTimeoutRestartsLevel(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	if err := g.PlayLevel(stuckLevel(t)); err != nil {
		t.Fatalf("PlayLevel: %v", err)
	}

	events := stepN(g, 2*maze.TicksPerCell, core.NewInputFrame())
	if !hasEvent(events, core.EventLevelFailed) {
		t.Fatal("expected level failed when the clock runs out")
	}
	if g.lives != cfg.Gameplay.Lives-1 {
		t.Errorf("lives = %d, expected %d", g.lives, cfg.Gameplay.Lives-1)
	}

	stepN(g, bannerTicks, core.NewInputFrame())
	if g.Simulator().Tick != 0 || g.Remaining() != 2*maze.TicksPerCell {
		t.Errorf("level not restarted: tick %d, remaining %d", g.Simulator().Tick, g.Remaining())
	}
	if g.Simulator().Balls[0].Pos != maze.C(2, 3) {
		t.Errorf("ball not back at start: %v", g.Simulator().Balls[0].Pos)
	}
	if g.Level().ID != "test" {
		t.Error("a timeout must replay the same level")
	}
}

func TestGameOverAfterLastLife(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 1
	g := newTestGame(t, cfg)
	if err := g.PlayLevel(stuckLevel(t)); err != nil {
		t.Fatalf("PlayLevel: %v", err)
	}

	stepN(g, 2*maze.TicksPerCell, core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)
	if g.State().GameOver || g.lives != 1 {
		t.Error("restart should begin a new run")
	}
}

func TestUnlimitedLives(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 0
	g := newTestGame(t, cfg)
	if err := g.PlayLevel(stuckLevel(t)); err != nil {
		t.Fatalf("PlayLevel: %v", err)
	}

	for range 3 {
		stepN(g, 2*maze.TicksPerCell+bannerTicks, core.NewInputFrame())
	}
	if g.State().GameOver {
		t.Error("lives 0 means the clock never ends the run")
	}
}

func TestPauseStopsClock(t *testing.T) {
	g := newTestGame(t, testConfig())
	before := g.Remaining()

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)
	stepN(g, 30, core.NewInputFrame())

	if g.Remaining() != before || !g.State().Paused {
		t.Errorf("clock moved while paused: %d -> %d", before, g.Remaining())
	}
}

func TestResume(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Resume(3, 250)

	if cleared, score := g.Progress(); cleared != 3 || score != 250 {
		t.Errorf("progress = (%d, %d), expected (3, 250)", cleared, score)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "LEVEL 4") {
		t.Errorf("HUD should show level 4: %q", screen.Row(0))
	}
}

func TestRenderHUDAndHint(t *testing.T) {
	g := newTestGame(t, testConfig())
	if err := g.PlayLevel(rollLevel(t)); err != nil {
		t.Fatalf("PlayLevel: %v", err)
	}
	g.level.Solution = []int{20}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	hud := screen.Row(0)
	for _, want := range []string{"LEVEL 1", "TIME 3", "SCORE 0", "LIVES 3"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
	if !strings.Contains(screen.String(), "◎") {
		t.Error("goal tile not drawn")
	}

	input := core.NewInputFrame()
	input.Set(core.ActionHint)
	g.Step(input)
	g.Render(screen)
	if !strings.Contains(screen.String(), "flip at TIME 2") {
		t.Errorf("hint not shown:\n%s", screen.String())
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := NewWithConfig(testConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 6, ScreenH: 6})

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %s, expected %s", g.Snapshot().State, StatePausedSmall)
	}
	screen := core.NewScreen(6, 6)
	g.Render(screen)

	g.Resize(80, 24)
	if g.Level() == nil || g.Snapshot().State != StatePlaying {
		t.Errorf("resize should generate a level, state %s", g.Snapshot().State)
	}
}

func TestRegisteredFactory(t *testing.T) {
	if !registry.Exists("maztic") {
		t.Fatal("maztic not registered")
	}
	if _, err := registry.Create("maztic", registry.Options{Difficulty: "insane"}); err == nil {
		t.Error("expected error for unknown difficulty")
	}
	g, err := registry.Create("maztic", registry.Options{Difficulty: "easy"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := g.(registry.Resumable); !ok {
		t.Error("maztic should be resumable")
	}
}

func TestGeneratorParamsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Generator.Width, cfg.Generator.Height = 19, 13
	cfg.Generator.TargetCycles = 15

	p := GeneratorParams(cfg, 77)
	if p.Width != 19 || p.Height != 13 || p.Seed != 77 {
		t.Errorf("unexpected params %+v", p)
	}
	if p.TargetTicks != 15*maze.TicksPerCell || p.Candidates != 8 {
		t.Errorf("TargetTicks = %d, Candidates = %d", p.TargetTicks, p.Candidates)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("params should be valid: %v", err)
	}
}

package maze_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
)

func TestGenerateDeterministic(t *testing.T) {
	a, err := maze.GenerateLevel(42, 17, 11, 3, 400)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	b, err := maze.GenerateLevel(42, 17, 11, 3, 400)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}

	if !a.Grid.Equal(b.Grid) {
		t.Errorf("grids differ for the same seed:\n%s\nvs\n%s", a.Grid, b.Grid)
	}
	if len(a.Balls) != len(b.Balls) {
		t.Fatalf("ball counts differ: %d vs %d", len(a.Balls), len(b.Balls))
	}
	for i := range a.Balls {
		if a.Balls[i] != b.Balls[i] {
			t.Errorf("ball %d: %+v vs %+v", i, a.Balls[i], b.Balls[i])
		}
	}
	if a.ConvergenceTicks != b.ConvergenceTicks || a.Score != b.Score {
		t.Errorf("convergence/score differ: %d/%d vs %d/%d",
			a.ConvergenceTicks, a.Score, b.ConvergenceTicks, b.Score)
	}
}

func TestGeneratorsDoNotShareRandomness(t *testing.T) {
	p := maze.DefaultGenParams()
	p.Seed = 11
	p.Candidates = 4

	solo, err := maze.NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	want, _ := solo.Generate()

	// Interleave a second generator's draws between candidates.
	first, _ := maze.NewGenerator(p)
	other, _ := maze.NewGenerator(p)
	levels := make([]*maze.Level, 0, p.Candidates)
	for i := 0; i < p.Candidates; i++ {
		l, _ := first.GenerateCandidate(i)
		levels = append(levels, l)
		other.GenerateCandidate(i)
	}

	got := maze.SelectBest(levels)
	if !got.Grid.Equal(want.Grid) || got.Score != want.Score {
		t.Error("interleaved generation changed the result")
	}
}

func TestGenerateMinimalLevel(t *testing.T) {
	level, err := maze.GenerateLevel(1, 7, 7, 1, 400)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if len(level.Balls) != 1 {
		t.Fatalf("got %d balls, want 1", len(level.Balls))
	}
	goals := level.Goals()
	if len(goals) == 0 {
		t.Fatalf("no goal in level:\n%s", level.Grid)
	}

	// A goal must be reachable from the ball over non-wall cells.
	start := level.Balls[0].Pos
	seen := map[maze.Coord]bool{start: true}
	queue := []maze.Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range allDirs {
			n := c.Step(d)
			if seen[n] || !level.Grid.InBounds(n) || level.Grid.At(n) == maze.Wall {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	reachable := false
	for _, g := range goals {
		if seen[g] {
			reachable = true
		}
	}
	if !reachable {
		t.Errorf("no goal reachable from %v:\n%s", start, level.Grid)
	}
}

func TestGeneratedLevelsKeepBorder(t *testing.T) {
	p := maze.DefaultGenParams()
	p.Candidates = 1

	for seed := uint64(1); seed <= 20; seed++ {
		p.Seed = seed
		gen, err := maze.NewGenerator(p)
		if err != nil {
			t.Fatalf("NewGenerator failed: %v", err)
		}
		level, _ := gen.Generate()
		if !borderIntact(level.Grid) {
			t.Errorf("seed %d: border breached:\n%s", seed, level.Grid)
		}
		for _, b := range level.Balls {
			if !level.Grid.Interior(b.Pos) {
				t.Errorf("seed %d: ball starts at %v outside the interior", seed, b.Pos)
			}
		}
	}
}

func TestSelectBest(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int // candidate index
	}{
		{"highest wins", []int{5, -100, 42, 7}, 2},
		{"ties go to earliest", []int{3, 9, 9}, 1},
		{"all penalized", []int{-500, -1000}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			levels := make([]*maze.Level, len(tc.scores))
			for i, s := range tc.scores {
				levels[i] = &maze.Level{Candidate: i, Score: s}
			}
			got := maze.SelectBest(levels)
			if got.Candidate != tc.want {
				t.Errorf("SelectBest picked %d (score %d), want %d", got.Candidate, got.Score, tc.want)
			}
		})
	}

	if maze.SelectBest(nil) != nil {
		t.Error("SelectBest(nil) should return nil")
	}
}

func TestGenerateReport(t *testing.T) {
	p := maze.DefaultGenParams()
	p.Seed = 5
	p.Candidates = 10
	gen, err := maze.NewGenerator(p)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	level, report := gen.Generate()
	if len(report.Candidates) != p.Candidates {
		t.Fatalf("report has %d candidates, want %d", len(report.Candidates), p.Candidates)
	}
	if report.Best != level.Candidate {
		t.Errorf("report best = %d, level candidate = %d", report.Best, level.Candidate)
	}
	for _, c := range report.Candidates {
		if c.Score > level.Score {
			t.Errorf("candidate %d scored %d, above the selected %d", c.Index, c.Score, level.Score)
		}
	}
}

func TestReplayIsIdempotent(t *testing.T) {
	level, err := maze.GenerateLevel(2024, 17, 11, 3, 400)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if !maze.Verify(level) {
		t.Fatalf("selected level does not verify (score %d)", level.Score)
	}
	pristine := level.Grid.Clone()

	first := maze.Replay(level, true)
	second := maze.Replay(level, true)
	if !first.IsGoalReached() || !second.IsGoalReached() {
		t.Fatal("replay with the solution should reach the goal every time")
	}
	fp, sp := first.Positions(), second.Positions()
	for i := range fp {
		if fp[i] != sp[i] {
			t.Errorf("ball %d ended at %v then %v", i, fp[i], sp[i])
		}
	}
	if !level.Grid.Equal(pristine) {
		t.Error("replay modified the level grid")
	}

	stepwise := maze.ReplayStepwise(level)
	if !stepwise.IsGoalReached() {
		t.Error("stepwise replay should reach the goal")
	}
}

func TestGenParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*maze.GenParams)
		want   error
	}{
		{"defaults", func(p *maze.GenParams) {}, nil},
		{"too narrow", func(p *maze.GenParams) { p.Width = 4 }, maze.ErrLevelTooSmall},
		{"too short", func(p *maze.GenParams) { p.Height = 3 }, maze.ErrLevelTooSmall},
		{"no agents", func(p *maze.GenParams) { p.Agents = 0 }, maze.ErrBadParams},
		{"too many agents", func(p *maze.GenParams) { p.Agents = maze.MaxAgents + 1 }, maze.ErrBadParams},
		{"no candidates", func(p *maze.GenParams) { p.Candidates = 0 }, maze.ErrBadParams},
		{"inverted carve range", func(p *maze.GenParams) { p.CarveMin, p.CarveMax = 0.5, 0.2 }, maze.ErrBadParams},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := maze.DefaultGenParams()
			tc.modify(&p)
			err := p.Validate()
			if tc.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := maze.GenerateLevel(1, 3, 3, 1, 400); !errors.Is(err, maze.ErrLevelTooSmall) {
		t.Errorf("GenerateLevel(3x3) error = %v, want ErrLevelTooSmall", err)
	}
}

func TestLevelValidate(t *testing.T) {
	level, err := maze.GenerateLevel(9, 17, 11, 2, 400)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if err := level.Validate(); err != nil {
		t.Errorf("generated level invalid: %v", err)
	}

	broken := level.Clone()
	broken.Balls = nil
	if broken.Validate() == nil {
		t.Error("level without balls should be invalid")
	}

	broken = level.Clone()
	broken.Balls[0].Pos = maze.C(0, 0)
	if broken.Validate() == nil {
		t.Error("ball on the border should be invalid")
	}
	if level.Balls[0].Pos == maze.C(0, 0) {
		t.Error("Clone shares ball placements with the original")
	}

	for _, solution := range [][]int{{40, 20}, {-1, 20}} {
		broken = level.Clone()
		broken.Solution = solution
		if broken.Validate() == nil {
			t.Errorf("solution %v should be invalid", solution)
		}
	}
}

func TestLevelIDsDependOnShape(t *testing.T) {
	base, err := maze.GenerateLevel(7, 17, 11, 3, 400)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	again, err := maze.GenerateLevel(7, 17, 11, 3, 400)
	if err != nil {
		t.Fatalf("GenerateLevel failed: %v", err)
	}
	if base.ID != again.ID {
		t.Errorf("same inputs gave IDs %q and %q", base.ID, again.ID)
	}

	for _, shape := range []struct{ w, h, agents, ticks int }{
		{21, 11, 3, 400},
		{17, 13, 3, 400},
		{17, 11, 2, 400},
		{17, 11, 3, 300},
	} {
		other, err := maze.GenerateLevel(7, shape.w, shape.h, shape.agents, shape.ticks)
		if err != nil {
			t.Fatalf("GenerateLevel(%+v) failed: %v", shape, err)
		}
		if other.ID == base.ID {
			t.Errorf("shape %+v reuses ID %q", shape, base.ID)
		}
	}
}

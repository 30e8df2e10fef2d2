package maze

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Score penalties for degenerate candidates.
const (
	PenaltyNoAgents       = 1000
	PenaltyNonConvergence = 500
	PenaltyVerification   = 200
	PenaltyOverrun        = 100
	PenaltyTrivial        = 50
)

// MaxAgents is the largest supported number of balls per level.
const MaxAgents = 5

var (
	// ErrLevelTooSmall is returned when the dimensions leave no room to carve.
	ErrLevelTooSmall = errors.New("maze: level dimensions too small")
	// ErrBadParams is returned for other structurally invalid parameters.
	ErrBadParams = errors.New("maze: invalid generator parameters")
)

// GenParams configures level generation.
type GenParams struct {
	Width       int    // Level width including the wall border
	Height      int    // Level height including the wall border
	Agents      int    // Balls per level
	TargetTicks int    // Convergence time budget
	Candidates  int    // Levels generated per batch; the best one wins
	Seed        uint64 // RNG seed

	// Carving
	CarveMin float64 // Minimum carved fraction of the interior
	CarveMax float64 // Maximum carved fraction of the interior

	// Iteration caps
	CarveRuns       int // Corridors carved per candidate
	PlacementTries  int // Random cells tried for ball placement
	MacroIterations int // Movement cycles simulated looking for a goal

	// Goal search
	ToggleChance  float64 // Chance per cycle that the generator toggles the grid
	MinCheckTicks int     // Earliest tick at which a goal may be frozen
}

// DefaultGenParams returns the parameters of the original game.
func DefaultGenParams() GenParams {
	return GenParams{
		Width:           17,
		Height:          11,
		Agents:          3,
		TargetTicks:     20 * TicksPerCell,
		Candidates:      60,
		CarveMin:        0.3,
		CarveMax:        0.4,
		CarveRuns:       99,
		PlacementTries:  99,
		MacroIterations: 99,
		ToggleChance:    0.25,
		MinCheckTicks:   5 * TicksPerCell,
	}
}

// Validate reports structural misconfiguration.
func (p GenParams) Validate() error {
	if p.Width < 5 || p.Height < 5 {
		return fmt.Errorf("%w: %dx%d, need at least 5x5", ErrLevelTooSmall, p.Width, p.Height)
	}
	if p.Agents < 1 || p.Agents > MaxAgents {
		return fmt.Errorf("%w: agents %d not in 1..%d", ErrBadParams, p.Agents, MaxAgents)
	}
	if p.Candidates < 1 {
		return fmt.Errorf("%w: candidates %d", ErrBadParams, p.Candidates)
	}
	if p.CarveMin < 0 || p.CarveMax < p.CarveMin || p.CarveMax > 1 {
		return fmt.Errorf("%w: carve fraction %.2f..%.2f", ErrBadParams, p.CarveMin, p.CarveMax)
	}
	if p.CarveRuns < 1 || p.PlacementTries < 1 || p.MacroIterations < 1 {
		return fmt.Errorf("%w: iteration caps must be positive", ErrBadParams)
	}
	return nil
}

// CandidateStats describes one generation attempt.
type CandidateStats struct {
	Index            int
	Score            int
	Coverage         int
	Agents           int
	Converged        bool
	ConvergenceTicks int
	Verified         bool
	Trivial          bool
}

// Report summarizes a generation batch.
type Report struct {
	Candidates []CandidateStats
	Best       int // Index of the selected candidate
}

// Generator holds the state of one generation run. Each generator owns its
// RNG, so independent generators never share randomness.
type Generator struct {
	params GenParams
	rng    *RNG
}

// NewGenerator validates params and seeds a new generator.
func NewGenerator(p GenParams) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Generator{params: p, rng: NewRNG(p.Seed)}, nil
}

// Params returns the generator's parameters.
func (g *Generator) Params() GenParams {
	return g.params
}

// GenerateLevel runs a full batch with default parameters for the given
// seed, dimensions, agent count and time target.
func GenerateLevel(seed uint64, w, h, agents, targetTicks int) (*Level, error) {
	p := DefaultGenParams()
	p.Seed = seed
	p.Width = w
	p.Height = h
	p.Agents = agents
	p.TargetTicks = targetTicks
	gen, err := NewGenerator(p)
	if err != nil {
		return nil, err
	}
	level, _ := gen.Generate()
	return level, nil
}

// Generate produces the configured batch of candidates and returns the
// best-scoring one. Failed candidates are scored, not retried.
func (g *Generator) Generate() (*Level, Report) {
	levels := make([]*Level, 0, g.params.Candidates)
	report := Report{Candidates: make([]CandidateStats, 0, g.params.Candidates)}

	for i := 0; i < g.params.Candidates; i++ {
		level, stats := g.GenerateCandidate(i)
		levels = append(levels, level)
		report.Candidates = append(report.Candidates, stats)
	}

	best := SelectBest(levels)
	report.Best = best.Candidate
	return best, report
}

// SelectBest returns the highest-scoring level. Ties go to the earliest.
func SelectBest(levels []*Level) *Level {
	if len(levels) == 0 {
		return nil
	}
	ranked := append([]*Level(nil), levels...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked[0]
}

// GenerateCandidate builds and scores one level.
func (g *Generator) GenerateCandidate(index int) (*Level, CandidateStats) {
	p := g.params
	grid := g.carve()
	places := g.place(grid)

	level := &Level{
		ID:        levelID(p, index),
		Seed:      p.Seed,
		Candidate: index,
		Grid:      grid,
		Balls:     places,
	}
	stats := CandidateStats{Index: index, Agents: len(places)}

	if len(places) == 0 {
		level.Score = -PenaltyNoAgents
		stats.Score = level.Score
		return level, stats
	}

	coverage, converged := g.findGoal(level)
	stats.Coverage = coverage
	stats.Converged = converged
	stats.ConvergenceTicks = level.ConvergenceTicks

	score := coverage
	if !converged {
		score -= PenaltyNonConvergence
	} else {
		if level.ConvergenceTicks > p.TargetTicks {
			score -= PenaltyOverrun
		}
		stats.Verified = Verify(level)
		if !stats.Verified {
			score -= PenaltyVerification
		}
		stats.Trivial = Replay(level, false).IsGoalReached()
		if stats.Trivial {
			score -= PenaltyTrivial
		}
	}

	level.Score = score
	stats.Score = score
	return level, stats
}

// levelID names a candidate by everything that shapes it, so levels from
// the same seed with different dimensions never share an ID.
func levelID(p GenParams, index int) string {
	return fmt.Sprintf("%x-%dx%d-b%d-c%d-%d", p.Seed, p.Width, p.Height, p.Agents, p.TargetTicks/TicksPerCell, index)
}

// Verify replays a frozen level with its solution twice, once fast-forwarded
// and once at live cadence. Both must end with every ball on a Goal.
func Verify(l *Level) bool {
	return Replay(l, true).IsGoalReached() && ReplayStepwise(l).IsGoalReached()
}

// carve fills a grid with walls and carves corridors into it until a random
// fraction of the interior has been opened.
func (g *Generator) carve() *Grid {
	p := g.params
	grid := NewGrid(p.Width, p.Height, Wall)
	pending := make([]PathPoint, 0)
	remaining := float64((p.Width-2)*(p.Height-2)) * g.rng.FloatRange(p.CarveMin, p.CarveMax)

	for i := 0; i < p.CarveRuns && remaining > 0; i++ {
		if len(pending) == 0 {
			x := clampInt(g.rng.IntRange(4, p.Width-3), 1, p.Width-2)
			y := clampInt(g.rng.IntRange(4, p.Height-3), 1, p.Height-2)
			pending = append(pending, PathPoint{Pos: C(x, y), Dir: WrapDir(g.rng.Intn(4))})
		}
		start := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		remaining -= float64(CarvePath(grid, g.rng, start, &pending))
	}

	for _, pp := range pending {
		grid.Set(pp.Pos, Floor)
	}
	return grid
}

// place picks ball start cells: floor cells with a floor neighbor in some
// rotation of a random facing. A chosen cell is walled off while placement
// continues so two balls never share a start, then reopened.
func (g *Generator) place(grid *Grid) []BallPlace {
	p := g.params
	places := make([]BallPlace, 0, p.Agents)

	for i := 0; i < p.PlacementTries && len(places) < p.Agents; i++ {
		pos := C(g.rng.IntRange(1, p.Width-1), g.rng.IntRange(1, p.Height-1))
		if grid.At(pos) != Floor {
			continue
		}
		dir := WrapDir(g.rng.Intn(4))
		open := false
		for j := 0; j < 4; j++ {
			if grid.At(pos.Step(dir)) == Floor {
				open = true
				break
			}
			dir = dir.TurnRight()
		}
		if !open {
			continue
		}
		places = append(places, BallPlace{Pos: pos, Dir: dir})
		grid.Set(pos, Wall)
	}

	for _, bp := range places {
		grid.Set(bp.Pos, Floor)
	}
	return places
}

// findGoal simulates the level with random toggles until every ball rests on
// a floor cell of the pristine grid, then freezes those cells as Goal tiles.
// It records the toggles as the level's solution and returns the occupancy
// score of the run.
func (g *Generator) findGoal(level *Level) (int, bool) {
	p := g.params
	grid := level.Grid
	sim := level.NewSimulator(false)
	visits := make([]int, grid.W*grid.H)
	solution := make([]int, 0)

	for i := 0; i < p.MacroIterations; i++ {
		sim.Advance(TicksPerCell)

		for _, b := range sim.Balls {
			v := 1
			if sim.Grid.At(b.Pos) != Floor {
				v = 2
			}
			idx := grid.index(b.Pos)
			if v > visits[idx] {
				visits[idx] = v
			}
		}

		if g.rng.Float() < p.ToggleChance {
			sim.Toggle()
			solution = append(solution, sim.Tick)
		}
		if g.rng.Float() < 2/math.Sqrt(float64(i+1)) {
			continue
		}
		if sim.Tick < p.MinCheckTicks {
			continue
		}

		onFloor := true
		for _, b := range sim.Balls {
			if grid.At(b.Pos) != Floor {
				onFloor = false
				break
			}
		}
		if !onFloor {
			continue
		}

		for _, b := range sim.Balls {
			grid.Set(b.Pos, Goal)
		}
		level.ConvergenceTicks = sim.Tick
		level.Solution = trimSchedule(solution, sim.Tick)
		return sum(visits), true
	}

	level.ConvergenceTicks = sim.Tick
	level.Solution = solution
	return sum(visits), false
}

// trimSchedule drops toggles at or after the convergence tick; they cannot
// affect where the balls are when time runs out.
func trimSchedule(ticks []int, limit int) []int {
	out := make([]int, 0, len(ticks))
	for _, t := range ticks {
		if t < limit {
			out = append(out, t)
		}
	}
	return out
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

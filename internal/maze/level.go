package maze

import "fmt"

// Level is a finalized, playable maze: the frozen grid with its Goal tiles,
// the ball start placements and the time the balls take to converge.
type Level struct {
	ID               string
	Seed             uint64
	Candidate        int // Index within the generation batch
	Grid             *Grid
	Balls            []BallPlace
	ConvergenceTicks int
	Solution         []int // Ticks at which the generator toggled the grid
	Score            int
}

// Width returns the level width in cells.
func (l *Level) Width() int {
	return l.Grid.W
}

// Height returns the level height in cells.
func (l *Level) Height() int {
	return l.Grid.H
}

// Goals returns the coordinates of every Goal tile.
func (l *Level) Goals() []Coord {
	return l.Grid.Goals()
}

// Cycles returns the convergence time in movement cycles.
func (l *Level) Cycles() int {
	return l.ConvergenceTicks / TicksPerCell
}

// NewSimulator spawns the level's balls over a fresh copy of its grid.
func (l *Level) NewSimulator(visible bool) *Simulator {
	return NewSimulator(l.Grid, l.Balls, visible)
}

// Clone returns a deep copy of the level.
func (l *Level) Clone() *Level {
	c := *l
	c.Grid = l.Grid.Clone()
	c.Balls = append([]BallPlace(nil), l.Balls...)
	c.Solution = append([]int(nil), l.Solution...)
	return &c
}

// Validate checks that the level is structurally playable.
func (l *Level) Validate() error {
	if l.Grid == nil {
		return fmt.Errorf("maze: level %q has no grid", l.ID)
	}
	if len(l.Balls) == 0 {
		return fmt.Errorf("maze: level %q has no balls", l.ID)
	}
	for i, b := range l.Balls {
		if !l.Grid.Interior(b.Pos) {
			return fmt.Errorf("maze: level %q ball %d at %v is outside the interior", l.ID, i, b.Pos)
		}
		if l.Grid.At(b.Pos).IsObstacle() {
			return fmt.Errorf("maze: level %q ball %d starts on %q", l.ID, i, l.Grid.At(b.Pos).String())
		}
	}
	if l.ConvergenceTicks <= 0 {
		return fmt.Errorf("maze: level %q has no convergence time", l.ID)
	}
	for i, tick := range l.Solution {
		if tick < 0 {
			return fmt.Errorf("maze: level %q solution tick %d is negative", l.ID, tick)
		}
		if i > 0 && tick < l.Solution[i-1] {
			return fmt.Errorf("maze: level %q solution ticks out of order at %d", l.ID, tick)
		}
	}
	return nil
}

package maze

import "sort"

// Simulator runs the ball tick loop over a live copy of a level's grid.
// It owns the ball list; tile resolution scans it for ball-to-ball contact.
type Simulator struct {
	Grid  *Grid
	Balls []*Ball
	Tick  int // Number of ticks processed

	schedule []int // Pending toggle ticks, ascending
	toggles  int
}

// NewSimulator spawns one ball per placement over a copy of grid.
func NewSimulator(grid *Grid, places []BallPlace, visible bool) *Simulator {
	s := &Simulator{
		Grid:  grid.Clone(),
		Balls: make([]*Ball, 0, len(places)),
	}
	for i, p := range places {
		s.Balls = append(s.Balls, NewBall(i, p, visible))
	}
	return s
}

// SetSchedule makes the simulator toggle the grid when Tick reaches each of
// the given values, before that tick's ball updates. The ticks may be given
// in any order.
func (s *Simulator) SetSchedule(ticks []int) {
	s.schedule = append([]int(nil), ticks...)
	sort.Ints(s.schedule)
}

// Advance runs the given number of ticks. The generator calls it with many
// ticks at once; the live game calls it with one.
func (s *Simulator) Advance(ticks int) {
	for i := 0; i < ticks; i++ {
		for len(s.schedule) > 0 && s.schedule[0] <= s.Tick {
			s.schedule = s.schedule[1:]
			s.Toggle()
		}
		for _, b := range s.Balls {
			b.Update(s)
		}
		s.Tick++
	}
}

// Toggle switches every toggleable tile. It must only be called between
// ticks so that no ball observes a half-toggled grid.
func (s *Simulator) Toggle() int {
	s.toggles++
	return s.Grid.ToggleAll()
}

// Toggles returns how many times the grid has been toggled.
func (s *Simulator) Toggles() int {
	return s.toggles
}

// AtRest reports whether the simulator sits on a cycle boundary, where every
// ball has committed its last step.
func (s *Simulator) AtRest() bool {
	return s.Tick%TicksPerCell == 0
}

// IsGoalReached reports whether every ball is on a Goal tile.
// A simulator without balls never reaches its goal.
func (s *Simulator) IsGoalReached() bool {
	if len(s.Balls) == 0 {
		return false
	}
	for _, b := range s.Balls {
		if b.CurrentTile(s, true) != Goal {
			return false
		}
	}
	return true
}

// Positions returns the current position of every ball in spawn order.
func (s *Simulator) Positions() []Coord {
	out := make([]Coord, len(s.Balls))
	for i, b := range s.Balls {
		out[i] = b.Pos
	}
	return out
}

// Replay re-runs a level from its start placements for its full convergence
// time. With withSolution set, the toggles recorded during generation are
// applied at their ticks. No randomness is consumed.
func Replay(l *Level, withSolution bool) *Simulator {
	s := l.NewSimulator(false)
	if withSolution {
		s.SetSchedule(l.Solution)
	}
	s.Advance(l.ConvergenceTicks)
	return s
}

// ReplayStepwise is Replay at live cadence: one tick per call to Advance,
// with the solution toggles issued through Toggle the way player input is.
func ReplayStepwise(l *Level) *Simulator {
	s := l.NewSimulator(false)
	next := 0
	for s.Tick < l.ConvergenceTicks {
		for next < len(l.Solution) && l.Solution[next] <= s.Tick {
			s.Toggle()
			next++
		}
		s.Advance(1)
	}
	return s
}

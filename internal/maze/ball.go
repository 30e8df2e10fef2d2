package maze

const (
	// TicksPerCell is the length of one movement cycle.
	TicksPerCell = 20
	// MoveTicks is the cycle offset at which a ball commits its step.
	// Offsets before it are the glide a renderer may interpolate.
	MoveTicks = 10
)

// Phase selects which tile handler a hit check runs.
type Phase int

const (
	// PhaseOnHit runs the handler of the cell the ball is on.
	PhaseOnHit Phase = iota
	// PhaseBeforeHit runs the handler of a cell the ball is about to enter.
	PhaseBeforeHit
)

// Ball is a moving agent bouncing through the maze under tile rules.
type Ball struct {
	ID      int
	Pos     Coord
	Prev    Coord
	Dir     Dir
	Visible bool
	ticks   int
}

// NewBall creates a ball at a start placement. Its first update runs the
// probe phase of a cycle.
func NewBall(id int, place BallPlace, visible bool) *Ball {
	return &Ball{
		ID:      id,
		Pos:     place.Pos,
		Prev:    place.Pos,
		Dir:     place.Dir & 3,
		Visible: visible,
		ticks:   -1,
	}
}

// Step saves the current position and moves one cell along Dir.
func (b *Ball) Step() {
	b.Prev = b.Pos
	b.Pos = b.Pos.Step(b.Dir)
}

// StepBack undoes the last Step.
func (b *Ball) StepBack() {
	b.Pos = b.Prev
}

// Reflect turns the ball around.
func (b *Ball) Reflect() {
	b.Dir = b.Dir.Reflect()
}

// CurrentTile resolves the tile under the ball. When checkOthers is set,
// another ball on the same cell is reported as BallOccupied.
func (b *Ball) CurrentTile(s *Simulator, checkOthers bool) Tile {
	if checkOthers {
		for _, other := range s.Balls {
			if other != b && other.Pos == b.Pos {
				return BallOccupied
			}
		}
	}
	return s.Grid.At(b.Pos)
}

// RemoveTile clears the cell under the ball to Floor.
func (b *Ball) RemoveTile(s *Simulator) {
	s.Grid.Set(b.Pos, Floor)
}

// CheckHit runs the handler for phase of the tile under the ball.
//
// A before-hit handler bounces the ball: a breakable tile is removed first,
// then the ball reflects, returns to the cell it came from and runs that
// cell's on-hit handler once. On-hit handlers only change direction, so
// the nesting is at most one level deep.
func (b *Ball) CheckHit(s *Simulator, phase Phase) {
	t := b.CurrentTile(s, true)
	switch phase {
	case PhaseOnHit:
		if t.HasOnHit() {
			b.Dir = t.Deflect(b.Dir)
		}
	case PhaseBeforeHit:
		if !t.HasBeforeHit() {
			return
		}
		if t == Breakable {
			b.RemoveTile(s)
		}
		b.Reflect()
		b.StepBack()
		b.CheckHit(s, PhaseOnHit)
	}
}

// Update advances the ball by one tick.
//
// At offset 0 the ball reacts to its own cell, then probes the destination
// so walls and other balls can turn it before it moves; the probe step is
// always undone. At offset MoveTicks the step is committed.
func (b *Ball) Update(s *Simulator) {
	b.ticks++
	switch b.ticks % TicksPerCell {
	case 0:
		b.CheckHit(s, PhaseOnHit)
		b.Step()
		b.CheckHit(s, PhaseBeforeHit)
		b.StepBack()
	case MoveTicks:
		b.Step()
	}
}

// Glide returns how far (0..1) the ball has visually travelled toward the
// next cell in the current cycle. It is zero once the step is committed.
func (b *Ball) Glide() float64 {
	if b.ticks < 0 {
		return 0
	}
	t := b.ticks % TicksPerCell
	if t >= MoveTicks {
		return 0
	}
	return float64(t) / MoveTicks
}

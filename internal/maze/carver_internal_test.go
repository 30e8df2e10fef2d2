package maze

import "testing"

// drawsUntil replays carve draws from a fresh RNG with seed until it reaches
// the state of used, returning the tiles drawn.
func drawsUntil(seed uint64, used *RNG) []Tile {
	learn := NewRNG(seed)
	var tiles []Tile
	for learn.state != used.state && len(tiles) <= carveStepLimit {
		tiles = append(tiles, Select(learn, carveAlphabet))
	}
	return tiles
}

func TestCarvePathFirstDraw(t *testing.T) {
	start := PathPoint{Pos: C(2, 5), Dir: DirEast}
	first := C(3, 5)
	var forks, rotators, reversals int

	for seed := uint64(1); seed <= 400; seed++ {
		learn := NewRNG(seed)
		draw := Select(learn, carveAlphabet)
		next := Select(learn, carveAlphabet)

		g := NewGrid(17, 11, Wall)
		pending := make([]PathPoint, 0)
		carved := CarvePath(g, NewRNG(seed), start, &pending)

		switch {
		case draw.IsFork():
			forks++
			if len(pending) < 2 ||
				pending[0] != (PathPoint{Pos: first, Dir: DirNorth}) ||
				pending[1] != (PathPoint{Pos: first, Dir: DirSouth}) {
				t.Fatalf("seed %d: fork pushed %v, want left then right turn at %v", seed, pending, first)
			}
			if g.At(first) != draw {
				t.Errorf("seed %d: fork cell is %q, want %q", seed, g.At(first), draw)
			}
			want := next
			if next.IsRotator() && next.Deflect(DirEast).IsReversalOf(DirEast) {
				want = Wall
			}
			if got := g.At(C(4, 5)); got != want {
				t.Errorf("seed %d: corridor did not continue past the fork: next cell %q, want %q", seed, got, want)
			}

		case draw.IsRotator() && draw.Deflect(DirEast).IsReversalOf(DirEast):
			reversals++
			if carved != 0 || len(pending) != 0 || g.Count(Wall) != g.W*g.H {
				t.Errorf("seed %d: reversing rotator %q was written (carved %d, pending %v)", seed, draw, carved, pending)
			}

		case draw.IsRotator():
			rotators++
			want := []PathPoint{{Pos: first, Dir: draw.Deflect(DirEast)}}
			if len(pending) != 1 || pending[0] != want[0] {
				t.Errorf("seed %d: rotator pushed %v, want %v", seed, pending, want)
			}
			if carved != 1 || g.At(first) != draw || g.At(C(4, 5)) != Wall {
				t.Errorf("seed %d: rotator should end the corridor after one cell (carved %d)", seed, carved)
			}

		case draw == Wall:
			if carved != 1 || len(pending) != 0 || g.Count(Wall) != g.W*g.H {
				t.Errorf("seed %d: dead end should stop at once (carved %d, pending %v)", seed, carved, pending)
			}

		default:
			if g.At(first) != draw {
				t.Errorf("seed %d: first cell is %q, want %q", seed, g.At(first), draw)
			}
		}
	}

	if forks == 0 || rotators == 0 || reversals == 0 {
		t.Errorf("draw kinds not all exercised: forks %d, rotators %d, reversals %d", forks, rotators, reversals)
	}
}

func TestCarvePathCountsOpenedWalls(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		g := NewGrid(17, 11, Wall)
		rng := NewRNG(seed)
		pending := make([]PathPoint, 0)

		carved := CarvePath(g, rng, PathPoint{Pos: C(1, 5), Dir: DirEast}, &pending)

		// A straight corridor never revisits a cell, so every counted write
		// opened a wall except a closing dead-end wall, which is written over
		// a wall and still counts.
		opened := g.W*g.H - g.Count(Wall)
		draws := drawsUntil(seed, rng)
		if len(draws) > 0 && draws[len(draws)-1] == Wall {
			opened++
		}
		if carved != opened {
			t.Errorf("seed %d: carved %d, want %d (draws %d)", seed, carved, opened, len(draws))
		}
	}
}

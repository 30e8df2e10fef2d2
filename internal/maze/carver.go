package maze

// carveStepLimit bounds a single corridor.
const carveStepLimit = 99

// carveAlphabet is the weighted draw for each carved cell: two of each
// diagonal fork, one of each gate, breakable and rotator, one dead-end wall
// and twenty floors.
var carveAlphabet = parseAlphabet("/\\/\\-|sNZnzw" + "                    ")

func parseAlphabet(s string) []Tile {
	tiles := make([]Tile, 0, len(s))
	for _, r := range s {
		t, err := ParseTile(r)
		if err != nil {
			panic(err)
		}
		tiles = append(tiles, t)
	}
	return tiles
}

// CarvePath lays one winding corridor into g, starting one cell past start
// and moving in start.Dir. Forks push two branch points (left and right
// turns) onto pending and the corridor continues straight; rotators push a
// single branch in the direction they deflect to and end the corridor.
// A rotator that would send a ball straight back is rejected and the
// corridor ends without writing it.
//
// Returns the number of writes onto cells that were Wall.
func CarvePath(g *Grid, rng *RNG, start PathPoint, pending *[]PathPoint) int {
	dir := start.Dir & 3
	pos := start.Pos
	carved := 0

	for i := 0; i < carveStepLimit; i++ {
		pos = pos.Step(dir)
		if !g.Interior(pos) {
			break
		}

		t := Select(rng, carveAlphabet)
		stop := false
		switch {
		case t.IsFork():
			*pending = append(*pending,
				PathPoint{Pos: pos, Dir: dir.TurnLeft()},
				PathPoint{Pos: pos, Dir: dir.TurnRight()},
			)
		case t.IsRotator():
			out := t.Deflect(dir)
			if out.IsReversalOf(dir) {
				return carved
			}
			*pending = append(*pending, PathPoint{Pos: pos, Dir: out})
			stop = true
		case t == Wall:
			stop = true
		}

		if g.At(pos) == Wall {
			carved++
		}
		g.Set(pos, t)
		if stop {
			break
		}
	}
	return carved
}

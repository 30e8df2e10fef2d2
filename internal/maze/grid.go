package maze

import (
	"fmt"
	"strings"
)

// Grid is the maze as a rectangular array of tiles.
// Cells are stored in row-major order: index = y*W + x.
//
// Reads and writes wrap coordinates modulo the grid size, matching the
// character-grid host the game originally ran on: a probe one cell past the
// right edge reads the left edge. Use InBounds or Interior to avoid aliasing.
type Grid struct {
	W     int
	H     int
	Cells []Tile
}

// NewGrid creates a grid with every cell set to fill.
func NewGrid(w, h int, fill Tile) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]Tile, w*h),
	}
	if fill != Floor {
		for i := range g.Cells {
			g.Cells[i] = fill
		}
	}
	return g
}

// ParseGrid builds a grid from rows of stored symbols.
// Short rows are padded with Floor.
func ParseGrid(rows []string) (*Grid, error) {
	h := len(rows)
	w := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("maze: empty grid")
	}
	g := NewGrid(w, h, Floor)
	for y, row := range rows {
		for x, r := range []rune(row) {
			t, err := ParseTile(r)
			if err != nil {
				return nil, fmt.Errorf("maze: cell %v: %w", C(x, y), err)
			}
			g.Set(C(x, y), t)
		}
	}
	return g, nil
}

// index converts a coordinate to a flat array index, wrapping out-of-range values.
func (g *Grid) index(c Coord) int {
	return Wrap(c.Y, 0, g.H)*g.W + Wrap(c.X, 0, g.W)
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Interior returns true if the coordinate is inside the 1-cell border.
func (g *Grid) Interior(c Coord) bool {
	return c.X >= 1 && c.X <= g.W-2 && c.Y >= 1 && c.Y <= g.H-2
}

// At returns the tile at the given coordinate.
func (g *Grid) At(c Coord) Tile {
	return g.Cells[g.index(c)]
}

// Set writes a tile at the given coordinate.
func (g *Grid) Set(c Coord, t Tile) {
	g.Cells[g.index(c)] = t
}

// Toggle switches the tile at c to its toggle target.
// Returns false if the tile does not toggle.
func (g *Grid) Toggle(c Coord) bool {
	next, ok := g.At(c).Toggled()
	if !ok {
		return false
	}
	g.Set(c, next)
	return true
}

// ToggleAll switches every toggleable tile and returns how many changed.
func (g *Grid) ToggleAll() int {
	n := 0
	for i, t := range g.Cells {
		if next, ok := t.Toggled(); ok {
			g.Cells[i] = next
			n++
		}
	}
	return n
}

// Toggleable returns the coordinates of every switchable tile.
func (g *Grid) Toggleable() []Coord {
	return g.Find(func(t Tile) bool {
		_, ok := t.Toggled()
		return ok
	})
}

// Goals returns the coordinates of every Goal tile.
func (g *Grid) Goals() []Coord {
	return g.Find(func(t Tile) bool { return t == Goal })
}

// Find returns the coordinates of tiles matching pred, ordered by row then column.
func (g *Grid) Find(pred func(Tile) bool) []Coord {
	coords := make([]Coord, 0)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if pred(g.Cells[y*g.W+x]) {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, cell := range g.Cells {
		if cell == t {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the grid as rows of stored symbols.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	for y := 0; y < g.H; y++ {
		var sb strings.Builder
		for x := 0; x < g.W; x++ {
			sb.WriteRune(g.Cells[y*g.W+x].Symbol())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns the grid as newline-separated rows of symbols.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Package maze provides the Maztic level generator and ball reflection simulator.
// This package is UI-agnostic and deterministic: a level is a grid of tiles plus
// ball start placements, and every trajectory is reproducible from it.
package maze

import (
	"fmt"
	"strings"
)

// Dir is one of the four cardinal directions, integer-coded 0..3.
type Dir uint8

const (
	DirEast Dir = iota
	DirSouth
	DirWest
	DirNorth
)

// dirOffsets is indexed by Dir. Y increases downward (screen coordinates).
var dirOffsets = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirEast:
		return "East"
	case DirSouth:
		return "South"
	case DirWest:
		return "West"
	case DirNorth:
		return "North"
	default:
		return "Unknown"
	}
}

// ParseDir parses a direction name or its first letter, case-insensitively.
func ParseDir(s string) (Dir, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "east", "e":
		return DirEast, true
	case "south", "s":
		return DirSouth, true
	case "west", "w":
		return DirWest, true
	case "north", "n":
		return DirNorth, true
	default:
		return 0, false
	}
}

// Delta returns the (dx, dy) offset for moving one cell in this direction.
func (d Dir) Delta() (dx, dy int) {
	o := dirOffsets[d&3]
	return o[0], o[1]
}

// Reflect returns the opposite direction.
func (d Dir) Reflect() Dir {
	return WrapDir(int(d) + 2)
}

// TurnLeft returns the direction rotated a quarter turn counter-clockwise.
func (d Dir) TurnLeft() Dir {
	return WrapDir(int(d) - 1)
}

// TurnRight returns the direction rotated a quarter turn clockwise.
func (d Dir) TurnRight() Dir {
	return WrapDir(int(d) + 1)
}

// IsReversalOf reports whether d points exactly against other.
func (d Dir) IsReversalOf(other Dir) bool {
	return Wrap(int(other)-int(d), 0, 4) == 2
}

// WrapDir normalizes any integer to a direction.
func WrapDir(v int) Dir {
	return Dir(Wrap(v, 0, 4))
}

// Wrap maps v into [lo, hi) modulo the range width.
func Wrap(v, lo, hi int) int {
	w := hi - lo
	if w <= 0 {
		return lo
	}
	m := (v - lo) % w
	if m < 0 {
		m += w
	}
	return m + lo
}

// Coord represents a 2D coordinate on the grid.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one cell in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// BallPlace is a ball start placement: where it spawns and which way it faces.
type BallPlace struct {
	Pos Coord
	Dir Dir
}

// PathPoint is a pending branch left by the carver, resumed later.
type PathPoint struct {
	Pos Coord
	Dir Dir
}

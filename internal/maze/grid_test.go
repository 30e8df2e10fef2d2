package maze_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
)

func TestGridWrapsOutOfRange(t *testing.T) {
	g := maze.NewGrid(6, 4, maze.Floor)
	g.Set(maze.C(5, 0), maze.Wall)
	g.Set(maze.C(0, 3), maze.Goal)

	if got := g.At(maze.C(-1, 0)); got != maze.Wall {
		t.Errorf("At(-1,0) = %v, want wrap to (5,0)", got)
	}
	if got := g.At(maze.C(0, -1)); got != maze.Goal {
		t.Errorf("At(0,-1) = %v, want wrap to (0,3)", got)
	}
	if got := g.At(maze.C(6, 4)); got != g.At(maze.C(0, 0)) {
		t.Errorf("At(6,4) = %v, want wrap to (0,0)", got)
	}

	g.Set(maze.C(7, 1), maze.Breakable)
	if got := g.At(maze.C(1, 1)); got != maze.Breakable {
		t.Errorf("Set(7,1) should write (1,1), got %v", got)
	}
}

func TestGridBounds(t *testing.T) {
	g := maze.NewGrid(5, 5, maze.Wall)

	tests := []struct {
		c                  maze.Coord
		inBounds, interior bool
	}{
		{maze.C(0, 0), true, false},
		{maze.C(1, 1), true, true},
		{maze.C(3, 3), true, true},
		{maze.C(4, 2), true, false},
		{maze.C(5, 2), false, false},
		{maze.C(-1, 2), false, false},
	}

	for _, tc := range tests {
		if got := g.InBounds(tc.c); got != tc.inBounds {
			t.Errorf("InBounds(%v) = %v, want %v", tc.c, got, tc.inBounds)
		}
		if got := g.Interior(tc.c); got != tc.interior {
			t.Errorf("Interior(%v) = %v, want %v", tc.c, got, tc.interior)
		}
	}
}

func TestGridToggleRoundTrip(t *testing.T) {
	g := maze.NewGrid(7, 7, maze.Floor)
	at := maze.C(3, 3)
	g.Set(at, maze.MirrorSlash)

	if !g.Toggle(at) || g.At(at) != maze.MirrorBackslash {
		t.Fatalf("first toggle: got %v, want backslash", g.At(at))
	}
	if !g.Toggle(at) || g.At(at) != maze.MirrorSlash {
		t.Fatalf("second toggle: got %v, want slash", g.At(at))
	}
	if g.Toggle(maze.C(1, 1)) {
		t.Error("floor should not toggle")
	}
}

func TestGridToggleAll(t *testing.T) {
	g, err := maze.ParseGrid([]string{
		"wwwww",
		"w/|Zw",
		"w-\\ w",
		"wwwww",
	})
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	before := g.Clone()

	if n := g.ToggleAll(); n != 4 {
		t.Errorf("ToggleAll() = %d, want 4", n)
	}
	if g.Equal(before) {
		t.Error("grid unchanged after ToggleAll")
	}
	if got := len(g.Toggleable()); got != 4 {
		t.Errorf("Toggleable() has %d cells, want 4", got)
	}

	g.ToggleAll()
	if !g.Equal(before) {
		t.Errorf("toggling twice should restore the grid:\n%s\nwant\n%s", g, before)
	}
}

func TestParseGridRoundTrip(t *testing.T) {
	rows := []string{
		"wwwwwww",
		"w /\\ Gw",
		"w|-ZNsw",
		"w zn  w",
		"wwwwwww",
	}

	g, err := maze.ParseGrid(rows)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	if g.W != 7 || g.H != 5 {
		t.Fatalf("size = %dx%d, want 7x5", g.W, g.H)
	}

	got := g.Rows()
	for y := range rows {
		if got[y] != rows[y] {
			t.Errorf("row %d = %q, want %q", y, got[y], rows[y])
		}
	}
}

func TestParseGridPadsShortRows(t *testing.T) {
	g, err := maze.ParseGrid([]string{"www", "w"})
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}
	if g.At(maze.C(2, 1)) != maze.Floor {
		t.Errorf("padding cell = %v, want floor", g.At(maze.C(2, 1)))
	}
}

func TestParseGridErrors(t *testing.T) {
	if _, err := maze.ParseGrid(nil); err == nil {
		t.Error("expected error for empty grid")
	}
	if _, err := maze.ParseGrid([]string{"w?w"}); !errors.Is(err, maze.ErrUnresolvedTile) {
		t.Errorf("error = %v, want ErrUnresolvedTile", err)
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := maze.NewGrid(5, 5, maze.Wall)
	c := g.Clone()
	c.Set(maze.C(2, 2), maze.Floor)

	if g.At(maze.C(2, 2)) != maze.Wall {
		t.Error("modifying clone changed the original")
	}
	if g.Equal(c) {
		t.Error("grids should differ after modification")
	}
	if g.Count(maze.Wall) != 25 || c.Count(maze.Wall) != 24 {
		t.Errorf("wall counts = %d/%d, want 25/24", g.Count(maze.Wall), c.Count(maze.Wall))
	}
}

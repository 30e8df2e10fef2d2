package maze_test

import (
	"testing"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
)

func TestRNGDeterministic(t *testing.T) {
	a := maze.NewRNG(1234)
	b := maze.NewRNG(1234)

	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestRNGSetSeedResets(t *testing.T) {
	r := maze.NewRNG(99)
	first := []int{r.Intn(1000), r.Intn(1000), r.Intn(1000)}

	r.SetSeed(99)
	for i, want := range first {
		if got := r.Intn(1000); got != want {
			t.Errorf("draw %d after reseed = %d, want %d", i, got, want)
		}
	}
}

func TestRNGZeroSeedIsConsistent(t *testing.T) {
	a := maze.NewRNG(0)
	b := maze.NewRNG(0)
	if a.Next() != b.Next() {
		t.Error("unseeded generators should share the default stream")
	}
}

func TestRNGRanges(t *testing.T) {
	r := maze.NewRNG(7)

	for i := 0; i < 5000; i++ {
		if f := r.Float(); f < 0 || f >= 1 {
			t.Fatalf("Float() = %v, want [0,1)", f)
		}
		if f := r.FloatRange(0.3, 0.4); f < 0.3 || f >= 0.4 {
			t.Fatalf("FloatRange(0.3,0.4) = %v", f)
		}
		if n := r.Intn(4); n < 0 || n >= 4 {
			t.Fatalf("Intn(4) = %d", n)
		}
		if n := r.IntRange(1, 16); n < 1 || n >= 16 {
			t.Fatalf("IntRange(1,16) = %d", n)
		}
	}
}

func TestRNGEmptyRanges(t *testing.T) {
	r := maze.NewRNG(7)

	if got := r.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, want 0", got)
	}
	if got := r.IntRange(4, 4); got != 4 {
		t.Errorf("IntRange(4,4) = %d, want 4", got)
	}
	if got := r.IntRange(4, 2); got != 4 {
		t.Errorf("IntRange(4,2) = %d, want 4", got)
	}
}

func TestSelectCoversAllElements(t *testing.T) {
	r := maze.NewRNG(5)
	items := []string{"a", "b", "c"}
	seen := make(map[string]int)

	for i := 0; i < 300; i++ {
		seen[maze.Select(r, items)]++
	}
	for _, it := range items {
		if seen[it] == 0 {
			t.Errorf("element %q never selected", it)
		}
	}

	if got := maze.Select(r, []int(nil)); got != 0 {
		t.Errorf("Select(nil) = %d, want zero value", got)
	}
}

package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y) != blank {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", s.GetCell(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(20, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	s.SetColor(6, 5, 'o', ColorBrightYellow)
	if c := s.GetCell(6, 5); c.Rune != 'o' || c.Color != ColorBrightYellow {
		t.Errorf("GetCell(6, 5) = %+v", c)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColor(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.GetCell(0, 100) != blank {
		t.Error("Out of bounds reads should be blank")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColor(1, 1, 'X', ColorRed)

	s.Clear()
	if s.GetCell(1, 1) != blank {
		t.Errorf("After Clear, expected blank, got %+v", s.GetCell(1, 1))
	}

	s.Fill('#')
	if s.Get(9, 4) != '#' {
		t.Errorf("After Fill, expected '#', got %q", s.Get(9, 4))
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(2, 1, "Hello", ColorCyan)

	for i, ch := range "Hello" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorCyan {
			t.Errorf("DrawTextColor: expected %q cyan at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Clipping
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("DrawText should clip at screen edge")
	}

	// Multi-byte runes advance one cell each
	s.DrawText(0, 3, "█▒x")
	if s.Get(2, 3) != 'x' {
		t.Errorf("expected 'x' at (2, 3), got %q", s.Get(2, 3))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	if s.Get(9, 2) != 'H' || s.Get(10, 2) != 'i' {
		t.Errorf("Text not centered: row = %q", s.Row(2))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := map[[2]int]rune{{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘'}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if c := s.GetCell(3, 1); c.Rune != '─' || c.Color != ColorGray {
		t.Errorf("top edge = %+v", c)
	}
	if s.Get(1, 2) != '│' {
		t.Errorf("left edge = %q", s.Get(1, 2))
	}
	if s.Get(3, 2) != ' ' {
		t.Error("box interior should stay empty")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawTextColor(0, 1, "BBBBB", ColorRed)
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "Hello", ColorGreen)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorGreen {
		t.Error("Colors should be preserved")
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") || len(row) != 10 {
		t.Errorf("Row(2) = %q", row)
	}
	if s.Row(-1) != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", s.Row(-1))
	}
}

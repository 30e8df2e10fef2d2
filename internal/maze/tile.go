package maze

import (
	"errors"
	"fmt"
)

// Tile is the kind of a grid cell. Every kind has exactly one rule.
type Tile uint8

const (
	Floor Tile = iota
	Wall
	MirrorSlash
	MirrorBackslash
	GateVertical
	GateHorizontal
	RotatorZ
	RotatorN
	RotatorZFlip
	RotatorNFlip
	Breakable
	Goal
	// BallOccupied stands in for a cell another ball is sitting on.
	// It is produced by tile resolution only and never stored in a Grid.
	BallOccupied

	tileCount
)

// ErrUnresolvedTile is returned when a symbol or glyph has no matching rule.
var ErrUnresolvedTile = errors.New("maze: unresolved tile")

// rule is the immutable descriptor of a tile kind.
type rule struct {
	symbol   rune // stored/file symbol
	glyph    rune // display character
	facing   int  // display rotation, disambiguates shared glyphs
	obstacle bool
	toggleTo Tile
	toggles  bool
}

var rules = [tileCount]rule{
	Floor:           {symbol: ' ', glyph: ' '},
	Wall:            {symbol: 'w', glyph: 'w', obstacle: true},
	MirrorSlash:     {symbol: '/', glyph: '/', toggleTo: MirrorBackslash, toggles: true},
	MirrorBackslash: {symbol: '\\', glyph: '\\', toggleTo: MirrorSlash, toggles: true},
	GateVertical:    {symbol: '|', glyph: 'e', toggleTo: GateHorizontal, toggles: true},
	GateHorizontal:  {symbol: '-', glyph: 'e', facing: 1, toggleTo: GateVertical, toggles: true},
	RotatorZ:        {symbol: 'Z', glyph: 'Z'},
	RotatorN:        {symbol: 'N', glyph: 'Y'},
	RotatorZFlip:    {symbol: 'z', glyph: 'Z', facing: 2},
	RotatorNFlip:    {symbol: 'n', glyph: 'Y', facing: 2},
	Breakable:       {symbol: 's', glyph: 's', obstacle: true},
	Goal:            {symbol: 'G', glyph: 'G'},
	BallOccupied:    {symbol: 'b', glyph: 'b', obstacle: true},
}

// Direction maps indexed by incoming direction.
var (
	slashMap     = [4]Dir{DirNorth, DirWest, DirSouth, DirEast}
	backslashMap = [4]Dir{DirSouth, DirEast, DirNorth, DirWest}
	rotatorZMap  = [4]Dir{DirWest, DirNorth, DirSouth, DirEast}
	rotatorNMap  = [4]Dir{DirSouth, DirNorth, DirEast, DirWest}
	rotatorZFMap = [4]Dir{DirNorth, DirWest, DirEast, DirSouth}
	rotatorNFMap = [4]Dir{DirWest, DirEast, DirNorth, DirSouth}
)

// Rotators lists the four fixed-orientation rotator kinds.
var Rotators = []Tile{RotatorZ, RotatorN, RotatorZFlip, RotatorNFlip}

// String returns the tile's stored symbol as a string.
func (t Tile) String() string {
	if t >= tileCount {
		return fmt.Sprintf("Tile(%d)", uint8(t))
	}
	return string(rules[t].symbol)
}

// Symbol returns the character used to store the tile in grids and files.
func (t Tile) Symbol() rune {
	if t >= tileCount {
		return '?'
	}
	return rules[t].symbol
}

// Glyph returns the display character and its facing index (0..3).
func (t Tile) Glyph() (rune, int) {
	if t >= tileCount {
		return '?', 0
	}
	return rules[t].glyph, rules[t].facing
}

// IsObstacle reports whether the tile blocks a ball before it enters.
func (t Tile) IsObstacle() bool {
	return t < tileCount && rules[t].obstacle
}

// IsRotator reports whether the tile is one of the four rotators.
func (t Tile) IsRotator() bool {
	return t >= RotatorZ && t <= RotatorNFlip
}

// IsFork reports whether the tile is a diagonal mirror, which the carver
// treats as a branching point.
func (t Tile) IsFork() bool {
	return t == MirrorSlash || t == MirrorBackslash
}

// Toggled returns the tile this one switches to on player interaction.
func (t Tile) Toggled() (Tile, bool) {
	if t >= tileCount || !rules[t].toggles {
		return t, false
	}
	return rules[t].toggleTo, true
}

// HasOnHit reports whether the tile reacts to a ball dwelling on it.
func (t Tile) HasOnHit() bool {
	switch t {
	case Floor, Goal, Breakable:
		return false
	}
	return t < tileCount
}

// HasBeforeHit reports whether the tile must be resolved before a ball
// commits to entering it.
func (t Tile) HasBeforeHit() bool {
	switch t {
	case Wall, Breakable, BallOccupied:
		return true
	}
	return false
}

// Deflect returns the direction a ball leaves with after arriving on t
// moving in direction d (the onHit rule).
func (t Tile) Deflect(d Dir) Dir {
	d &= 3
	switch t {
	case Wall, BallOccupied:
		return d.Reflect()
	case MirrorSlash:
		return slashMap[d]
	case MirrorBackslash:
		return backslashMap[d]
	case GateVertical:
		if d%2 == 0 {
			return d.Reflect()
		}
	case GateHorizontal:
		if d%2 == 1 {
			return d.Reflect()
		}
	case RotatorZ:
		return rotatorZMap[d]
	case RotatorN:
		return rotatorNMap[d]
	case RotatorZFlip:
		return rotatorZFMap[d]
	case RotatorNFlip:
		return rotatorNFMap[d]
	}
	return d
}

// ParseTile resolves a stored symbol to its tile kind.
func ParseTile(r rune) (Tile, error) {
	for t := Tile(0); t < tileCount; t++ {
		if t == BallOccupied {
			continue
		}
		if rules[t].symbol == r {
			return t, nil
		}
	}
	return Floor, fmt.Errorf("%w: symbol %q", ErrUnresolvedTile, r)
}

// LookupGlyph resolves a displayed glyph and facing back to its tile kind,
// the way a character-grid host reads cells back.
func LookupGlyph(glyph rune, facing int) (Tile, error) {
	for t := Tile(0); t < tileCount; t++ {
		if rules[t].glyph == glyph && rules[t].facing == facing {
			return t, nil
		}
	}
	return Floor, fmt.Errorf("%w: glyph %q facing %d", ErrUnresolvedTile, glyph, facing)
}

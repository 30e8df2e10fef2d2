package maztic

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/maze"
)

// tileLook maps a tile to its on-screen rune and color.
func tileLook(t maze.Tile) (rune, core.Color) {
	switch t {
	case maze.Wall:
		return '█', core.ColorGray
	case maze.MirrorSlash:
		return '╱', core.ColorBrightCyan
	case maze.MirrorBackslash:
		return '╲', core.ColorBrightCyan
	case maze.GateVertical:
		return '┃', core.ColorMagenta
	case maze.GateHorizontal:
		return '━', core.ColorMagenta
	case maze.RotatorZ, maze.RotatorZFlip:
		return 'Z', core.ColorBlue
	case maze.RotatorN, maze.RotatorNFlip:
		return 'N', core.ColorBlue
	case maze.Breakable:
		return '▒', core.ColorOrange
	case maze.Goal:
		return '◎', core.ColorBrightGreen
	default:
		return ' ', core.ColorDefault
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		if g.genErr != nil {
			g.renderOverlay(dst, "Window too small", "Resize and press R")
		} else {
			g.renderOverlay(dst, "Window too small", "Resize to continue")
		}
		return
	}
	if g.level == nil {
		return
	}

	g.renderMap(dst)
	g.renderBalls(dst)
	g.renderFooter(dst)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d, press R to restart", g.score))
	case g.levelCleared:
		g.renderOverlay(dst, fmt.Sprintf("Level %d cleared!", g.cleared), fmt.Sprintf("Score %d", g.score))
	case g.levelFailed:
		g.renderOverlay(dst, "Time up", "The balls go back to the start")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" LEVEL %d  TIME %d  SCORE %d", g.cleared+1, g.Remaining()/maze.TicksPerCell, g.score)
	if g.cfg.Gameplay.Lives > 0 {
		hud += fmt.Sprintf("  LIVES %d", g.lives)
	}
	if g.sim != nil {
		hud += fmt.Sprintf("  FLIPS %d", g.sim.Toggles())
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderMap draws the live grid.
func (g *Game) renderMap(dst *core.Screen) {
	grid := g.sim.Grid
	for y := range grid.H {
		for x := range grid.W {
			r, c := tileLook(grid.At(maze.C(x, y)))
			dst.SetColor(g.mapRect.X+x, g.mapRect.Y+y, r, c)
		}
	}
}

// renderBalls draws each ball on its cell; a ball between cells is drawn
// hollow.
func (g *Game) renderBalls(dst *core.Screen) {
	for _, b := range g.sim.Balls {
		r := '●'
		if b.Glide() > 0 {
			r = '○'
		}
		color := core.ColorBrightYellow
		if g.sim.Grid.At(b.Pos) == maze.Goal {
			color = core.ColorBrightGreen
		}
		dst.SetColor(g.mapRect.X+b.Pos.X, g.mapRect.Y+b.Pos.Y, r, color)
	}
}

// renderFooter draws the controls line, or the toggle hint when enabled.
func (g *Game) renderFooter(dst *core.Screen) {
	y := g.mapRect.Bottom()
	if !g.showHint {
		dst.DrawTextCenteredColor(y, "SPACE flip  H hint  R restart  P pause", core.ColorGray)
		return
	}
	dst.DrawTextCenteredColor(y, g.hintText(), core.ColorYellow)
}

// hintText lists the clock readings at which the generator flipped the grid.
func (g *Game) hintText() string {
	if len(g.level.Solution) == 0 {
		return "HINT: no flips needed"
	}
	times := make([]string, len(g.level.Solution))
	for i, t := range g.level.Solution {
		times[i] = fmt.Sprint((g.level.ConvergenceTicks - t) / maze.TicksPerCell)
	}
	return "HINT: flip at TIME " + strings.Join(times, ", ")
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, boxW, 5).CenterIn(dst.Width(), dst.Height())

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCenteredColor(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2)
}

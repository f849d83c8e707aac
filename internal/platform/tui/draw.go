package tui

import (
	"fmt"

	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/level"
	"github.com/slingarcade/sling/internal/registry"
	"github.com/slingarcade/sling/internal/session"
)

// Layout constants for the play screen.
const (
	hudRows    = 1 // Status line above the playfield
	minScreenW = 40
	minScreenH = 12
)

// viewport maps world coordinates onto the playfield cells below the HUD.
type viewport struct {
	worldW, worldH float64
	cols, rows     int
	top            int
}

func newViewport(worldW, worldH float64, screenW, screenH int) viewport {
	return viewport{
		worldW: worldW,
		worldH: worldH,
		cols:   screenW,
		rows:   screenH - hudRows,
		top:    hudRows,
	}
}

// cell converts a world position to screen cell coordinates.
func (v viewport) cell(p core.Vec2) (int, int) {
	cx := int(p.X / v.worldW * float64(v.cols))
	cy := v.top + int(p.Y/v.worldH*float64(v.rows))
	return cx, cy
}

// world converts a screen cell back to the world position at its center.
// Used to translate mouse events into pointer positions.
func (v viewport) world(cx, cy int) core.Vec2 {
	wx := (float64(cx) + 0.5) * v.worldW / float64(v.cols)
	wy := (float64(cy-v.top) + 0.5) * v.worldH / float64(v.rows)
	return core.V(wx, wy)
}

// materialColors maps block materials to terminal colors.
var materialColors = map[registry.Material]core.Color{
	registry.MaterialWood:      core.ColorBrown,
	registry.MaterialStone:     core.ColorGray,
	registry.MaterialGlass:     core.ColorBrightCyan,
	registry.MaterialCardboard: core.ColorYellow,
	registry.MaterialBamboo:    core.ColorGreen,
	registry.MaterialThatch:    core.ColorBrightYellow,
	registry.MaterialClay:      core.ColorRed,
}

// stateGlyphs maps damage states to fill glyphs: the block visibly
// erodes as it takes hits.
var stateGlyphs = map[registry.DamageState]rune{
	registry.StateIntact:  '█',
	registry.StateCracked: '▓',
	registry.StateBroken:  '▒',
}

// birdGlyph picks a glyph per bird type so the roster reads at a glance.
func birdGlyph(t registry.BirdType) rune {
	switch t {
	case registry.BirdHeavy:
		return 'O'
	case registry.BirdMedium:
		return 'o'
	default:
		return '•'
	}
}

// Draw renders one snapshot into the screen buffer.
func Draw(s *core.Screen, snap *session.Snapshot) {
	s.Clear()

	if s.Width() < minScreenW || s.Height() < minScreenH {
		s.DrawTextCentered(s.Height()/2, "Terminal too small")
		return
	}

	if snap.Phase == session.PhaseMenu {
		drawMenu(s, snap)
		return
	}

	v := newViewport(snap.WorldW, snap.WorldH, s.Width(), s.Height())

	drawHUD(s, snap)
	drawGround(s, v, snap)
	drawSling(s, v, snap)
	for _, b := range snap.Blocks {
		drawBlock(s, v, b)
	}
	for _, p := range snap.Pigs {
		drawPig(s, v, p)
	}
	for _, b := range snap.Birds {
		drawBird(s, v, b)
	}
	for _, p := range snap.Trajectory {
		cx, cy := v.cell(p)
		s.SetCell(cx, cy, '·', core.ColorGray)
	}
	for _, p := range snap.Particles {
		cx, cy := v.cell(p.Pos)
		s.SetCell(cx, cy, p.Glyph, p.Color)
	}

	drawOverlay(s, snap)
}

// drawHUD renders the status line at the top of the screen.
func drawHUD(s *core.Screen, snap *session.Snapshot) {
	hud := fmt.Sprintf(" L%d %s  Score %d  Total %d  Birds %d  Pigs %d",
		snap.Level, snap.LevelName, snap.Score, snap.GlobalScore,
		snap.BirdsLeft, snap.PigsLeft)
	s.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	if snap.Paused {
		s.DrawTextColor(s.Width()-8, 0, "PAUSED", core.ColorBrightYellow)
	}
}

func drawGround(s *core.Screen, v viewport, snap *session.Snapshot) {
	_, groundRow := v.cell(core.V(0, snap.GroundTop))
	for y := groundRow; y < s.Height(); y++ {
		glyph := '▒'
		color := core.ColorGreen
		if y > groundRow {
			glyph = '░'
			color = core.ColorBrown
		}
		for x := 0; x < s.Width(); x++ {
			s.SetCell(x, y, glyph, color)
		}
	}
}

// drawSling renders the slingshot post, and the band while a bird is
// pulled back.
func drawSling(s *core.Screen, v viewport, snap *session.Snapshot) {
	ax, ay := v.cell(snap.SlingAnchor)
	_, groundRow := v.cell(core.V(0, snap.GroundTop))
	for y := ay + 1; y < groundRow; y++ {
		s.SetCell(ax, y, '║', core.ColorBrown)
	}
	s.SetCell(ax, ay, 'Y', core.ColorBrown)

	if snap.SlingLoaded {
		bx, by := v.cell(snap.SlingPos)
		drawLine(s, ax, ay, bx, by, '·', core.ColorBrown)
	}
}

func drawBlock(s *core.Screen, v viewport, b session.BlockView) {
	glyph, ok := stateGlyphs[b.State]
	if !ok {
		return
	}
	color := materialColors[b.Material]
	x0, y0 := v.cell(core.V(b.Pos.X-b.W/2, b.Pos.Y-b.H/2))
	x1, y1 := v.cell(core.V(b.Pos.X+b.W/2, b.Pos.Y+b.H/2))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.SetCell(x, y, glyph, color)
		}
	}
	// Crack decals sit on top of the fill.
	for _, offset := range b.Cracks {
		cx, cy := v.cell(b.Pos.Add(offset))
		s.SetCell(cx, cy, '╳', core.ColorWhite)
	}
}

func drawPig(s *core.Screen, v viewport, p session.PigView) {
	glyph := '@'
	if p.Boss {
		glyph = '&'
	}
	drawDisc(s, v, p.Pos, p.Radius, glyph, core.ColorBrightGreen)
}

func drawBird(s *core.Screen, v viewport, b session.BirdView) {
	color := core.ColorBrightRed
	if !b.Launched && !b.Current {
		color = core.ColorRed // Queued birds wait dimmer by the sling
	}
	drawDisc(s, v, b.Pos, b.Radius, birdGlyph(b.Type), color)
}

// drawDisc fills every cell whose world-space center lies inside the
// circle. Small bodies cover a single cell; the boss spans a few.
func drawDisc(s *core.Screen, v viewport, pos core.Vec2, r float64, glyph rune, color core.Color) {
	x0, y0 := v.cell(core.V(pos.X-r, pos.Y-r))
	x1, y1 := v.cell(core.V(pos.X+r, pos.Y+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if v.world(x, y).Dist(pos) <= r {
				s.SetCell(x, y, glyph, color)
			}
		}
	}
	// Never let a body vanish between cell centers.
	cx, cy := v.cell(pos)
	s.SetCell(cx, cy, glyph, color)
}

// drawLine walks a Bresenham line between two cells.
func drawLine(s *core.Screen, x0, y0, x1, y1 int, glyph rune, color core.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.SetCell(x0, y0, glyph, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// drawMenu renders the title screen with the level list. The selected
// level is the session's current one; up/down move it.
func drawMenu(s *core.Screen, snap *session.Snapshot) {
	layouts := level.All()
	top := s.Height()/2 - len(layouts)/2 - 2

	s.DrawTextCentered(top, "S L I N G")
	for i, layout := range layouts {
		line := fmt.Sprintf("  Level %d  %s", layout.Number, layout.Name)
		if layout.Number == snap.Level {
			line = "> " + line[2:]
		}
		x := (s.Width() - len(line)) / 2
		color := core.ColorGray
		if layout.Number == snap.Level {
			color = core.ColorBrightYellow
		}
		s.DrawTextColor(x, top+2+i, line, color)
	}
	s.DrawTextCentered(top+4+len(layouts), "enter play   up/down select   q quit")
}

// drawOverlay renders the end-of-level and end-of-run banners.
func drawOverlay(s *core.Screen, snap *session.Snapshot) {
	mid := s.Height() / 2
	switch snap.Phase {
	case session.PhaseLevelComplete:
		s.DrawTextCentered(mid-1, "LEVEL CLEAR")
		s.DrawTextCentered(mid+1, fmt.Sprintf("Score %d", snap.Score))
		s.DrawTextCentered(mid+2, "enter next level   esc menu")
	case session.PhaseGameOver:
		s.DrawTextCentered(mid-1, "GAME OVER")
		s.DrawTextCentered(mid+1, fmt.Sprintf("Total %d", snap.GlobalScore))
		s.DrawTextCentered(mid+2, "r retry   esc menu")
	case session.PhaseCompleted:
		s.DrawTextCentered(mid-1, "ALL LEVELS CLEAR")
		s.DrawTextCentered(mid+1, fmt.Sprintf("Final score %d", snap.GlobalScore))
		s.DrawTextCentered(mid+2, "enter menu")
	}
}

package cuboid

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/cuboid/internal/core"
	"github.com/vovakirdan/cuboid/internal/games/cuboid/sim"
)

const (
	hudHeight    = 2
	footerHeight = 1

	// Elevation views show heights from the fall floor up to this.
	skyZ = 3.0
)

// tileLook is the glyph and colour of a floor tile.
type tileLook struct {
	r rune
	c core.Color
}

var tileLooks = map[sim.TileKind]tileLook{
	sim.Normal: {'░', core.ColorGray},
	sim.Alt:    {'░', core.ColorOrange},
	sim.Switch: {'▒', core.ColorYellow},
	sim.Cross:  {'╳', core.ColorMagenta},
	sim.Hazard: {'▓', core.ColorBlue},
}

var blockColors = [2]core.Color{core.ColorBrightCyan, core.ColorBrightGreen}

// Render draws the current snapshot in the selected camera view.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap, ok := g.Snapshot()
	if !ok {
		msg := "No levels loaded"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, "Cuboid", msg)
		return
	}

	g.renderHUD(dst, snap)

	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	if area.W < 2*sim.Dim || area.H < sim.Dim {
		g.renderOverlay(dst, "Window too small", "Please resize terminal")
		return
	}

	switch snap.View {
	case sim.ViewFollow:
		renderFollow(dst, area, snap)
	case sim.ViewNorth:
		renderElevation(dst, area, snap, sim.North)
	case sim.ViewEast:
		renderElevation(dst, area, snap, sim.East)
	default:
		renderTop(dst, area, snap)
	}

	g.renderFooter(dst, snap)

	switch {
	case snap.GameOver:
		g.renderOverlay(dst, "All levels cleared!", fmt.Sprintf("Score: %d  R: Restart", snap.Score))
	case snap.Paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line and a separator.
func (g *Game) renderHUD(dst *core.Screen, s sim.Snapshot) {
	var hud string
	if s.HasSession {
		hud = fmt.Sprintf(" %s | Level %d/%d %s | Moves: %d | Time: %ds | Score: %d | View: %s",
			g.Title(), s.Level+1, s.LevelCount, s.LevelName, s.Moves, s.Seconds, s.Score, s.View)
	} else {
		hud = fmt.Sprintf(" %s | Tick: %d | View: %s", g.Title(), s.Tick, s.View)
	}
	dst.DrawTextWithColor(0, 0, hud, core.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderFooter draws the control hint, naming the active block when split.
func (g *Game) renderFooter(dst *core.Screen, s sim.Snapshot) {
	hint := " ←↑↓→: Tip | V: View | P: Pause | R: Restart | Esc: Menu"
	if !s.Merged {
		hint = fmt.Sprintf(" [%c] ←↑↓→: Tip | Space: Swap | V: View | R: Restart", 'A'+s.Chosen)
	}
	dst.DrawTextWithColor(0, dst.Height()-1, hint, core.ColorGray)
}

// plan maps ground coordinates of the top and follow views onto a screen
// area. Tile (x, y) covers columns [ox+x*cw, ox+(x+1)*cw) and north is up.
type plan struct {
	area   core.Rect
	ox, oy int
	cw, ch int
}

// cells returns the screen rectangle covered by a unit square centred on
// (x, y), clipped to the plan area.
func (p plan) cells(x, y float64) core.Rect {
	x0 := p.ox + int(math.Round(x*float64(p.cw)))
	y0 := p.oy + int(math.Round((sim.Dim-1-y)*float64(p.ch)))
	return core.NewRect(x0, y0, p.cw, p.ch).Intersect(p.area)
}

func (p plan) draw(dst *core.Screen, s sim.Snapshot) {
	for x := 0; x < sim.Dim; x++ {
		for y := 0; y < sim.Dim; y++ {
			look, ok := tileLooks[s.Grid.At(sim.C(x, y))]
			if !ok {
				continue
			}
			dst.DrawRect(p.cells(float64(x), float64(y)), look.r, look.c)
		}
	}
	for _, i := range drawOrder(s, func(b sim.BlockView) float64 { return b.Pos.Z() }) {
		b := s.Blocks[i]
		r, c := blockLook(s, i)
		dst.DrawRect(p.cells(b.Pos.X(), b.Pos.Y()), r, c)
	}
}

// renderTop draws the whole board from above, centred in the area.
func renderTop(dst *core.Screen, area core.Rect, s sim.Snapshot) {
	cw, ch := 4, 2
	if area.W < sim.Dim*cw || area.H < sim.Dim*ch {
		cw, ch = 2, 1
	}
	p := plan{
		area: area,
		ox:   area.X + (area.W-sim.Dim*cw)/2,
		oy:   area.Y + (area.H-sim.Dim*ch)/2,
		cw:   cw,
		ch:   ch,
	}
	p.draw(dst, s)
}

// renderFollow draws a close-up from above centred on the moving block.
func renderFollow(dst *core.Screen, area core.Rect, s sim.Snapshot) {
	focus := s.Blocks[s.Chosen].Pos
	if s.Merged {
		focus = s.Blocks[0].Pos.Add(s.Blocks[1].Pos).Mul(0.5)
	}
	cw, ch := 8, 4
	cx, cy := area.Center()
	p := plan{
		area: area,
		ox:   cx - int(math.Round((focus.X()+0.5)*float64(cw))),
		oy:   cy - int(math.Round((sim.Dim-1-focus.Y()+0.5)*float64(ch))),
		cw:   cw,
		ch:   ch,
	}
	p.draw(dst, s)
}

// renderElevation draws a side view looking in direction d. Looking north
// the horizontal axis is x; looking east it is y with north on the left.
func renderElevation(dst *core.Screen, area core.Rect, s sim.Snapshot, d sim.Dir) {
	cw := area.W / sim.Dim
	if cw > 4 {
		cw = 4
	}
	ch := 2
	if area.H < int(skyZ)*ch+2 {
		ch = 1
	}
	ox := area.X + (area.W-sim.Dim*cw)/2
	top := area.Y + (area.H-int(skyZ)*ch-1)/2
	floorRow := top + int(skyZ)*ch

	// column maps a ground coordinate onto the horizontal screen axis;
	// depth grows away from the viewer.
	column := func(x, y float64) (col, depth float64) {
		if d == sim.North {
			return x, y
		}
		return sim.Dim - 1 - y, x
	}

	// Floor: for every column the nearest solid tile.
	for u := 0; u < sim.Dim; u++ {
		for v := 0; v < sim.Dim; v++ {
			c := sim.C(u, v)
			if d == sim.East {
				c = sim.C(v, sim.Dim-1-u)
			}
			look, ok := tileLooks[s.Grid.At(c)]
			if !ok {
				continue
			}
			dst.DrawRect(core.NewRect(ox+u*cw, floorRow, cw, 1).Intersect(area), look.r, look.c)
			break
		}
	}

	// Farther blocks first so the nearer one covers them.
	order := drawOrder(s, func(b sim.BlockView) float64 {
		_, depth := column(b.Pos.X(), b.Pos.Y())
		return -depth
	})
	for _, i := range order {
		b := s.Blocks[i]
		col, _ := column(b.Pos.X(), b.Pos.Y())
		x0 := ox + int(math.Round(col*float64(cw)))
		y0 := top + int(math.Round((skyZ-b.Pos.Z()-sim.BlockScale)*float64(ch)))
		y1 := top + int(math.Round((skyZ-b.Pos.Z()+sim.BlockScale)*float64(ch)))
		r, c := blockLook(s, i)
		dst.DrawRect(core.NewRect(x0, y0, cw, y1-y0).Intersect(area), r, c)
	}
}

// drawOrder returns block indices sorted by ascending key.
func drawOrder(s sim.Snapshot, key func(sim.BlockView) float64) []int {
	order := []int{0, 1}
	sort.SliceStable(order, func(a, b int) bool {
		return key(s.Blocks[order[a]]) < key(s.Blocks[order[b]])
	})
	return order
}

// blockLook picks the glyph and colour of block i. The block the player
// steers while split is highlighted.
func blockLook(s sim.Snapshot, i int) (rune, core.Color) {
	switch {
	case s.Blocks[i].Falling:
		return '▓', core.ColorGray
	case !s.Merged && s.Chosen == i:
		return '█', core.ColorBrightYellow
	default:
		return '█', blockColors[i]
	}
}

// renderOverlay draws a centred message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := core.CenteredRect(dst.Width(), dst.Height(), maxLen+4, 5)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorGray)
}

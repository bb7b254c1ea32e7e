package attract

import (
	"fmt"
	"math"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

// Glyphs
const (
	ObstacleChar     = '▓'
	TargetChar       = '•'
	SpecialChar      = '◆'
	ChaserChar       = 'M'
	ScaredChaserChar = 'm'
	SeekerClosedChar = 'O'
	ParticleChar     = '·'
)

// Minimum screen size for the arena view.
const (
	minScreenW = 30
	minScreenH = 12
)

// Render draws the arena scaled to the screen, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	sw, sh := dst.Width(), dst.Height()
	if sw < minScreenW || sh < minScreenH {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)

	frame := core.NewRect(0, 1, sw, sh-1)
	dst.DrawBox(frame)
	inner := core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2)
	view := newViewport(g.world.Arena.Min, g.world.Arena.Max, inner)

	g.renderArena(dst, view)

	if g.world.Message != "" {
		dst.DrawTextCentered(inner.Y+1, g.world.Message)
	}
	g.renderOverlays(dst, inner)
}

// viewport maps arena units onto a block of screen cells.
type viewport struct {
	min, span float64
	area      core.Rect
}

func newViewport(lo, hi float64, area core.Rect) viewport {
	return viewport{min: lo, span: hi - lo, area: area}
}

// cell converts an arena point to screen coordinates.
func (v viewport) cell(p core.Vec) (int, int) {
	fx := (p.X - v.min) / v.span
	fy := (p.Y - v.min) / v.span
	x := v.area.X + int(math.Round(fx*float64(v.area.W-1)))
	y := v.area.Y + int(math.Round(fy*float64(v.area.H-1)))
	return core.Clamp(x, v.area.X, v.area.Right()-1), core.Clamp(y, v.area.Y, v.area.Bottom()-1)
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	hud := fmt.Sprintf(" %s  SCORE %d  HIGH %d", g.Title(), w.Score, w.HighScore)
	if w.Power {
		hud += fmt.Sprintf("  POWER %ds", w.PowerRemaining)
	}
	dst.DrawText(0, 0, hud)
}

func (g *Game) renderArena(dst *core.Screen, view viewport) {
	w := g.world

	for _, o := range w.Arena.Obstacles {
		x0, y0 := view.cell(core.V(o.X, o.Y))
		x1, y1 := view.cell(core.V(o.X+o.Width, o.Y+o.Height))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dst.SetColored(x, y, ObstacleChar, o.Color)
			}
		}
	}

	for _, p := range w.Particles.Items() {
		x, y := view.cell(p.Pos)
		dst.SetColored(x, y, ParticleChar, p.Color)
	}

	for _, t := range w.Targets {
		x, y := view.cell(t.Pos)
		if t.Special {
			dst.SetColored(x, y, SpecialChar, core.ColorPink)
		} else {
			dst.SetColored(x, y, TargetChar, core.ColorYellow)
		}
	}

	for _, c := range w.Chasers {
		x, y := view.cell(c.Pos)
		if c.Scared {
			dst.SetColored(x, y, ScaredChaserChar, core.ColorBlue)
		} else {
			dst.SetColored(x, y, ChaserChar, c.Color)
		}
	}

	x, y := view.cell(w.Seeker.Pos)
	dst.SetColored(x, y, seekerGlyph(w.Seeker.Dir, w.MouthOpen), core.ColorBrightYellow)
}

// seekerGlyph draws the mouth opening toward the heading.
func seekerGlyph(dir core.Vec, open bool) rune {
	if !open {
		return SeekerClosedChar
	}
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		if dir.X < 0 {
			return '>'
		}
		return '<'
	}
	if dir.Y < 0 {
		return 'v'
	}
	return '^'
}

func (g *Game) renderOverlays(dst *core.Screen, inner core.Rect) {
	switch {
	case !g.running:
		lines := []string{g.Title(), "", "Fresh treats, hungry chasers", "", "Press ENTER to start"}
		boxW := 34
		boxH := len(lines) + 2
		box := core.NewRect(inner.X+(inner.W-boxW)/2, inner.Y+(inner.H-boxH)/2, boxW, boxH)
		dst.DrawRect(box, ' ')
		dst.DrawBox(box)
		for i, line := range lines {
			dst.DrawTextCentered(box.Y+1+i, line)
		}
	case g.paused:
		dst.DrawTextCentered(inner.Y+inner.H/2, " PAUSED ")
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

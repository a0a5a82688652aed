package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/keepyuppy/balloon"
	"github.com/milk9111/keepyuppy/common"
	"github.com/milk9111/keepyuppy/prefabs"
	"github.com/milk9111/keepyuppy/scoring"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	hudScale       = 2
	windArrowMax   = 120.0
	windArrowY     = 70.0
	stringLength   = 60.0
	stringSegments = 8
)

// Palette is the resolved set of draw colors. Anything the tuning file
// leaves out falls back to a named color.
type Palette struct {
	Sky     color.Color
	Ground  color.Color
	Balloon color.Color
	Outline color.Color
	Contact color.Color
	Wind    color.Color
}

func NewPalette(spec prefabs.PaletteSpec) Palette {
	return Palette{
		Sky:     spec.Sky.Or(colornames.Skyblue),
		Ground:  spec.Ground.Or(colornames.Forestgreen),
		Balloon: spec.Balloon.Or(colornames.Crimson),
		Outline: spec.Outline.Or(colornames.Midnightblue),
		Contact: spec.Contact.Or(colornames.Gold),
		Wind:    spec.Wind.Or(colornames.Steelblue),
	}
}

type HUD struct {
	face ebtext.Face
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, align ebtext.Align, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	ebtext.Draw(screen, s, h.face, op)
}

func (g *Game) Draw(screen *ebiten.Image) {
	p := g.session.Physics
	info := p.RenderInfo()

	screen.Fill(g.palette.Sky)
	groundY := float32(p.GroundY())
	vector.FillRect(screen, 0, groundY, float32(p.Width()), float32(p.Height())-groundY, g.palette.Ground, false)

	if wind, ok := p.WindIndicator(); ok {
		g.drawWind(screen, wind)
	}

	drawBalloon(screen, info, g.palette, g.hitFlash > 0)

	radius := g.session.ContactRadius()
	for _, c := range g.session.LastContacts() {
		r := c.Radius
		if r <= 0 {
			r = radius
		}
		vector.StrokeCircle(screen, float32(c.Pos.X), float32(c.Pos.Y), float32(r), 3, g.palette.Contact, true)
	}

	g.drawHUD(screen)

	if g.debug {
		v := p.Velocity()
		wind := "calm"
		if w, ok := p.WindIndicator(); ok {
			wind = fmt.Sprintf("dir %.2f str %.0f left %.0f%%", w.Direction, w.Strength, w.Remaining*100)
		}
		src := "mouse"
		if g.demo {
			src = "autopilot"
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Vel: (%.1f, %.1f)    Wind: %s    Source: %s",
			g.frames, ebiten.ActualFPS(), v.X, v.Y, wind, src))
	}
}

func drawBalloon(screen *ebiten.Image, info balloon.RenderInfo, pal Palette, flash bool) {
	cx := info.Pos.X + info.Wobble
	cy := info.Pos.Y
	r := info.Radius

	if info.Popped {
		// burst: short rays where the balloon was
		for i := range 10 {
			a := float64(i) * (2 * math.Pi / 10)
			in := cp.Vector{X: cx, Y: cy}.Add(cp.ForAngle(a).Mult(r * 0.4))
			out := cp.Vector{X: cx, Y: cy}.Add(cp.ForAngle(a).Mult(r * 1.1))
			vector.StrokeLine(screen, float32(in.X), float32(in.Y), float32(out.X), float32(out.Y), 3, pal.Balloon, true)
		}
		return
	}

	// string hangs from the knot and sways opposite the wobble
	prev := cp.Vector{X: cx, Y: cy + r}
	for i := 1; i <= stringSegments; i++ {
		t := float64(i) / stringSegments
		cur := cp.Vector{
			X: cx - info.Wobble*t + math.Sin(t*math.Pi*2)*4,
			Y: cy + r + t*stringLength,
		}
		ebitenutil.DrawLine(screen, prev.X, prev.Y, cur.X, cur.Y, pal.Outline)
		prev = cur
	}

	fill := pal.Balloon
	if flash {
		fill = colornames.White
	}
	vector.FillCircle(screen, float32(cx), float32(cy), float32(r), fill, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 2, pal.Outline, true)

	// highlight
	vector.FillCircle(screen, float32(cx-r*0.35), float32(cy-r*0.4), float32(r*0.15), color.NRGBA{R: 255, G: 255, B: 255, A: 140}, true)
}

// drawWind draws an arrow along the gust direction, fading as the gust
// runs out.
func (g *Game) drawWind(screen *ebiten.Image, w balloon.WindIndicator) {
	maxStrength := g.spec.Gust.StrengthMax
	if maxStrength <= 0 {
		maxStrength = w.Strength
	}
	length := windArrowMax * math.Min(1, w.Strength/maxStrength)

	alpha := common.Lerp(0.2, 1, float32(w.Remaining))
	clr := fade(g.palette.Wind, alpha)

	center := cp.Vector{X: g.session.Physics.Width() / 2, Y: windArrowY}
	dir := cp.ForAngle(w.Direction)
	tail := center.Sub(dir.Mult(length / 2))
	tip := center.Add(dir.Mult(length / 2))
	vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), float32(tip.X), float32(tip.Y), 4, clr, true)

	for _, side := range []float64{-1, 1} {
		head := tip.Sub(cp.ForAngle(w.Direction + side*math.Pi/6).Mult(18))
		vector.StrokeLine(screen, float32(tip.X), float32(tip.Y), float32(head.X), float32(head.Y), 4, clr, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session.Score
	w := g.session.Physics.Width()
	h := g.session.Physics.Height()
	ink := g.palette.Outline

	g.hud.drawText(screen, fmt.Sprintf("TIME %s", scoring.FormatTime(s.Current())), 20, 20, ebtext.AlignStart, ink)
	g.hud.drawText(screen, fmt.Sprintf("HITS %d", s.Hits()), 20, 50, ebtext.AlignStart, ink)
	g.hud.drawText(screen, fmt.Sprintf("BEST %s (%d hits)", scoring.FormatTime(s.Best()), s.BestHits()), w-20, 20, ebtext.AlignEnd, ink)

	if g.demo {
		g.hud.drawText(screen, "DEMO", w-20, 50, ebtext.AlignEnd, ink)
	}

	if !g.session.Running() {
		g.hud.drawText(screen, "POP!", w/2, h/2-60, ebtext.AlignCenter, ink)
		if g.newBest {
			g.hud.drawText(screen, "NEW BEST!", w/2, h/2-20, ebtext.AlignCenter, ink)
		}
		g.hud.drawText(screen, "press SPACE or R to go again", w/2, h/2+20, ebtext.AlignCenter, ink)
	}
}

func fade(c color.Color, alpha float32) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float32(n.A) * alpha)
	return n
}

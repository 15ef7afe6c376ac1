package page

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/sprout"
)

var (
	background  = sprout.ColorRGB(14, 17, 22)
	cardFill    = sprout.ColorRGB(24, 29, 38)
	cardEdge    = sprout.ColorRGB(52, 60, 74)
	cardGlow    = sprout.ColorRGB(0, 255, 170)
	textColor   = sprout.ColorRGB(220, 226, 235)
	mutedColor  = sprout.ColorRGB(140, 150, 165)
	accentColor = sprout.ColorRGB(0, 200, 140)
	navFill     = sprout.ColorRGB(18, 22, 29)
	overlayDim  = sprout.Color{A: 0.6}
)

// DrawBackground fills the screen and draws the page content below the
// growth layer.
func (p *Page) DrawBackground(dst *ebiten.Image, f *Fonts) {
	dst.Fill(background.RGBA())
	off := sprout.Vec2{X: -p.scroll.X, Y: -p.scroll.Y}
	for _, it := range p.items {
		if it.Fixed {
			continue
		}
		r := it.Rect.Translate(off)
		if r.Bottom() < 0 || r.Y > p.vh {
			continue
		}
		p.drawItem(dst, f, it, r)
	}
}

// DrawForeground draws the navigation bar and the dialog above the growth
// layer.
func (p *Page) DrawForeground(dst *ebiten.Image, f *Fonts) {
	fillRect(dst, sprout.Rect{Width: p.vw, Height: navHeight}, navFill)
	for _, it := range p.items {
		if it.El.Kind == sprout.KindLink && it.Action == ActionNavigate {
			c := mutedColor
			if it.Target == p.route {
				c = accentColor
			}
			drawText(dst, f.Body, it.Title, it.Rect.X+12, it.Rect.Y+7, c)
		}
	}
	if p.dialog == nil {
		return
	}
	fillRect(dst, sprout.Rect{Width: p.vw, Height: p.vh}, overlayDim)
	for _, it := range p.dialog.Items {
		p.drawItem(dst, f, it, it.Rect)
	}
	r := p.dialog.Panel.Rect
	y := r.Y + 2*dialogPadding + headingH
	for _, l := range p.dialog.Lines {
		drawText(dst, f.Body, l, r.X+dialogPadding, y, textColor)
		y += lineHeight(f.Body)
	}
}

func (p *Page) drawItem(dst *ebiten.Image, f *Fonts, it *Item, r sprout.Rect) {
	switch it.El.Kind {
	case sprout.KindCard:
		fillRect(dst, r, cardFill)
		edge := cardEdge
		if g := it.Glow(); g > 0 {
			edge = mixColor(cardEdge, cardGlow, g)
		}
		strokeRect(dst, r, 1+float32(it.Glow()), edge)
		y := r.Y + 86
		for _, l := range it.Body {
			drawText(dst, f.Small, l, r.X+16, y, mutedColor)
			y += lineHeight(f.Small) + 2
		}
	case sprout.KindPanel:
		fillRect(dst, r, cardFill)
		strokeRect(dst, r, 1, accentColor)
	case sprout.KindHeading:
		face := f.Heading
		if it.El.Parent != nil {
			face = f.Title
		}
		drawText(dst, face, it.Title, r.X, r.Y, textColor)
	case sprout.KindBadge:
		strokeRect(dst, r, 1, accentColor)
		drawText(dst, f.Small, it.Title, r.X+8, r.Y+4, accentColor)
	case sprout.KindButton:
		fillRect(dst, r, accentColor.WithAlpha(0.15))
		strokeRect(dst, r, 1, accentColor)
		drawText(dst, f.Body, it.Title, r.X+12, r.Y+7, textColor)
	case sprout.KindLink:
		if it.Action == ActionNavigate {
			return
		}
		drawText(dst, f.Body, it.Title, r.X+12, r.Y+7, accentColor)
	case sprout.KindWord:
		drawText(dst, f.Body, it.Title, r.X, r.Y, textColor)
	}
}

func fillRect(dst *ebiten.Image, r sprout.Rect, c sprout.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), true)
}

func strokeRect(dst *ebiten.Image, r sprout.Rect, width float32, c sprout.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), width, c.RGBA(), true)
}

func drawText(dst *ebiten.Image, face *text.GoTextFace, s string, x, y float64, c sprout.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.LineSpacing = lineHeight(face)
	text.Draw(dst, s, face, op)
}

func mixColor(a, b sprout.Color, t float64) sprout.Color {
	return sprout.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// Outline draws item boxes onto a growth surface. Headless snapshots use it
// in place of the full page.
func (p *Page) Outline(s sprout.Surface) {
	off := sprout.Vec2{X: -p.scroll.X, Y: -p.scroll.Y}
	pts := []sprout.Vec2{{}, {X: p.vw}, {X: p.vw, Y: p.vh}, {Y: p.vh}}
	s.FillPolygon(pts, background)
	for _, it := range p.items {
		if it.El.Kind == sprout.KindWord {
			continue
		}
		r := it.Rect
		if !it.Fixed {
			r = r.Translate(off)
		}
		pts = append(pts[:0],
			sprout.Vec2{X: r.X, Y: r.Y}, sprout.Vec2{X: r.Right(), Y: r.Y},
			sprout.Vec2{X: r.Right(), Y: r.Bottom()}, sprout.Vec2{X: r.X, Y: r.Bottom()})
		switch it.El.Kind {
		case sprout.KindCard, sprout.KindPanel:
			s.FillPolygon(pts, cardFill)
			s.StrokePolygon(pts, 1, mixColor(cardEdge, cardGlow, it.Glow()))
		default:
			s.StrokePolygon(pts, 1, mutedColor)
		}
	}
}

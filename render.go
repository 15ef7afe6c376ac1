package sprout

import "math"

// Pulse marker styling, drawn as three stacked discs.
const (
	pulseHaloRadius = 8
	pulseHaloAlpha  = 0.1
	pulseCoreRadius = 4
	pulseCoreAlpha  = 0.6
	pulseDotRadius  = 1.5
)

// Skyline styling.
var (
	buildingFill = Color{5.0 / 255, 15.0 / 255, 20.0 / 255, 0.95}
	roofFill     = Color{10.0 / 255, 25.0 / 255, 35.0 / 255, 0.95}
	leafColor    = ColorRGB(50, 255, 50)
)

// Renderer turns trees into draw calls on a Surface. It keeps scratch
// buffers between frames and is not safe for concurrent use.
type Renderer struct {
	// Tilt rotates organic leaves, in radians. It follows scroll velocity.
	Tilt float64

	local []Vec2
	world []Vec2
}

// Render clears s and draws every tree. Page coordinates are converted to
// viewport coordinates by subtracting scroll.
func (r *Renderer) Render(s Surface, trees []*Tree, scroll Vec2) {
	s.Clear()
	for _, t := range trees {
		switch t.Variant.Family {
		case FamilyOrganic:
			r.drawOrganic(s, t, scroll)
		case FamilySkyline:
			r.drawSkyline(s, t, scroll)
		default:
			r.drawCircuit(s, t, scroll)
		}
	}
}

func (r *Renderer) drawCircuit(s Surface, t *Tree, scroll Vec2) {
	v := t.Variant
	for _, seg := range t.Segments {
		if seg.Progress <= 0 {
			continue
		}
		a, b := seg.Start.Sub(scroll), seg.Tip().Sub(scroll)
		s.StrokeLine(a, b, v.strokeWidth(seg), v.Color)
		if seg.Drawn() && seg.IsLeaf() && seg.Depth >= 1 && v.DotRadius > 0 {
			s.FillCircle(b, v.DotRadius, v.Color)
		}
	}
	for _, p := range t.Pulses.Alive() {
		pos := p.Position().Sub(scroll)
		s.FillCircle(pos, pulseHaloRadius, v.Color.WithAlpha(pulseHaloAlpha))
		s.FillCircle(pos, pulseCoreRadius, v.Color.WithAlpha(pulseCoreAlpha))
		s.FillCircle(pos, pulseDotRadius, ColorWhite)
	}
}

// organicColor returns the stroke colour for seg. Roots are bark brown; stems
// get greener towards the tips.
func organicColor(v *Variant, seg *Segment) Color {
	if seg.Edge == EdgeBottom {
		return barkRoot
	}
	remaining := v.MaxDepth - seg.Depth
	c := v.Color
	c.G = math.Max(0, c.G-float64(remaining)*15/255)
	return c
}

func (r *Renderer) drawOrganic(s Surface, t *Tree, scroll Vec2) {
	v := t.Variant
	for _, seg := range t.Segments {
		if seg.Progress <= 0 {
			continue
		}
		s.StrokeLine(seg.Start.Sub(scroll), seg.Tip().Sub(scroll), v.strokeWidth(seg), organicColor(v, seg))
	}
	for _, seg := range t.Segments {
		if !seg.Drawn() || !leafCarrier(seg) {
			continue
		}
		g := t.LeafGlow(seg)
		m := translateRotate(seg.End.Sub(scroll), seg.Heading+r.Tilt)
		r.local = ellipsePoints(r.local, 7, 4.5, 12)
		r.world = transformPoints(r.world, r.local, m)
		s.FillPolygon(r.world, leafColor.WithAlpha(0.25*g))
		r.local = ellipsePoints(r.local, 5, 3, 12)
		r.world = transformPoints(r.world, r.local, m)
		s.FillPolygon(r.world, leafColor.WithAlpha(0.8+0.2*g))
	}
}

func (r *Renderer) drawSkyline(s Surface, t *Tree, scroll Vec2) {
	stroke := t.Variant.Width
	for _, seg := range t.Segments {
		b := seg.Building
		if b == nil {
			continue
		}
		h := b.Height * seg.Progress
		if h < 1 {
			continue
		}
		// Local frame: x across the building, -y up away from the trigger.
		m := translateRotate(seg.Start.Sub(scroll), seg.Heading+math.Pi/2)
		neon := hsla(b.Hue, 1, 0.65, 0.9)
		w := b.Width

		r.polygon(s, m, rectPoints(r.local, -w/2, -h, w, h), buildingFill, neon, stroke)
		r.drawWindows(s, m, b, h, neon)
		if b.Door && h > 10 {
			dw := math.Min(w*0.4, 12)
			r.polygon(s, m, rectPoints(r.local, -dw/2, -10, dw, 10), Color{}, neon, 1)
			if dw >= 8 {
				s.StrokeLine(transformPoint(m, Vec2{0, -10}), transformPoint(m, Vec2{0, 0}), 1, neon)
			}
		}
		r.drawRoof(s, m, b, h, neon, stroke)
	}
}

func (r *Renderer) drawWindows(s Surface, m [6]float64, b *Building, h float64, c Color) {
	if b.WinRows == 0 {
		return
	}
	cellW := b.Width / float64(b.WinCols)
	cellH := b.TargetHeight / float64(b.WinRows)
	ww, wh := cellW*0.4, cellH*0.4
	for row := 0; row < b.WinRows; row++ {
		if row == 0 && b.Door {
			continue
		}
		y := -(float64(row)+1)*cellH + (cellH-wh)/2
		if y < -h {
			break
		}
		for col := 0; col < b.WinCols; col++ {
			x := -b.Width/2 + float64(col)*cellW + (cellW-ww)/2
			r.polygon(s, m, rectPoints(r.local, x, y, ww, wh), Color{}, c.WithAlpha(c.A*0.8), 0.8)
		}
	}
}

func (r *Renderer) drawRoof(s Surface, m [6]float64, b *Building, h float64, c Color, stroke float64) {
	w := b.Width
	top := -h
	switch b.Roof {
	case RoofTriangle:
		r.local = append(r.local[:0], Vec2{-w / 2, top}, Vec2{0, top - w*0.4}, Vec2{w / 2, top})
		r.polygon(s, m, r.local, roofFill, c, stroke)
	case RoofStepped:
		r.polygon(s, m, rectPoints(r.local, -w*0.3, top-6, w*0.6, 6), roofFill, c, stroke)
	case RoofAntenna:
		s.StrokeLine(transformPoint(m, Vec2{0, top}), transformPoint(m, Vec2{0, top - 12}), 1, c)
		s.FillCircle(transformPoint(m, Vec2{0, top - 12}), 1.5, c)
	case RoofSlant:
		r.local = append(r.local[:0], Vec2{-w / 2, top}, Vec2{w / 2, top - 8}, Vec2{w / 2, top})
		r.polygon(s, m, r.local, roofFill, c, stroke)
	default:
		s.StrokeLine(transformPoint(m, Vec2{-w/2 - 2, top}), transformPoint(m, Vec2{w/2 + 2, top}), stroke, c)
	}
}

// polygon transforms local points by m, fills them with fill (skipped when
// transparent) and outlines them with edge.
func (r *Renderer) polygon(s Surface, m [6]float64, local []Vec2, fill, edge Color, width float64) {
	r.local = local
	r.world = transformPoints(r.world, local, m)
	if fill.A > 0 {
		s.FillPolygon(r.world, fill)
	}
	s.StrokePolygon(r.world, width, edge)
}

// hsla converts hue in degrees and saturation/lightness in [0, 1].
func hsla(h, sat, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	chroma := (1 - math.Abs(2*l-1)) * sat
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - chroma/2
	var r, g, b float64
	switch {
	case h < 60:
		r, g = chroma, x
	case h < 120:
		r, g = x, chroma
	case h < 180:
		g, b = chroma, x
	case h < 240:
		g, b = x, chroma
	case h < 300:
		r, b = x, chroma
	default:
		r, b = chroma, x
	}
	return Color{r + m, g + m, b + m, a}
}

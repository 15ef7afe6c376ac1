package sprout

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- White pixel singleton (ebiten draws on one goroutine) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for untextured polygon fills.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// EbitenSurface draws into an offscreen *ebiten.Image that the game composites
// over the page each frame.
type EbitenSurface struct {
	img   *ebiten.Image
	path  vector.Path
	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface creates a transparent surface of the given size.
func NewEbitenSurface(w, h int) *EbitenSurface {
	s := &EbitenSurface{}
	s.Resize(w, h)
	return s
}

// Image returns the backing image. It is replaced on Resize.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// Size returns the surface size in pixels.
func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image when the size changes.
func (s *EbitenSurface) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if s.img != nil {
		if b := s.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(w, h)
}

// Clear resets every pixel to transparent.
func (s *EbitenSurface) Clear() { s.img.Clear() }

// StrokeLine draws an anti-aliased line.
func (s *EbitenSurface) StrokeLine(a, b Vec2, width float64, c Color) {
	vector.StrokeLine(s.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
		float32(width), c.RGBA(), true)
}

// FillCircle fills an anti-aliased circle.
func (s *EbitenSurface) FillCircle(center Vec2, r float64, c Color) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(center.X), float32(center.Y), float32(r), c.RGBA(), true)
}

// FillPolygon fills a closed polygon with the non-zero winding rule.
func (s *EbitenSurface) FillPolygon(pts []Vec2, c Color) {
	if len(pts) < 3 || c.A <= 0 {
		return
	}
	s.tracePath(pts)
	s.verts, s.inds = s.path.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	s.submit(c)
}

// StrokePolygon outlines a closed polygon.
func (s *EbitenSurface) StrokePolygon(pts []Vec2, width float64, c Color) {
	if len(pts) < 2 || c.A <= 0 {
		return
	}
	s.tracePath(pts)
	op := &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinMiter, MiterLimit: 4}
	s.verts, s.inds = s.path.AppendVerticesAndIndicesForStroke(s.verts[:0], s.inds[:0], op)
	s.submit(c)
}

func (s *EbitenSurface) tracePath(pts []Vec2) {
	s.path = vector.Path{}
	s.path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		s.path.LineTo(float32(p.X), float32(p.Y))
	}
	s.path.Close()
}

// submit colours the pending vertices with premultiplied c and draws them
// from the white pixel.
func (s *EbitenSurface) submit(c Color) {
	pm := c.RGBA()
	r, g, b, a := float32(pm.R)/255, float32(pm.G)/255, float32(pm.B)/255, float32(pm.A)/255
	for i := range s.verts {
		v := &s.verts[i]
		v.SrcX, v.SrcY = 0.5, 0.5
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.FillRule = ebiten.FillRuleNonZero
	op.AntiAlias = true
	s.img.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), &op)
}

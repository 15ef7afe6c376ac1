package sprout

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Surface is a full-viewport drawing target. All coordinates are viewport
// pixels. Implementations must be safe to Resize at any time.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	StrokeLine(a, b Vec2, width float64, c Color)
	FillCircle(center Vec2, r float64, c Color)
	FillPolygon(pts []Vec2, c Color)
	StrokePolygon(pts []Vec2, width float64, c Color)
}

// circleSegments is the polygon resolution used for circles on raster
// surfaces.
const circleSegments = 24

// ImageSurface draws into an in-memory *image.RGBA with an anti-aliasing
// rasterizer. It needs no display and backs snapshots and headless renders.
type ImageSurface struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	poly []Vec2
}

// NewImageSurface creates a transparent surface of the given size.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{}
	s.Resize(w, h)
	return s
}

// Image returns the backing image. It is replaced on Resize.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Size returns the surface size in pixels.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image when the size changes. Contents are lost.
func (s *ImageSurface) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if s.img != nil {
		if b := s.img.Bounds(); b.Dx() == w && b.Dy() == h {
			return
		}
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.z = vector.NewRasterizer(w, h)
}

// Clear resets every pixel to transparent.
func (s *ImageSurface) Clear() {
	clear(s.img.Pix)
}

// StrokeLine draws a round-capped line of the given width.
func (s *ImageSurface) StrokeLine(a, b Vec2, width float64, c Color) {
	hw := width / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l > 0 {
		nx, ny := -dy/l*hw, dx/l*hw
		s.poly = append(s.poly[:0],
			Vec2{a.X + nx, a.Y + ny},
			Vec2{b.X + nx, b.Y + ny},
			Vec2{b.X - nx, b.Y - ny},
			Vec2{a.X - nx, a.Y - ny},
		)
		s.fill(s.poly, c)
	}
	s.FillCircle(a, hw, c)
	s.FillCircle(b, hw, c)
}

// FillCircle fills a circle of radius r.
func (s *ImageSurface) FillCircle(center Vec2, r float64, c Color) {
	if r <= 0 {
		return
	}
	s.poly = ellipsePoints(s.poly, r, r, circleSegments)
	for i := range s.poly {
		s.poly[i] = s.poly[i].Add(center)
	}
	s.fill(s.poly, c)
}

// FillPolygon fills a closed polygon using the non-zero winding rule.
func (s *ImageSurface) FillPolygon(pts []Vec2, c Color) {
	s.fill(pts, c)
}

// StrokePolygon outlines a closed polygon.
func (s *ImageSurface) StrokePolygon(pts []Vec2, width float64, c Color) {
	for i := range pts {
		s.StrokeLine(pts[i], pts[(i+1)%len(pts)], width, c)
	}
}

func (s *ImageSurface) fill(pts []Vec2, c Color) {
	if len(pts) < 3 || c.A <= 0 {
		return
	}
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
	s.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		s.z.LineTo(float32(p.X), float32(p.Y))
	}
	s.z.ClosePath()
	s.z.Draw(s.img, b, image.NewUniform(c.RGBA()), image.Point{})
}

package sprout

import (
	"math/rand/v2"
	"testing"
)

// fakePage is a static layout: element rects are stored in page coordinates.
type fakePage struct {
	rects  map[*Element]Rect
	order  []*Element
	scroll Vec2
}

func newFakePage() *fakePage {
	return &fakePage{rects: make(map[*Element]Rect)}
}

func (p *fakePage) add(id string, kind ElementKind, r Rect) *Element {
	el := &Element{ID: id, Kind: kind}
	p.rects[el] = r
	p.order = append(p.order, el)
	return el
}

func (p *fakePage) ClientRect(e *Element) Rect {
	return p.rects[e].Translate(Vec2{-p.scroll.X, -p.scroll.Y})
}

func (p *fakePage) Scroll() Vec2 { return p.scroll }

func (p *fakePage) ObstacleElements() []*Element { return p.order }

// recordingSurface counts draw calls.
type recordingSurface struct {
	w, h     int
	clears   int
	lines    int
	circles  int
	fills    int
	outlines int
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }
func (s *recordingSurface) Resize(w, h int)  { s.w, s.h = w, h }
func (s *recordingSurface) Clear()           { s.clears++ }

func (s *recordingSurface) StrokeLine(a, b Vec2, width float64, c Color)     { s.lines++ }
func (s *recordingSurface) FillCircle(center Vec2, r float64, c Color)       { s.circles++ }
func (s *recordingSurface) FillPolygon(pts []Vec2, c Color)                  { s.fills++ }
func (s *recordingSurface) StrokePolygon(pts []Vec2, width float64, c Color) { s.outlines++ }

func (s *recordingSurface) draws() int { return s.lines + s.circles + s.fills + s.outlines }

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func mustPreset(t *testing.T, name string) *Variant {
	t.Helper()
	v, err := Preset(name)
	if err != nil {
		t.Fatalf("Preset(%q): %v", name, err)
	}
	return &v
}

func newTestController(t *testing.T, page *fakePage, opts ...Option) (*Controller, *recordingSurface) {
	t.Helper()
	surf := &recordingSurface{w: 1280, h: 800}
	opts = append([]Option{WithSeed(42)}, opts...)
	c, err := NewController(surf, page, page, opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, surf
}

// checkTreeShape verifies the parent/child relation of every segment.
func checkTreeShape(t *testing.T, tr *Tree) {
	t.Helper()
	for _, seg := range tr.Segments {
		if seg.Parent == nil {
			if seg.Depth != 0 {
				t.Errorf("root depth = %d, want 0", seg.Depth)
			}
			continue
		}
		if seg.Depth != seg.Parent.Depth+1 {
			t.Errorf("child depth = %d, parent depth = %d", seg.Depth, seg.Parent.Depth)
		}
		if seg.Start != seg.Parent.End {
			t.Errorf("child starts at %v, parent ends at %v", seg.Start, seg.Parent.End)
		}
		if limit := edgeMaxDepth(tr.Variant, seg.Edge); seg.Depth >= limit {
			t.Errorf("depth %d reaches max depth %d", seg.Depth, limit)
		}
	}
}

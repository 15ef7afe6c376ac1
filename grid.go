package sprout

import "math"

// Quantize rounds v to the nearest multiple of gridSize. A non-positive
// gridSize returns v unchanged.
func Quantize(v, gridSize float64) float64 {
	if gridSize <= 0 {
		return v
	}
	return math.Round(v/gridSize) * gridSize
}

// QuantizePoint snaps both coordinates of p to the lattice.
func QuantizePoint(p Vec2, gridSize float64) Vec2 {
	return Vec2{Quantize(p.X, gridSize), Quantize(p.Y, gridSize)}
}

// Key identifies a lattice point. Two points snapped to the same lattice
// produce equal keys, which is what lets separate growth trees detect
// each other.
type Key struct {
	X, Y int
}

// KeyOf returns the lattice key of p.
func KeyOf(p Vec2, gridSize float64) Key {
	if gridSize <= 0 {
		gridSize = 1
	}
	return Key{int(math.Round(p.X / gridSize)), int(math.Round(p.Y / gridSize))}
}

// Point returns the page-space position of the key.
func (k Key) Point(gridSize float64) Vec2 {
	return Vec2{float64(k.X) * gridSize, float64(k.Y) * gridSize}
}

// samplePath returns the sub-step points of the straight segment a->b,
// excluding a and including b, each snapped to the lattice. When steps is
// zero the count is one sample per grid step along the segment.
func samplePath(buf []Vec2, a, b Vec2, gridSize float64, steps int) []Vec2 {
	buf = buf[:0]
	if steps <= 0 {
		steps = int(math.Round(math.Hypot(b.X-a.X, b.Y-a.Y) / gridSize))
		if steps < 1 {
			steps = 1
		}
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		buf = append(buf, QuantizePoint(a.Lerp(b, t), gridSize))
	}
	return buf
}

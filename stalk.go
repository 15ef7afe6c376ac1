package sprout

import "math"

// RoofType selects the roof drawn on a skyline building.
type RoofType uint8

const (
	RoofFlat RoofType = iota
	RoofTriangle
	RoofStepped
	RoofAntenna
	RoofSlant
	roofTypeCount
)

// Building decorates a skyline stalk.
type Building struct {
	Width        float64
	TargetHeight float64 // height the stalk wanted before any contact
	Height       float64 // final height after contact
	Roof         RoofType
	Door         bool
	WinCols      int
	WinRows      int
	Hue          float64
}

// Blocked reports whether contact with an obstacle cut the stalk short.
func (b *Building) Blocked() bool { return b.Height < b.TargetHeight }

// GrowStalk adds one straight stalk for seed. The stalk stops where it would
// first come within the collision margin of an obstacle; its final height is
// fixed here, and the scheduler only animates towards it.
func (e *Engine) GrowStalk(t *Tree, seed Seed, obs *ObstacleIndex) *Segment {
	cfg := &t.Variant.Stalk
	side := seed.Edge == EdgeLeft || seed.Edge == EdgeRight

	heights, widths := cfg.Height, cfg.Width
	if side {
		heights, widths = cfg.SideHeight, cfg.SideWidth
	}
	b := &Building{
		Width:        widths.Random(e.rng),
		TargetHeight: heights.Random(e.rng),
		Roof:         RoofType(e.rng.IntN(int(roofTypeCount))),
		Door:         !side && e.rng.Float64() < cfg.DoorChance,
		Hue:          cfg.Hue.Random(e.rng),
	}

	dir := seed.Edge.Normal()
	b.Height = StalkHeight(seed.Pos, dir, b.TargetHeight, obs.Rects(), cfg.Margin)
	b.WinCols = max(1, int(b.Width/8))
	b.WinRows = int(b.TargetHeight / 10)

	seg := &Segment{
		Start:    seed.Pos,
		End:      seed.Pos.Add(dir.Scale(b.Height)),
		Edge:     seed.Edge,
		Heading:  seed.Heading,
		Building: b,
		rate:     1,
	}
	if b.Height > 0 {
		seg.rate = cfg.Speed.Random(e.rng) / b.Height
	}
	return t.add(seg)
}

// StalkHeight returns how far a stalk can grow from origin along the unit
// direction dir before entering any rect inflated by margin, capped at
// target. An origin already inside an inflated rect gives zero.
func StalkHeight(origin, dir Vec2, target float64, rects []Rect, margin float64) float64 {
	h := target
	for _, r := range rects {
		if d, ok := rayEntry(origin, dir, r.Inflate(margin)); ok && d < h {
			h = d
		}
	}
	return math.Max(0, h)
}

// rayEntry returns the distance along the ray o+t*d at which it enters r.
func rayEntry(o, d Vec2, r Rect) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	slab := func(o, d, lo, hi float64) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		return true
	}
	if !slab(o.X, d.X, r.X, r.Right()) || !slab(o.Y, d.Y, r.Y, r.Bottom()) {
		return 0, false
	}
	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return math.Max(0, tmin), true
}

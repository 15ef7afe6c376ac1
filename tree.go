package sprout

import (
	"math"
	"math/rand/v2"
)

// Segment is one straight piece of a growth tree. Geometry is fixed when the
// segment is created; Progress is the only field that changes afterwards.
type Segment struct {
	Start, End Vec2
	Depth      int
	Edge       Edge // perimeter edge of the seed this segment grew from
	Parent     *Segment
	Children   []*Segment

	// Progress is the drawn fraction in [0, 1].
	Progress float64

	// Heading is the direction of travel in radians.
	Heading float64

	// Building is set for skyline stalks.
	Building *Building

	rate float64
}

// IsLeaf reports whether the segment has no children.
func (s *Segment) IsLeaf() bool { return len(s.Children) == 0 }

// Drawn reports whether the segment has fully drawn.
func (s *Segment) Drawn() bool { return s.Progress >= 1 }

// Tip returns the currently drawn end point.
func (s *Segment) Tip() Vec2 { return s.Start.Lerp(s.End, s.Progress) }

// Length returns the full segment length.
func (s *Segment) Length() float64 {
	return math.Hypot(s.End.X-s.Start.X, s.End.Y-s.Start.Y)
}

// Tree is the growth owned by one triggering element. It is created when a
// session starts and discarded when it stops.
type Tree struct {
	ID      TreeID
	Trigger *Element
	Variant *Variant

	// Roots holds one segment per seed that found a clear first step.
	Roots []*Segment
	// Segments holds every segment, parents before their children.
	Segments []*Segment

	Pulses *PulsePool

	// Leaves hold per-leaf glow state for organic trees.
	leaves map[*Segment]*glow

	ticks int
}

func newTree(id TreeID, trigger *Element, v *Variant) *Tree {
	t := &Tree{ID: id, Trigger: trigger, Variant: v}
	if v.PulseChance > 0 {
		t.Pulses = newPulsePool(defaultPulseCap)
	}
	return t
}

// add appends seg, links it to its parent and returns it.
func (t *Tree) add(seg *Segment) *Segment {
	if seg.rate == 0 {
		seg.rate = t.Variant.Rate
	}
	if seg.Parent == nil {
		t.Roots = append(t.Roots, seg)
	} else {
		seg.Parent.Children = append(seg.Parent.Children, seg)
	}
	t.Segments = append(t.Segments, seg)
	return seg
}

// progressEpsilon absorbs float drift so repeated increments land on 1.
const progressEpsilon = 1e-9

// Advance runs one scheduling tick. A segment only grows once its parent has
// fully drawn, so the drawing spreads outward from the roots as a wavefront.
// Pulses then move along finished segments.
func (t *Tree) Advance(rng *rand.Rand) {
	t.ticks++
	for _, seg := range t.Segments {
		if seg.Parent != nil && seg.Parent.Progress < 1 {
			continue
		}
		if seg.Progress >= 1 {
			continue
		}
		seg.Progress += seg.rate
		if seg.Progress >= 1-progressEpsilon {
			seg.Progress = 1
		}
	}

	if t.Pulses == nil {
		return
	}
	for _, root := range t.Roots {
		if root.Drawn() && rng.Float64() < t.Variant.PulseChance {
			t.Pulses.spawn(root, t.Variant.PulseSpeed.Random(rng))
		}
	}
	t.Pulses.update(rng)
}

// Complete reports whether every segment has fully drawn.
func (t *Tree) Complete() bool {
	for _, seg := range t.Segments {
		if seg.Progress < 1 {
			return false
		}
	}
	return true
}

// Ticks returns how many scheduling ticks the tree has seen.
func (t *Tree) Ticks() int { return t.ticks }

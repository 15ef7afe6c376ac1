package sprout

import (
	"math"
	"math/rand/v2"
)

// Seed is a starting point and heading for a growth.
type Seed struct {
	Pos     Vec2
	Heading float64
	Edge    Edge
}

// Seeds places seeds around box according to the variant's mode. A box with
// zero width or height (hidden or not laid out) yields no seeds.
func Seeds(box Rect, v *Variant, rng *rand.Rand) []Seed {
	if box.Empty() || v.Density <= 0 {
		return nil
	}
	if v.Mode == ModeStalk {
		return insetSeeds(box, v, rng)
	}
	return perimeterSeeds(box, v, rng)
}

func edgeLength(box Rect, e Edge) float64 {
	if e == EdgeTop || e == EdgeBottom {
		return box.Width
	}
	return box.Height
}

// edgePoint returns the point at distance along the edge, pushed outward by
// offset.
func edgePoint(box Rect, e Edge, along, offset float64) Vec2 {
	switch e {
	case EdgeTop:
		return Vec2{box.X + along, box.Y - offset}
	case EdgeBottom:
		return Vec2{box.X + along, box.Bottom() + offset}
	case EdgeLeft:
		return Vec2{box.X - offset, box.Y + along}
	default:
		return Vec2{box.Right() + offset, box.Y + along}
	}
}

func headingOf(e Edge) float64 {
	n := e.Normal()
	return math.Atan2(n.Y, n.X)
}

// perimeterSeeds spaces seeds along every edge by the variant density, each
// jittered within its slot and snapped to the lattice.
func perimeterSeeds(box Rect, v *Variant, rng *rand.Rand) []Seed {
	var seeds []Seed
	for _, e := range edges {
		n := edgeLength(box, e)
		count := max(1, int(math.Floor(n/v.Density)))
		slot := n / float64(count)
		for i := 0; i < count; i++ {
			along := (float64(i) + 0.5) * slot
			along += (rng.Float64()*2 - 1) * v.SeedJitter * slot
			along = math.Min(math.Max(along, 0), n)
			p := edgePoint(box, e, along, v.SeedOffset)
			if v.Grid > 0 {
				p = QuantizePoint(p, v.Grid)
			}
			seeds = append(seeds, Seed{Pos: p, Heading: headingOf(e), Edge: e})
		}
	}
	return seeds
}

// insetSeeds places seeds evenly between the edge margins, including both
// ends, each jittered by the stalk jitter.
func insetSeeds(box Rect, v *Variant, rng *rand.Rand) []Seed {
	var seeds []Seed
	margin := v.Stalk.EdgeMargin
	for _, e := range edges {
		n := edgeLength(box, e)
		usable := n - 2*margin
		count := int(math.Floor(usable / v.Density))
		if usable <= 0 || count < 1 {
			seeds = append(seeds, Seed{Pos: edgePoint(box, e, n/2, 0), Heading: headingOf(e), Edge: e})
			continue
		}
		step := usable / float64(count)
		for i := 0; i <= count; i++ {
			along := margin + float64(i)*step
			along += (rng.Float64()*2 - 1) * v.Stalk.Jitter
			seeds = append(seeds, Seed{Pos: edgePoint(box, e, along, 0), Heading: headingOf(e), Edge: e})
		}
	}
	return seeds
}

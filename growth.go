package sprout

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Engine builds growth trees. It owns scratch buffers so a growth start does
// not allocate per candidate.
type Engine struct {
	occ *Occupancy
	rng *rand.Rand

	stack   []frame
	order   []float64
	samples []Vec2
	keys    []Key
}

// frame is one pending step of the branch search.
type frame struct {
	pos     Vec2
	heading float64
	depth   int
	parent  *Segment
}

// NewEngine returns an engine that claims lattice points in occ.
func NewEngine(occ *Occupancy, rng *rand.Rand) *Engine {
	return &Engine{occ: occ, rng: rng}
}

// Grow seeds box with the tree's variant and grows every seed. It returns
// the number of segments created.
func (e *Engine) Grow(t *Tree, box Rect, obs *ObstacleIndex, scroll Vec2) int {
	before := len(t.Segments)
	v := t.Variant
	for _, s := range Seeds(box, v, e.rng) {
		switch v.Mode {
		case ModeStalk:
			e.GrowStalk(t, s, obs)
		default:
			e.GrowBranch(t, s, 0, edgeMaxDepth(v, s.Edge), obs, scroll)
		}
	}
	return len(t.Segments) - before
}

// GrowBranch extends t from seed. Each step tries the candidate turns in
// policy order and takes the first whose sampled path touches neither an
// obstacle nor a claimed lattice point. Successful steps may fork into a
// straight and a deflected child. A step with no clear candidate ends the
// branch. The returned slice holds the new segments, parents first.
func (e *Engine) GrowBranch(t *Tree, seed Seed, startDepth, maxDepth int, obs *ObstacleIndex, scroll Vec2) []*Segment {
	v := t.Variant
	first := len(t.Segments)
	maxDepth = min(maxDepth, maxDepthLimit)

	e.stack = append(e.stack[:0], frame{pos: seed.Pos, heading: seed.Heading, depth: startDepth})
	for len(e.stack) > 0 {
		f := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		if f.depth >= maxDepth {
			continue
		}

		length := v.Grid * float64(max(1, v.Length.RandomInt(e.rng)))
		for _, off := range e.orderAngles(v) {
			heading := f.heading + off
			sin, cos := math.Sincos(heading)
			end := QuantizePoint(Vec2{f.pos.X + cos*length, f.pos.Y + sin*length}, v.Grid)
			if end == f.pos {
				continue
			}
			if v.TopGuard > 0 && end.Y < scroll.Y+v.TopGuard {
				continue
			}
			if !e.claimPath(t.ID, f.pos, end, v, obs) {
				continue
			}

			seg := t.add(&Segment{
				Start:   f.pos,
				End:     end,
				Depth:   f.depth,
				Edge:    seed.Edge,
				Parent:  f.parent,
				Heading: heading,
			})

			if f.depth < maxDepth-1 && e.rng.Float64() < splitChance(v, seed.Edge) {
				turn := v.ForkTurn * math.Pi / 180
				if e.rng.IntN(2) == 0 {
					turn = -turn
				}
				e.stack = append(e.stack, frame{pos: end, heading: heading + turn, depth: f.depth + 1, parent: seg})
			}
			// Pushed last so the straight continuation is explored first.
			e.stack = append(e.stack, frame{pos: end, heading: heading, depth: f.depth + 1, parent: seg})
			break
		}
	}
	return t.Segments[first:]
}

// claimPath samples a->b and, if no sample hits an obstacle, atomically
// claims the sampled lattice points for tree id. Samples that snap back onto
// a or repeat an earlier sample are dropped.
func (e *Engine) claimPath(id TreeID, a, b Vec2, v *Variant, obs *ObstacleIndex) bool {
	e.samples = samplePath(e.samples, a, b, v.Grid, v.SampleSteps)
	start := KeyOf(a, v.Grid)
	e.keys = e.keys[:0]
	for _, p := range e.samples {
		if obs.Contains(p) {
			return false
		}
		k := KeyOf(p, v.Grid)
		if k == start || slices.Contains(e.keys, k) {
			continue
		}
		e.keys = append(e.keys, k)
	}
	if len(e.keys) == 0 {
		return false
	}
	return e.occ.TryClaim(e.keys, id)
}

// orderAngles returns the candidate turns in the variant's search order.
func (e *Engine) orderAngles(v *Variant) []float64 {
	e.order = e.order[:0]
	for _, a := range v.Angles {
		e.order = append(e.order, a*math.Pi/180)
	}
	order := v.Order
	if order == OrderMixed {
		order = OrderShuffle
		if e.rng.Float64() < v.DeviationBias {
			order = OrderDeviation
		}
	}
	switch order {
	case OrderDeviation:
		slices.SortStableFunc(e.order, func(a, b float64) int {
			switch da, db := math.Abs(a), math.Abs(b); {
			case da < db:
				return -1
			case da > db:
				return 1
			}
			return 0
		})
	case OrderShuffle:
		e.rng.Shuffle(len(e.order), func(i, j int) {
			e.order[i], e.order[j] = e.order[j], e.order[i]
		})
	}
	return e.order
}

func edgeMaxDepth(v *Variant, edge Edge) int {
	if edge == EdgeBottom && v.RootMaxDepth > 0 {
		return v.RootMaxDepth
	}
	return v.MaxDepth
}

func splitChance(v *Variant, edge Edge) float64 {
	if edge == EdgeBottom && v.RootSplitChance > 0 {
		return v.RootSplitChance
	}
	return v.SplitChance
}

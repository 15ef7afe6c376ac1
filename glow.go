package sprout

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// glowPeriod is the length of one full bright-dim-bright leaf cycle in seconds.
const glowPeriod = 2 * math.Pi

// glow ping-pongs a value between 0 and 1 with a sine ease. Each leaf owns
// one, started at a random phase so neighbouring leaves do not pulse together.
type glow struct {
	tween  *gween.Tween
	rising bool
	value  float64
}

func newGlow(rng *rand.Rand) *glow {
	g := &glow{rising: true}
	g.tween = gween.New(0, 1, glowPeriod/2, ease.InOutSine)
	g.update(float32(rng.Float64() * glowPeriod / 2))
	return g
}

// update advances the glow by dt seconds and returns the current value.
func (g *glow) update(dt float32) float64 {
	v, done := g.tween.Update(dt)
	g.value = float64(v)
	if done {
		g.rising = !g.rising
		if g.rising {
			g.tween = gween.New(0, 1, glowPeriod/2, ease.InOutSine)
		} else {
			g.tween = gween.New(1, 0, glowPeriod/2, ease.InOutSine)
		}
	}
	return g.value
}

// leafCarrier reports whether seg carries a leaf once drawn. Roots below the
// trigger never do.
func leafCarrier(seg *Segment) bool {
	return seg.IsLeaf() && seg.Depth >= 1 && seg.Edge != EdgeBottom
}

// updateLeaves advances leaf glows on organic trees, creating one the first
// time a carrier segment finishes drawing.
func (t *Tree) updateLeaves(dt float64, rng *rand.Rand) {
	if t.Variant.Family != FamilyOrganic {
		return
	}
	for _, seg := range t.Segments {
		if !seg.Drawn() || !leafCarrier(seg) {
			continue
		}
		g, ok := t.leaves[seg]
		if !ok {
			if t.leaves == nil {
				t.leaves = make(map[*Segment]*glow)
			}
			g = newGlow(rng)
			t.leaves[seg] = g
			continue
		}
		g.update(float32(dt))
	}
}

// LeafGlow returns the glow value in [0, 1] for seg, or 0 when seg carries
// no leaf yet.
func (t *Tree) LeafGlow(seg *Segment) float64 {
	if g, ok := t.leaves[seg]; ok {
		return g.value
	}
	return 0
}

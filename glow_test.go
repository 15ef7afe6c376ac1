package sprout

import (
	"math/rand/v2"
	"testing"
)

func TestGlowStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := newGlow(rng)
	sawHigh, sawLow := false, false
	for i := 0; i < 2000; i++ {
		v := g.update(1.0 / 60)
		if v < -1e-6 || v > 1+1e-6 {
			t.Fatalf("glow value %v out of range at step %d", v, i)
		}
		if v > 0.95 {
			sawHigh = true
		}
		if v < 0.05 {
			sawLow = true
		}
	}
	if !sawHigh || !sawLow {
		t.Errorf("glow did not ping-pong: high=%v low=%v", sawHigh, sawLow)
	}
}

func TestUpdateLeavesOnlyOrganic(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	organic, _ := Preset("organic")
	circuit, _ := Preset("circuit")

	for _, tc := range []struct {
		v    Variant
		want int
	}{
		{organic, 1},
		{circuit, 0},
	} {
		v := tc.v
		tr := newTree(1, nil, &v)
		root := tr.add(&Segment{Start: Vec2{0, 0}, End: Vec2{0, -8}, Edge: EdgeTop, Progress: 1})
		tr.add(&Segment{Start: Vec2{0, -8}, End: Vec2{0, -16}, Depth: 1, Edge: EdgeTop, Parent: root, Progress: 1})
		tr.updateLeaves(1.0/60, rng)
		if got := len(tr.leaves); got != tc.want {
			t.Errorf("%s: leaves = %d, want %d", v.Name, got, tc.want)
		}
	}
}

package sprout

import "math/rand/v2"

const defaultPulseCap = 64

// Pulse is a marker travelling along finished segments of a circuit tree.
type Pulse struct {
	Segment  *Segment
	Progress float64
	Speed    float64
}

// Position returns the pulse's page-space position.
func (p *Pulse) Position() Vec2 {
	return p.Segment.Start.Lerp(p.Segment.End, p.Progress)
}

// PulsePool manages a fixed pool of pulses. New pulses are silently dropped
// when the pool is full.
type PulsePool struct {
	pulses []Pulse
	alive  int
}

func newPulsePool(max int) *PulsePool {
	if max <= 0 {
		max = defaultPulseCap
	}
	return &PulsePool{pulses: make([]Pulse, max)}
}

// AliveCount returns the number of live pulses.
func (pp *PulsePool) AliveCount() int {
	if pp == nil {
		return 0
	}
	return pp.alive
}

// Alive returns the live pulses. The returned slice is only valid until the
// next update.
func (pp *PulsePool) Alive() []Pulse {
	if pp == nil {
		return nil
	}
	return pp.pulses[:pp.alive]
}

// Reset kills every pulse.
func (pp *PulsePool) Reset() {
	pp.alive = 0
}

func (pp *PulsePool) spawn(seg *Segment, speed float64) {
	if pp.alive >= len(pp.pulses) {
		return
	}
	pp.pulses[pp.alive] = Pulse{Segment: seg, Speed: speed}
	pp.alive++
}

// update moves every pulse. A pulse reaching the end of its segment jumps to
// a random child, or dies if the segment is a leaf.
func (pp *PulsePool) update(rng *rand.Rand) {
	i := 0
	for i < pp.alive {
		p := &pp.pulses[i]
		p.Progress += p.Speed
		if p.Progress >= 1 {
			if p.Segment.IsLeaf() {
				// Swap with last alive pulse.
				pp.alive--
				pp.pulses[i] = pp.pulses[pp.alive]
				continue
			}
			p.Segment = p.Segment.Children[rng.IntN(len(p.Segment.Children))]
			p.Progress = 0
		}
		i++
	}
}

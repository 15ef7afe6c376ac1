package sprout

import "time"

// debugStats holds per-tick timing and tree metrics.
// Only populated when Controller.debug is true.
type debugStats struct {
	advanceTime time.Duration
	renderTime  time.Duration
	trees       int
	segments    int
	pulses      int
	occupied    int
}

// debugLog writes timing and tree stats at debug level.
func (c *Controller) debugLog(stats debugStats) {
	if !c.debug {
		return
	}
	if stats.renderTime > 0 {
		c.log.Debug("render", "trees", stats.trees, "took", stats.renderTime)
		return
	}
	c.log.Debug("tick",
		"trees", stats.trees, "segments", stats.segments, "pulses", stats.pulses,
		"occupied", stats.occupied, "took", stats.advanceTime)
}

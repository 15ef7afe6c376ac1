package sprout

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// ErrNoSurface is returned by NewController when no drawing surface is given.
var ErrNoSurface = errors.New("sprout: no drawing surface")

const (
	// defaultTickRate is the number of scheduling ticks per second.
	defaultTickRate = 60
	// defaultCompactWidth is the viewport width below which scrolling clears
	// every active session.
	defaultCompactWidth = 768
	// scrollDecay is applied to scroll velocity once per tick.
	scrollDecay = 0.92
	// tiltPerVelocity converts scroll velocity into leaf tilt.
	tiltPerVelocity = 0.05
)

// Observer receives lifecycle notifications from a Controller. All methods
// are called on the controller's goroutine.
type Observer interface {
	GrowthStarted(variant string, segments, claims int, took time.Duration)
	GrowthStopped(variant string, released int)
	Ticked(trees, segments int, took time.Duration)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithObserver registers an Observer for growth and tick metrics.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithSeed makes growth deterministic for a given seed.
func WithSeed(seed uint64) Option {
	return func(c *Controller) { c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithTickRate sets the scheduling tick rate used for time-based effects.
func WithTickRate(tps int) Option {
	return func(c *Controller) {
		if tps > 0 {
			c.dt = 1 / float64(tps)
		}
	}
}

// WithCompactWidth sets the viewport width below which scrolling clears all
// sessions. Zero disables the behaviour.
func WithCompactWidth(w int) Option {
	return func(c *Controller) { c.compactWidth = w }
}

// Controller owns the active growth sessions for one page. It grows a tree
// when an element is triggered, advances every tree once per Update, and
// paints them on Draw. It is single-threaded: call every method from the
// game loop goroutine.
type Controller struct {
	surface Surface
	geo     Geometry
	enum    ObstacleEnumerator

	occ      *Occupancy
	engine   *Engine
	rng      *rand.Rand
	renderer Renderer

	trees   []*Tree
	family  Family
	running bool
	nextID  TreeID

	lastScroll     Vec2
	scrollVelocity float64
	compactWidth   int
	dt             float64

	log      *slog.Logger
	observer Observer
	debug    bool
}

// NewController creates a controller drawing on surface. geo resolves element
// rectangles and the current scroll; enum lists obstacle candidates.
func NewController(surface Surface, geo Geometry, enum ObstacleEnumerator, opts ...Option) (*Controller, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	c := &Controller{
		surface:      surface,
		geo:          geo,
		enum:         enum,
		occ:          NewOccupancy(),
		compactWidth: defaultCompactWidth,
		dt:           1.0 / defaultTickRate,
		log:          slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.engine = NewEngine(c.occ, c.rng)
	if geo != nil {
		c.lastScroll = geo.Scroll()
	}
	return c, nil
}

// SetDebugMode enables per-tick timing logs at debug level.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// Start grows a tree for el using v. Starting an element that already has a
// tree of the same family returns the existing tree. Starting a different
// family, or an exclusive variant, stops every other session first.
// Returns nil when el has no visible area.
func (c *Controller) Start(el *Element, v *Variant) *Tree {
	if el == nil || v == nil {
		return nil
	}
	if t := c.Tree(el); t != nil && t.Variant.Family == v.Family {
		return t
	}
	if len(c.trees) > 0 && (c.family != v.Family || v.Exclusive) {
		c.StopAll()
	}
	if idx := c.indexOf(el); idx >= 0 {
		c.remove(idx)
	}

	box := PageRect(c.geo, el)
	if box.Empty() {
		c.log.Debug("skip growth for empty element", "element", el.ID)
		return nil
	}
	scroll := c.geo.Scroll()
	obs := BuildObstacles(el, c.enum, c.geo, v.Obstacles, v.Clearance)
	if v.Mode == ModeBranch {
		obs.SetInterior(box, v.SelfMargin)
	}

	c.nextID++
	t := newTree(c.nextID, el, v)
	start := time.Now()
	n := c.engine.Grow(t, box, obs, scroll)
	took := time.Since(start)

	c.trees = append(c.trees, t)
	c.family = v.Family
	c.running = true

	claims := len(c.occ.Claimed(t.ID))
	c.log.Debug("growth started",
		"element", el.ID, "variant", v.Name, "tree", t.ID,
		"segments", n, "claims", claims, "obstacles", obs.Len(), "took", took)
	if c.observer != nil {
		c.observer.GrowthStarted(v.Name, n, claims, took)
	}
	return t
}

// Stop ends the session for el. Its grid claims are released before the tree
// is discarded, so they are free for the next Start. Stopping an element that
// has no session does nothing.
func (c *Controller) Stop(el *Element) bool {
	idx := c.indexOf(el)
	if idx < 0 {
		return false
	}
	c.remove(idx)
	if len(c.trees) == 0 {
		c.idle()
	}
	return true
}

// StopAll ends every session and clears the surface.
func (c *Controller) StopAll() {
	for len(c.trees) > 0 {
		c.remove(len(c.trees) - 1)
	}
	c.idle()
}

// Touch handles a touch start on el: every session is cleared and a new one
// starts for el.
func (c *Controller) Touch(el *Element, v *Variant) *Tree {
	c.StopAll()
	return c.Start(el, v)
}

// Scrolled records a new scroll position. On compact viewports any scroll
// movement clears every session.
func (c *Controller) Scrolled(scroll Vec2) {
	delta := scroll.Y - c.lastScroll.Y
	moved := scroll != c.lastScroll
	c.lastScroll = scroll
	c.scrollVelocity = delta
	if !moved || len(c.trees) == 0 || c.compactWidth <= 0 {
		return
	}
	if w, _ := c.surface.Size(); w < c.compactWidth {
		c.log.Debug("scroll on compact viewport clears sessions", "width", w)
		c.StopAll()
	}
}

// Resize resizes the drawing surface.
func (c *Controller) Resize(w, h int) {
	c.surface.Resize(w, h)
}

// Update runs one scheduling tick for every active tree. It does nothing
// while idle.
func (c *Controller) Update() {
	if !c.running {
		return
	}
	start := time.Now()
	c.scrollVelocity *= scrollDecay
	segments := 0
	for _, t := range c.trees {
		t.Advance(c.rng)
		t.updateLeaves(c.dt, c.rng)
		segments += len(t.Segments)
	}
	took := time.Since(start)
	if c.observer != nil {
		c.observer.Ticked(len(c.trees), segments, took)
	}
	if c.debug {
		c.debugLog(debugStats{advanceTime: took, trees: len(c.trees), segments: segments, pulses: c.pulseCount(), occupied: c.occ.Len()})
	}
}

// Draw paints every active tree onto the surface. It does nothing while idle.
func (c *Controller) Draw() {
	if !c.running {
		return
	}
	start := time.Now()
	c.renderer.Tilt = c.scrollVelocity * tiltPerVelocity
	c.renderer.Render(c.surface, c.trees, c.geo.Scroll())
	if c.debug {
		c.debugLog(debugStats{renderTime: time.Since(start), trees: len(c.trees)})
	}
}

// Active returns the number of active sessions.
func (c *Controller) Active() int { return len(c.trees) }

// Running reports whether the tick loop is live.
func (c *Controller) Running() bool { return c.running }

// Tree returns the active tree for el, or nil.
func (c *Controller) Tree(el *Element) *Tree {
	if idx := c.indexOf(el); idx >= 0 {
		return c.trees[idx]
	}
	return nil
}

// Trees returns the active trees in start order.
func (c *Controller) Trees() []*Tree { return c.trees }

// Occupancy returns the shared grid occupancy.
func (c *Controller) Occupancy() *Occupancy { return c.occ }

// Surface returns the drawing surface.
func (c *Controller) Surface() Surface { return c.surface }

func (c *Controller) indexOf(el *Element) int {
	for i, t := range c.trees {
		if t.Trigger == el {
			return i
		}
	}
	return -1
}

// remove releases the claims of the tree at idx and drops it, keeping the
// order of the remaining trees.
func (c *Controller) remove(idx int) {
	t := c.trees[idx]
	released := c.occ.Release(t.ID)
	copy(c.trees[idx:], c.trees[idx+1:])
	c.trees[len(c.trees)-1] = nil
	c.trees = c.trees[:len(c.trees)-1]

	c.log.Debug("growth stopped", "element", t.Trigger.ID, "variant", t.Variant.Name,
		"tree", t.ID, "released", released)
	if c.observer != nil {
		c.observer.GrowthStopped(t.Variant.Name, released)
	}
}

func (c *Controller) idle() {
	c.running = false
	c.surface.Clear()
}

func (c *Controller) pulseCount() int {
	n := 0
	for _, t := range c.trees {
		n += t.Pulses.AliveCount()
	}
	return n
}

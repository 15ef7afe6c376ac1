package sprout

// Clearance holds the margins added around obstacle rectangles.
type Clearance struct {
	Default float64 `yaml:"default" mapstructure:"default"`
	Heading float64 `yaml:"heading" mapstructure:"heading"`
}

// ObstacleIndex is an immutable snapshot of obstacle rectangles in page
// coordinates, taken when a growth starts.
type ObstacleIndex struct {
	rects []Rect

	// interior is the trigger's own box shrunk by the self margin. Points
	// strictly inside it are blocked so growth stays outside its element.
	interior    Rect
	hasInterior bool
}

// NewObstacleIndex builds an index from page-space rectangles that already
// include their clearance.
func NewObstacleIndex(rects ...Rect) *ObstacleIndex {
	return &ObstacleIndex{rects: append([]Rect(nil), rects...)}
}

// BuildObstacles snapshots the obstacles for a growth started by trigger.
// The trigger itself, anything nested in it, kinds outside mask and
// zero-size elements are skipped. Each remaining box is converted to page
// coordinates and inflated by its clearance.
func BuildObstacles(trigger *Element, enum ObstacleEnumerator, geo Geometry, mask KindMask, c Clearance) *ObstacleIndex {
	ix := &ObstacleIndex{}
	if enum == nil || geo == nil {
		return ix
	}
	scroll := geo.Scroll()
	for _, el := range enum.ObstacleElements() {
		if el == nil || el == trigger || (trigger != nil && el.Within(trigger)) {
			continue
		}
		if !mask.Has(el.Kind) {
			continue
		}
		r := geo.ClientRect(el)
		if r.Empty() {
			continue
		}
		m := c.Default
		if el.Kind.headingLike() {
			m = c.Heading
		}
		ix.rects = append(ix.rects, r.Translate(scroll).Inflate(m))
	}
	return ix
}

// SetInterior marks box shrunk by margin as blocked (exclusive bounds).
func (ix *ObstacleIndex) SetInterior(box Rect, margin float64) {
	ix.interior = box.Inset(margin)
	ix.hasInterior = !ix.interior.Empty()
}

// Contains reports whether p lies within any obstacle (inclusive) or strictly
// inside the trigger interior.
func (ix *ObstacleIndex) Contains(p Vec2) bool {
	if ix == nil {
		return false
	}
	if ix.hasInterior && ix.interior.ContainsStrict(p.X, p.Y) {
		return true
	}
	for i := range ix.rects {
		if ix.rects[i].Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

// Rects returns the obstacle rectangles. The returned slice MUST NOT be mutated.
func (ix *ObstacleIndex) Rects() []Rect {
	if ix == nil {
		return nil
	}
	return ix.rects
}

// Len returns the number of obstacles.
func (ix *ObstacleIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.rects)
}

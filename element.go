package sprout

// ElementKind classifies a page element for trigger and obstacle purposes.
type ElementKind uint8

const (
	KindCard    ElementKind = iota // content card (project or lab item)
	KindButton                     // action button
	KindLink                       // navigation link
	KindHeading                    // heading text block
	KindBadge                      // tag badge
	KindWord                       // single word of a section header
	KindPanel                      // generic panel (bio, log entry)
)

var kindNames = [...]string{"card", "button", "link", "heading", "badge", "word", "panel"}

func (k ElementKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind?"
}

// headingLike reports whether obstacles of this kind get the wider clearance
// so traces stay legibly clear of text.
func (k ElementKind) headingLike() bool {
	return k == KindHeading
}

// KindMask is a set of element kinds. The zero mask matches every kind.
type KindMask uint16

// MaskOf builds a mask from kinds.
func MaskOf(kinds ...ElementKind) KindMask {
	var m KindMask
	for _, k := range kinds {
		m |= 1 << k
	}
	return m
}

// Has reports whether k is in the mask. An empty mask contains every kind.
func (m KindMask) Has(k ElementKind) bool {
	return m == 0 || m&(1<<k) != 0
}

// Element is an interactive or obstructing item on the page. Elements are
// owned by the page layer; the core only compares them by identity and walks
// the Parent chain.
type Element struct {
	ID     string
	Kind   ElementKind
	Parent *Element

	// UserData is free for the page layer.
	UserData any
}

// Within reports whether e is other or nested inside other.
func (e *Element) Within(other *Element) bool {
	for p := e; p != nil; p = p.Parent {
		if p == other {
			return true
		}
	}
	return false
}

// Geometry reports the current layout of page elements.
type Geometry interface {
	// ClientRect returns the element's bounding box relative to the viewport.
	ClientRect(e *Element) Rect
	// Scroll returns the current page scroll offset.
	Scroll() Vec2
}

// PageRect converts an element's client rect to page coordinates.
func PageRect(g Geometry, e *Element) Rect {
	return g.ClientRect(e).Translate(g.Scroll())
}

// ObstacleEnumerator returns the elements currently eligible to act as
// obstacles. Elements inside an open overlay must not be returned.
type ObstacleEnumerator interface {
	ObstacleElements() []*Element
}

// ObstacleFunc adapts a function to ObstacleEnumerator.
type ObstacleFunc func() []*Element

// ObstacleElements calls f.
func (f ObstacleFunc) ObstacleElements() []*Element { return f() }

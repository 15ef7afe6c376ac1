package sprout

import "github.com/hajimehoshi/ebiten/v2"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// TriggerType identifies what happened to a trigger element.
type TriggerType uint8

const (
	TriggerEnter      TriggerType = iota // pointer moved onto the element
	TriggerLeave                         // pointer moved off the element
	TriggerTouchStart                    // a new touch landed on the element
)

var triggerNames = [...]string{"enter", "leave", "touchstart"}

func (t TriggerType) String() string {
	if int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return "trigger?"
}

// TriggerEvent is one pointer transition on a trigger element.
type TriggerEvent struct {
	Type      TriggerType
	Element   *Element
	PointerID int
}

// PointerSample is the state of one pointer for a frame, in viewport
// coordinates.
type PointerSample struct {
	ID      int
	X, Y    float64
	Pressed bool
}

// HitFunc returns the trigger element under a viewport point, or nil.
type HitFunc func(x, y float64) *Element

// --- Per-pointer state ---

type pointerState struct {
	down  bool
	hover *Element
	seen  bool
}

// TriggerTracker turns raw pointer samples into enter, leave and touch start
// events. The mouse produces hover enter/leave; touches only produce a touch
// start when they land.
type TriggerTracker struct {
	pointers [maxPointers]pointerState
	events   []TriggerEvent

	// ebiten touch bookkeeping
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID
	samples   []PointerSample
}

// Process runs the pointer state machine for one frame. Pointers missing
// from samples are treated as gone. The returned slice is reused by the next
// call.
func (tt *TriggerTracker) Process(samples []PointerSample, hit HitFunc) []TriggerEvent {
	tt.events = tt.events[:0]
	for i := range tt.pointers {
		tt.pointers[i].seen = false
	}
	for _, s := range samples {
		if s.ID < 0 || s.ID >= maxPointers {
			continue
		}
		ps := &tt.pointers[s.ID]
		ps.seen = true
		target := hit(s.X, s.Y)
		if s.ID == 0 {
			tt.hover(ps, 0, target)
			continue
		}
		if !ps.down && target != nil {
			tt.emit(TriggerTouchStart, target, s.ID)
		}
		ps.down = true
	}
	for i := range tt.pointers {
		ps := &tt.pointers[i]
		if ps.seen {
			continue
		}
		if i == 0 {
			tt.hover(ps, 0, nil)
		}
		ps.down = false
	}
	return tt.events
}

func (tt *TriggerTracker) hover(ps *pointerState, id int, target *Element) {
	if target == ps.hover {
		return
	}
	if ps.hover != nil {
		tt.emit(TriggerLeave, ps.hover, id)
	}
	if target != nil {
		tt.emit(TriggerEnter, target, id)
	}
	ps.hover = target
}

func (tt *TriggerTracker) emit(typ TriggerType, el *Element, id int) {
	tt.events = append(tt.events, TriggerEvent{Type: typ, Element: el, PointerID: id})
}

// Poll samples the ebiten cursor and touches and processes them. The cursor
// is dropped when it lies outside the w x h viewport.
func (tt *TriggerTracker) Poll(w, h int, hit HitFunc) []TriggerEvent {
	tt.samples = tt.samples[:0]
	mx, my := ebiten.CursorPosition()
	if mx >= 0 && my >= 0 && mx < w && my < h {
		tt.samples = append(tt.samples, PointerSample{
			ID: 0, X: float64(mx), Y: float64(my),
			Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		})
	}

	tt.touchIDs = ebiten.AppendTouchIDs(tt.touchIDs[:0])
	var active [maxPointers]bool
	for _, tid := range tt.touchIDs {
		slot := tt.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		x, y := ebiten.TouchPosition(tid)
		tt.samples = append(tt.samples, PointerSample{ID: slot, X: float64(x), Y: float64(y), Pressed: true})
	}
	for i := 1; i < maxPointers; i++ {
		if tt.touchUsed[i] && !active[i] {
			tt.touchUsed[i] = false
			tt.touchMap[i] = 0
		}
	}
	return tt.Process(tt.samples, hit)
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (tt *TriggerTracker) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if tt.touchUsed[i] && tt.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !tt.touchUsed[i] {
			tt.touchUsed[i] = true
			tt.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// VariantPicker chooses the variant for a trigger element. Returning nil
// ignores the element.
type VariantPicker func(*Element) *Variant

// HandleTrigger applies a trigger event: enter starts a session, leave stops
// it and a touch start clears everything before starting one.
func (c *Controller) HandleTrigger(ev TriggerEvent, pick VariantPicker) {
	switch ev.Type {
	case TriggerEnter:
		if v := pick(ev.Element); v != nil {
			c.Start(ev.Element, v)
		}
	case TriggerLeave:
		c.Stop(ev.Element)
	case TriggerTouchStart:
		c.StopAll()
		if v := pick(ev.Element); v != nil {
			c.Start(ev.Element, v)
		}
	}
}

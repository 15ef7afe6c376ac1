package sprout

import (
	"errors"
	"testing"
	"time"
)

func TestNewControllerNoSurface(t *testing.T) {
	page := newFakePage()
	if _, err := NewController(nil, page, page); !errors.Is(err, ErrNoSurface) {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
}

func TestControllerStartStop(t *testing.T) {
	page := newFakePage()
	card := page.add("card", KindCard, Rect{X: 100, Y: 100, Width: 200, Height: 120})
	c, surf := newTestController(t, page)

	tr := c.Start(card, mustPreset(t, "circuit"))
	if tr == nil || len(tr.Segments) == 0 {
		t.Fatal("expected a grown tree")
	}
	if !c.Running() || c.Active() != 1 || c.Tree(card) != tr {
		t.Fatalf("running=%v active=%d", c.Running(), c.Active())
	}
	if c.Occupancy().Len() == 0 {
		t.Fatal("expected claims after start")
	}

	if !c.Stop(card) {
		t.Fatal("Stop returned false for an active element")
	}
	if c.Running() || c.Active() != 0 || c.Occupancy().Len() != 0 {
		t.Errorf("after stop: running=%v active=%d occupied=%d", c.Running(), c.Active(), c.Occupancy().Len())
	}
	clears := surf.clears
	if c.Stop(card) {
		t.Error("second Stop returned true")
	}
	c.StopAll()
	if c.Active() != 0 || surf.clears != clears+1 {
		t.Errorf("StopAll on idle controller: active=%d clears=%d", c.Active(), surf.clears)
	}
}

func TestControllerStartTwiceKeepsTree(t *testing.T) {
	page := newFakePage()
	card := page.add("card", KindCard, Rect{X: 100, Y: 100, Width: 200, Height: 120})
	c, _ := newTestController(t, page)
	v := mustPreset(t, "circuit")

	first := c.Start(card, v)
	claims := c.Occupancy().Len()
	if again := c.Start(card, v); again != first {
		t.Error("restarting an active element replaced its tree")
	}
	if c.Occupancy().Len() != claims || c.Active() != 1 {
		t.Errorf("occupied %d -> %d, active %d", claims, c.Occupancy().Len(), c.Active())
	}
}

func TestControllerStopReleasesOnlyOwnClaims(t *testing.T) {
	page := newFakePage()
	a := page.add("a", KindCard, Rect{X: 100, Y: 100, Width: 150, Height: 90})
	b := page.add("b", KindCard, Rect{X: 300, Y: 100, Width: 150, Height: 90})
	c, _ := newTestController(t, page)
	v := mustPreset(t, "circuit")

	ta := c.Start(a, v)
	tb := c.Start(b, v)
	keepB := append([]Key(nil), c.Occupancy().Claimed(tb.ID)...)
	if len(c.Occupancy().Claimed(ta.ID)) == 0 || len(keepB) == 0 {
		t.Fatal("both trees should hold claims")
	}

	c.Stop(a)
	if got := len(c.Occupancy().Claimed(ta.ID)); got != 0 {
		t.Errorf("stopped tree still holds %d keys", got)
	}
	if got := c.Occupancy().Claimed(tb.ID); len(got) != len(keepB) {
		t.Errorf("other tree keys %d -> %d", len(keepB), len(got))
	}
	if c.Occupancy().Len() != len(keepB) {
		t.Errorf("occupancy = %d, want %d", c.Occupancy().Len(), len(keepB))
	}
}

func TestControllerFamilyExclusivity(t *testing.T) {
	page := newFakePage()
	a := page.add("a", KindCard, Rect{X: 100, Y: 100, Width: 150, Height: 90})
	b := page.add("b", KindCard, Rect{X: 300, Y: 100, Width: 150, Height: 90})
	d := page.add("d", KindCard, Rect{X: 500, Y: 100, Width: 150, Height: 90})
	c, _ := newTestController(t, page)

	c.Start(a, mustPreset(t, "circuit"))
	c.Start(b, mustPreset(t, "circuit"))
	if c.Active() != 2 {
		t.Fatalf("active = %d, want 2 circuit trees", c.Active())
	}

	c.Start(d, mustPreset(t, "skyline"))
	if c.Active() != 1 || c.Tree(d) == nil {
		t.Fatalf("skyline should replace the circuit trees, active = %d", c.Active())
	}
	if c.Occupancy().Len() != 0 {
		t.Errorf("circuit claims left behind: %d", c.Occupancy().Len())
	}

	c.Start(a, mustPreset(t, "skyline"))
	if c.Active() != 1 || c.Tree(a) == nil || c.Tree(d) != nil {
		t.Error("exclusive variant must hold a single tree")
	}
}

func TestControllerEmptyElement(t *testing.T) {
	page := newFakePage()
	hidden := page.add("hidden", KindCard, Rect{X: 100, Y: 100})
	c, _ := newTestController(t, page)
	if tr := c.Start(hidden, mustPreset(t, "circuit")); tr != nil {
		t.Error("zero-size element started a tree")
	}
	if c.Running() {
		t.Error("controller running with no trees")
	}
}

func TestControllerProgressWavefront(t *testing.T) {
	page := newFakePage()
	card := page.add("card", KindCard, Rect{X: 100, Y: 100, Width: 200, Height: 120})
	c, _ := newTestController(t, page)
	tr := c.Start(card, mustPreset(t, "circuit"))

	prev := make(map[*Segment]float64, len(tr.Segments))
	for tick := 0; tick < 200; tick++ {
		c.Update()
		for _, seg := range tr.Segments {
			if seg.Progress < prev[seg] {
				t.Fatalf("tick %d: progress went back from %v to %v", tick, prev[seg], seg.Progress)
			}
			if seg.Progress > 1 {
				t.Fatalf("tick %d: progress %v above 1", tick, seg.Progress)
			}
			if seg.Parent != nil && seg.Progress > 0 && seg.Parent.Progress < 1 {
				t.Fatalf("tick %d: child drawing before parent finished", tick)
			}
			prev[seg] = seg.Progress
		}
	}
	if !tr.Complete() {
		t.Error("tree not complete after 200 ticks")
	}
}

func TestControllerIdleDoesNothing(t *testing.T) {
	page := newFakePage()
	c, surf := newTestController(t, page)
	c.Update()
	c.Draw()
	if surf.draws() != 0 || surf.clears != 0 {
		t.Errorf("idle controller drew: draws=%d clears=%d", surf.draws(), surf.clears)
	}
}

func TestControllerCompactScroll(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		active int
	}{
		{"compact", 500, 0},
		{"wide", 1280, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			card := page.add("card", KindCard, Rect{X: 100, Y: 100, Width: 200, Height: 120})
			c, surf := newTestController(t, page)
			surf.w = tt.width
			c.Start(card, mustPreset(t, "circuit"))

			page.scroll = Vec2{Y: 30}
			c.Scrolled(page.scroll)
			if c.Active() != tt.active {
				t.Errorf("active = %d, want %d", c.Active(), tt.active)
			}
		})
	}
}

func TestControllerScrollKeepsPageGeometry(t *testing.T) {
	page := newFakePage()
	card := page.add("card", KindCard, Rect{X: 100, Y: 300, Width: 200, Height: 120})
	c, _ := newTestController(t, page)

	page.scroll = Vec2{Y: 200}
	c.Scrolled(page.scroll)
	tr := c.Start(card, mustPreset(t, "circuit"))
	box := Rect{X: 100, Y: 300, Width: 200, Height: 120}.Inflate(12)
	for _, r := range tr.Roots {
		if !box.Contains(r.Start.X, r.Start.Y) {
			t.Errorf("root starts at %v, away from page box %v", r.Start, box)
		}
	}
}

func TestControllerTouchClearsOthers(t *testing.T) {
	page := newFakePage()
	a := page.add("a", KindCard, Rect{X: 100, Y: 100, Width: 150, Height: 90})
	b := page.add("b", KindCard, Rect{X: 300, Y: 100, Width: 150, Height: 90})
	c, _ := newTestController(t, page)
	v := mustPreset(t, "circuit")

	c.Start(a, v)
	c.HandleTrigger(TriggerEvent{Type: TriggerTouchStart, Element: b, PointerID: 1}, func(*Element) *Variant { return v })
	if c.Active() != 1 || c.Tree(b) == nil {
		t.Errorf("touch should leave only b active, active = %d", c.Active())
	}
	c.HandleTrigger(TriggerEvent{Type: TriggerLeave, Element: b}, func(*Element) *Variant { return v })
	if c.Active() != 0 {
		t.Errorf("leave did not stop b")
	}
}

func TestControllerObstaclesFromPage(t *testing.T) {
	page := newFakePage()
	card := page.add("card", KindCard, Rect{X: 100, Y: 100, Width: 100, Height: 50})
	page.add("below", KindCard, Rect{X: 100, Y: 150, Width: 100, Height: 50})
	c, _ := newTestController(t, page)

	tr := c.Start(card, mustPreset(t, "circuit"))
	for _, seg := range tr.Segments {
		if seg.Edge == EdgeBottom && seg.Parent == nil && seg.End.Y > seg.Start.Y {
			t.Errorf("bottom root %v->%v grew into the card below", seg.Start, seg.End)
		}
	}
}

type countingObserver struct {
	started, stopped, ticks int
	released                int
}

func (o *countingObserver) GrowthStarted(string, int, int, time.Duration) { o.started++ }
func (o *countingObserver) GrowthStopped(_ string, released int)          { o.stopped++; o.released += released }
func (o *countingObserver) Ticked(int, int, time.Duration)                { o.ticks++ }

func TestControllerObserver(t *testing.T) {
	page := newFakePage()
	card := page.add("card", KindCard, Rect{X: 100, Y: 100, Width: 200, Height: 120})
	obs := &countingObserver{}
	c, _ := newTestController(t, page, WithObserver(obs))

	c.Start(card, mustPreset(t, "circuit"))
	claims := c.Occupancy().Len()
	c.Update()
	c.Update()
	c.Stop(card)
	c.Update()

	if obs.started != 1 || obs.stopped != 1 || obs.ticks != 2 {
		t.Errorf("observer = %+v", *obs)
	}
	if obs.released != claims {
		t.Errorf("released = %d, want %d", obs.released, claims)
	}
}

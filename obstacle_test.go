package sprout

import "testing"

func TestBuildObstacles(t *testing.T) {
	page := newFakePage()
	trigger := page.add("trigger", KindCard, Rect{X: 100, Y: 100, Width: 100, Height: 50})
	nested := page.add("nested", KindButton, Rect{X: 110, Y: 110, Width: 20, Height: 10})
	nested.Parent = trigger
	page.add("card", KindCard, Rect{X: 300, Y: 100, Width: 100, Height: 50})
	page.add("heading", KindHeading, Rect{X: 100, Y: 20, Width: 200, Height: 30})
	page.add("hidden", KindCard, Rect{X: 500, Y: 500})
	page.scroll = Vec2{Y: 10}

	c := Clearance{Default: 4, Heading: 10}
	ix := BuildObstacles(trigger, page, page, 0, c)
	if ix.Len() != 2 {
		t.Fatalf("obstacles = %v, want card and heading", ix.Rects())
	}
	want := []Rect{
		{X: 296, Y: 96, Width: 108, Height: 58},
		{X: 90, Y: 10, Width: 220, Height: 50},
	}
	for i, r := range ix.Rects() {
		if r != want[i] {
			t.Errorf("rect %d = %v, want %v", i, r, want[i])
		}
	}

	cards := BuildObstacles(trigger, page, page, MaskOf(KindCard), c)
	if cards.Len() != 1 {
		t.Errorf("card mask kept %d obstacles, want 1", cards.Len())
	}
}

func TestObstacleIndexContains(t *testing.T) {
	ix := NewObstacleIndex(Rect{X: 0, Y: 0, Width: 10, Height: 10})
	ix.SetInterior(Rect{X: 100, Y: 100, Width: 50, Height: 50}, 5)
	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{10, 10}, true},    // rect edges are inclusive
		{Vec2{11, 5}, false},    // outside
		{Vec2{125, 125}, true},  // interior
		{Vec2{105, 125}, false}, // interior edge is exclusive
		{Vec2{102, 125}, false}, // inside the box but within the self margin
	}
	for _, tt := range tests {
		if got := ix.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	var nilIndex *ObstacleIndex
	if nilIndex.Contains(Vec2{}) || nilIndex.Len() != 0 {
		t.Error("nil index should be empty")
	}
}

func TestSeedsPerimeter(t *testing.T) {
	v := mustPreset(t, "circuit")
	v.SeedJitter = 0
	box := Rect{X: 120, Y: 120, Width: 130, Height: 65}
	seeds := Seeds(box, v, testRand())

	counts := map[Edge]int{}
	for _, s := range seeds {
		counts[s.Edge]++
		if s.Pos != QuantizePoint(s.Pos, v.Grid) {
			t.Errorf("seed %v off lattice", s.Pos)
		}
	}
	// 130/65 = 2 seeds on long edges, 65/65 = 1 on short ones.
	want := map[Edge]int{EdgeTop: 2, EdgeBottom: 2, EdgeLeft: 1, EdgeRight: 1}
	for e, n := range want {
		if counts[e] != n {
			t.Errorf("%v seeds = %d, want %d", e, counts[e], n)
		}
	}
	if Seeds(Rect{}, v, testRand()) != nil {
		t.Error("empty box produced seeds")
	}
}

func TestSeedsInset(t *testing.T) {
	v := mustPreset(t, "skyline")
	v.Stalk.Jitter = 0
	box := Rect{X: 0, Y: 0, Width: 100, Height: 20}
	seeds := Seeds(box, v, testRand())

	counts := map[Edge]int{}
	for _, s := range seeds {
		counts[s.Edge]++
	}
	// (100-30)/35 = 2 intervals -> 3 seeds; short sides fall back to one centred seed.
	if counts[EdgeTop] != 3 || counts[EdgeLeft] != 1 {
		t.Errorf("counts = %v", counts)
	}
	for _, s := range seeds {
		if s.Edge == EdgeLeft && s.Pos != (Vec2{0, 10}) {
			t.Errorf("left fallback seed at %v, want (0, 10)", s.Pos)
		}
	}
}

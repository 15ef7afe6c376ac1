package sprout

import "testing"

func TestOccupancyTryClaim(t *testing.T) {
	o := NewOccupancy()
	if !o.TryClaim([]Key{{1, 1}, {1, 2}}, 1) {
		t.Fatal("first claim should succeed")
	}
	if o.TryClaim([]Key{{1, 2}, {1, 3}}, 2) {
		t.Error("claim overlapping another tree should fail")
	}
	if o.Occupied(Key{1, 3}) {
		t.Error("failed claim must not leave partial entries")
	}
	if !o.TryClaim([]Key{{5, 5}, {5, 5}}, 2) {
		t.Error("repeated key in one batch should be claimed once")
	}
	if got := len(o.Claimed(2)); got != 1 {
		t.Errorf("Claimed(2) = %d keys, want 1", got)
	}
	if o.TryClaim([]Key{{1, 1}}, 1) {
		t.Error("tree must not re-claim its own point")
	}
	if got := o.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
}

func TestOccupancyReleaseExact(t *testing.T) {
	o := NewOccupancy()
	a := []Key{{0, 0}, {0, 1}, {0, 2}}
	b := []Key{{9, 0}, {9, 1}}
	o.Claim(a, 1)
	o.Claim(b, 2)

	before := snapshotKeys(o)
	if n := o.Release(1); n != len(a) {
		t.Errorf("Release = %d, want %d", n, len(a))
	}
	after := snapshotKeys(o)

	removed := map[Key]bool{}
	for k := range before {
		if !after[k] {
			removed[k] = true
		}
	}
	if len(removed) != len(a) {
		t.Fatalf("removed %d keys, want %d", len(removed), len(a))
	}
	for _, k := range a {
		if !removed[k] {
			t.Errorf("key %v not released", k)
		}
	}
	for _, k := range b {
		if id, ok := o.Owner(k); !ok || id != 2 {
			t.Errorf("key %v owner = %v,%v, want 2,true", k, id, ok)
		}
	}
}

func TestOccupancyReleaseTwice(t *testing.T) {
	o := NewOccupancy()
	o.Claim([]Key{{3, 3}}, 7)
	o.Claim([]Key{{4, 4}}, 8)
	o.Release(7)
	if n := o.Release(7); n != 0 {
		t.Errorf("second Release = %d, want 0", n)
	}
	if o.Len() != 1 {
		t.Errorf("Len = %d, want 1", o.Len())
	}
}

func snapshotKeys(o *Occupancy) map[Key]bool {
	m := make(map[Key]bool, o.Len())
	for k := range o.owner {
		m[k] = true
	}
	return m
}

package sprout

// TreeID identifies a growth tree within one controller.
type TreeID uint32

// Occupancy is the set of lattice points claimed by active growth trees. It
// is shared by every tree drawn on the same surface so that traces from
// different elements never overlap. Each point has exactly one owner.
//
// Occupancy is not safe for concurrent use; like the rest of the package it
// is driven from the game loop only.
type Occupancy struct {
	owner  map[Key]TreeID
	byTree map[TreeID][]Key
}

// NewOccupancy returns an empty occupancy set.
func NewOccupancy() *Occupancy {
	return &Occupancy{
		owner:  make(map[Key]TreeID),
		byTree: make(map[TreeID][]Key),
	}
}

// Occupied reports whether k is claimed by any tree.
func (o *Occupancy) Occupied(k Key) bool {
	_, ok := o.owner[k]
	return ok
}

// Owner returns the tree that claimed k.
func (o *Occupancy) Owner(k Key) (TreeID, bool) {
	id, ok := o.owner[k]
	return id, ok
}

// Claim adds keys for tree id. Keys already held by any tree are left with
// their current owner.
func (o *Occupancy) Claim(keys []Key, id TreeID) {
	for _, k := range keys {
		if _, held := o.owner[k]; held {
			continue
		}
		o.owner[k] = id
		o.byTree[id] = append(o.byTree[id], k)
	}
}

// TryClaim claims every key for tree id only if none of them is already
// held by a tree. Repeated keys in the batch are claimed once. It reports
// whether the claim happened. Testing and claiming in one step keeps two
// branches from landing on the same cell.
func (o *Occupancy) TryClaim(keys []Key, id TreeID) bool {
	for _, k := range keys {
		if _, held := o.owner[k]; held {
			return false
		}
	}
	o.Claim(keys, id)
	return true
}

// Release removes every key claimed by tree id and returns how many were
// removed. Releasing an unknown tree is a no-op.
func (o *Occupancy) Release(id TreeID) int {
	keys, ok := o.byTree[id]
	if !ok {
		return 0
	}
	for _, k := range keys {
		if o.owner[k] == id {
			delete(o.owner, k)
		}
	}
	delete(o.byTree, id)
	return len(keys)
}

// Claimed returns the keys held by tree id. The returned slice MUST NOT be mutated.
func (o *Occupancy) Claimed(id TreeID) []Key {
	return o.byTree[id]
}

// Len returns the total number of claimed keys.
func (o *Occupancy) Len() int {
	return len(o.owner)
}

// Reset releases every claim.
func (o *Occupancy) Reset() {
	clear(o.owner)
	clear(o.byTree)
}

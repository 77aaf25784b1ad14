package hopper

// Handle is a non-owning reference to a node stored in a World's arena.
// The zero Handle refers to nothing. A Handle becomes stale once its node is
// destroyed: the slot's generation moves on and lookups return nil.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h refers to nothing.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// worldHandle is the reserved handle of the World itself (slot 0).
var worldHandle = Handle{index: 0, gen: 1}

type arenaSlot struct {
	gen  uint32
	node Node
}

// arena owns every node of a World and hands out generational handles.
// Slot 0 is reserved for the World.
type arena struct {
	slots   []arenaSlot
	freeIDs []uint32 // stack of recycled slot indices
	live    int
}

func newArena(capacity int) arena {
	a := arena{slots: make([]arenaSlot, 1, capacity+1)}
	a.slots[0].gen = worldHandle.gen
	return a
}

// insert stores n and returns its handle.
func (a *arena) insert(n Node) Handle {
	var idx uint32
	if last := len(a.freeIDs) - 1; last >= 0 {
		idx = a.freeIDs[last]
		a.freeIDs = a.freeIDs[:last]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, arenaSlot{gen: 1})
	}
	s := &a.slots[idx]
	s.node = n
	a.live++
	return Handle{index: idx, gen: s.gen}
}

// release frees the slot behind h. Stale or zero handles are ignored.
func (a *arena) release(h Handle) {
	if !a.valid(h) || h.index == 0 {
		return
	}
	s := &a.slots[h.index]
	s.node = nil
	s.gen++
	if s.gen == 0 { // wrapped; zero is reserved for "no handle"
		s.gen = 1
	}
	a.freeIDs = append(a.freeIDs, h.index)
	a.live--
}

// valid reports whether h still refers to a live slot.
func (a *arena) valid(h Handle) bool {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return false
	}
	return a.slots[h.index].gen == h.gen
}

// get returns the node behind h, or nil when h is zero, stale, or the World.
func (a *arena) get(h Handle) Node {
	if h.index == 0 || !a.valid(h) {
		return nil
	}
	return a.slots[h.index].node
}

// len returns the number of live nodes.
func (a *arena) len() int {
	return a.live
}

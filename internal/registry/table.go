package registry

import "sync"

// Handle addresses one slot in the instance table. The generation counter
// detects stale handles: a handle whose generation no longer matches the
// slot's is treated as pointing at a destroyed target.
type Handle struct {
	index int
	gen   uint32
}

// Zero returns true for the zero handle, which never resolves.
func (h Handle) Zero() bool {
	return h.gen == 0
}

type slot struct {
	target any
	gen    uint32
	live   bool
}

// instanceTable holds non-owning references to live target objects. Slots
// are recycled through a free list; invalidation bumps the generation so
// outstanding handles fail their liveness check instead of resolving a
// recycled slot.
type instanceTable struct {
	mu    sync.RWMutex
	slots []slot
	free  []int
}

func newInstanceTable() *instanceTable {
	return &instanceTable{}
}

// Put stores a target and returns its handle.
func (t *instanceTable) Put(target any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[idx]
		s.gen++
		s.target = target
		s.live = true
		return Handle{index: idx, gen: s.gen}
	}

	t.slots = append(t.slots, slot{target: target, gen: 1, live: true})
	return Handle{index: len(t.slots) - 1, gen: 1}
}

// Get resolves a handle to its target. The second return is false when the
// handle is stale or the target was invalidated.
func (t *instanceTable) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if h.Zero() || h.index < 0 || h.index >= len(t.slots) {
		return nil, false
	}
	s := t.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return s.target, true
}

// Invalidate marks a handle's slot dead and recycles it. Used both by
// instance removal and by tests simulating a collected target.
func (t *instanceTable) Invalidate(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h.Zero() || h.index < 0 || h.index >= len(t.slots) {
		return
	}
	s := &t.slots[h.index]
	if !s.live || s.gen != h.gen {
		return
	}
	s.live = false
	s.target = nil
	t.free = append(t.free, h.index)
}

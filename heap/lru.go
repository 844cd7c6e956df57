package heap

import (
	"container/list"
	"sync"
)

// LRUReplacer selects victims in least-recently-unpinned order. Recency is
// defined purely by Unpin call order; a fetch hit only removes eligibility.
// The ordered list plus the element lookup make all operations O(1).
type LRUReplacer struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = least recently unpinned
	elems    map[FrameId]*list.Element
}

// NewLRUReplacer creates a replacer tracking at most capacity frames.
func NewLRUReplacer(capacity int) *LRUReplacer {
	return &LRUReplacer{
		capacity: capacity,
		order:    list.New(),
		elems:    make(map[FrameId]*list.Element, capacity),
	}
}

// Victim pops the least-recently-unpinned frame, or reports false if the
// registry is empty.
func (r *LRUReplacer) Victim() (FrameId, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	front := r.order.Front()
	if front == nil {
		return 0, false
	}
	id := front.Value.(FrameId)
	r.order.Remove(front)
	delete(r.elems, id)
	return id, true
}

// Pin removes the frame from the evictable registry if present.
func (r *LRUReplacer) Pin(id FrameId) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.elems[id]; ok {
		r.order.Remove(el)
		delete(r.elems, id)
	}
}

// Unpin inserts the frame as most-recently-evictable. No-op if the frame is
// already tracked or the registry is full.
func (r *LRUReplacer) Unpin(id FrameId) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.elems[id]; ok {
		return
	}
	if r.order.Len() >= r.capacity {
		return
	}
	r.elems[id] = r.order.PushBack(id)
}

// Size returns the number of frames currently eligible for eviction.
func (r *LRUReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

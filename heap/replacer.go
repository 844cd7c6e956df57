package heap

// Replacer tracks which frames are eligible for eviction and picks victims.
// Implementations synchronize independently of the pool lock and must never
// call back into the pool.
type Replacer interface {
	// Victim removes and returns the frame that has been evictable the
	// longest. The second return is false when nothing is evictable.
	Victim() (FrameId, bool)

	// Pin removes the frame from the evictable set; no-op if untracked.
	Pin(id FrameId)

	// Unpin marks the frame most-recently-evictable unless it is already
	// tracked or the replacer is at capacity.
	Unpin(id FrameId)

	// Size returns the number of evictable frames.
	Size() int
}

package heap

// Frame is one fixed-size page buffer in the pool's arena, together with the
// metadata the pool needs to manage it. A Frame returned by FetchPage or
// NewPage is valid only until the matching UnpinPage; callers must not retain
// it past that point.
type Frame struct {
	data     []byte
	id       PageId
	pinCount int
	dirty    bool
}

func newFrame(pageSize int) *Frame {
	return &Frame{
		data: make([]byte, pageSize),
		id:   PageId{FD: -1, PageNo: InvalidPageNo},
	}
}

// Id returns the PageId the frame currently holds.
func (f *Frame) Id() PageId {
	return f.id
}

// Data exposes the frame's page bytes. The slice is only valid while the
// frame is pinned by the caller.
func (f *Frame) Data() []byte {
	return f.data
}

// PinCount returns the current reference count.
func (f *Frame) PinCount() int {
	return f.pinCount
}

// IsDirty reports whether the frame holds unflushed modifications.
func (f *Frame) IsDirty() bool {
	return f.dirty
}

// reset clears the frame back to the unassigned state.
func (f *Frame) reset() {
	for i := range f.data {
		f.data[i] = 0
	}
	f.id = PageId{FD: -1, PageNo: InvalidPageNo}
	f.pinCount = 0
	f.dirty = false
}

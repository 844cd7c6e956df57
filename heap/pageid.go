package heap

import "fmt"

// InvalidPageNo marks an unassigned page number.
const InvalidPageNo int32 = -1

// FrameId indexes a frame in the pool's arena.
type FrameId int

// PageId identifies a page by the file it lives in and its page number.
// It is comparable and used directly as the page-table key.
type PageId struct {
	FD     int
	PageNo int32
}

// Valid reports whether the id refers to a real page.
func (p PageId) Valid() bool {
	return p.PageNo != InvalidPageNo
}

func (p PageId) String() string {
	return fmt.Sprintf("fd=%d page=%d", p.FD, p.PageNo)
}

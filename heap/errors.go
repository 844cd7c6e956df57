package heap

import "errors"

var (
	// ErrPoolExhausted means every frame is pinned and none is free.
	ErrPoolExhausted = errors.New("no free or evictable frame available")

	// ErrPageNotResident means the PageId is not in the page table.
	ErrPageNotResident = errors.New("page not resident in buffer pool")

	// ErrPageNotPinned means an unpin was attempted on a zero-pin-count page.
	ErrPageNotPinned = errors.New("page pin count is already zero")

	// ErrPagePinned means a delete was attempted on a page still in use.
	ErrPagePinned = errors.New("page pin count is nonzero")
)

package record

import "errors"

var (
	// ErrInvalidPage means the page number is outside the file's data pages.
	ErrInvalidPage = errors.New("page number out of range")

	// ErrInvalidSlot means the slot number is outside [0, recordsPerPage).
	ErrInvalidSlot = errors.New("slot number out of range")

	// ErrPageFull is a defensive error: a page obtained through the
	// free-page list reported no free slot. It should be unreachable while
	// the free-list invariant holds.
	ErrPageFull = errors.New("page has no free slot")

	// ErrRecordSize means the payload length does not match the file's
	// fixed record size.
	ErrRecordSize = errors.New("payload length does not match record size")
)

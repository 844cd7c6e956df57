package record

import "fmt"

// NoPage is the end-of-list sentinel for the free-page chain and the invalid
// page marker in Rids.
const NoPage int32 = -1

// FirstDataPage is the number of the first record-bearing page; page 0 holds
// the file header.
const FirstDataPage int32 = 1

// Rid addresses a stored record by page and slot. It stays valid until the
// record is deleted.
type Rid struct {
	PageNo int32
	SlotNo int32
}

// InvalidRid is returned by operations that fail to produce a position.
var InvalidRid = Rid{PageNo: NoPage, SlotNo: -1}

func (r Rid) String() string {
	return fmt.Sprintf("(%d,%d)", r.PageNo, r.SlotNo)
}

// Record is a fixed-length byte payload copied out of a slot. The slice is
// owned by the caller.
type Record []byte

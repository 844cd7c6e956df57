// Package record packs fixed-length records into bitmap-indexed slots across
// pages chained by a free-page list, on top of the buffer pool.
package record

import (
	"encoding/binary"
	"fmt"

	"ironDB/disk"
	"ironDB/heap"
)

// FileHandle operates on one open heap file. Every operation pins the page
// it touches, mutates it in place, and unpins on every exit path; no page
// header field is read after the pin is released.
//
// Concurrent calls on distinct Rids are safe through the pool's locking;
// calls on the same Rid race unless serialized by the caller.
type FileHandle struct {
	bp  *heap.BufferPoolMgr
	dm  *disk.Manager
	fd  int
	hdr FileHeader
}

// pageHandle is a pinned view of one data page. It is valid only until the
// matching unpin.
type pageHandle struct {
	frame  *heap.Frame
	hdr    *FileHeader
	pageNo int32
}

func (ph pageHandle) numRecords() int32 {
	return int32(binary.BigEndian.Uint32(ph.frame.Data()[pageNumRecordsOff:]))
}

func (ph pageHandle) setNumRecords(n int32) {
	binary.BigEndian.PutUint32(ph.frame.Data()[pageNumRecordsOff:], uint32(n))
}

func (ph pageHandle) nextFreePageNo() int32 {
	return int32(binary.BigEndian.Uint32(ph.frame.Data()[pageNextFreeOff:]))
}

func (ph pageHandle) setNextFreePageNo(no int32) {
	binary.BigEndian.PutUint32(ph.frame.Data()[pageNextFreeOff:], uint32(no))
}

func (ph pageHandle) bitmap() []byte {
	return ph.frame.Data()[pageHdrSize : pageHdrSize+bitmapLen(ph.hdr.NumRecordsPerPage)]
}

func (ph pageHandle) slot(i int32) []byte {
	off := pageHdrSize + bitmapLen(ph.hdr.NumRecordsPerPage) + i*ph.hdr.RecordSize
	return ph.frame.Data()[off : off+ph.hdr.RecordSize]
}

// FD returns the file descriptor this handle operates on.
func (fh *FileHandle) FD() int {
	return fh.fd
}

// Header returns a copy of the in-memory file header.
func (fh *FileHandle) Header() FileHeader {
	return fh.hdr
}

// fetchPageHandle pins the given data page. The caller must unpin it.
func (fh *FileHandle) fetchPageHandle(pageNo int32) (pageHandle, error) {
	if pageNo < FirstDataPage || pageNo >= fh.hdr.NumPages {
		return pageHandle{}, fmt.Errorf("page %d of %d: %w", pageNo, fh.hdr.NumPages, ErrInvalidPage)
	}
	frame, err := fh.bp.FetchPage(heap.PageId{FD: fh.fd, PageNo: pageNo})
	if err != nil {
		return pageHandle{}, err
	}
	return pageHandle{frame: frame, hdr: &fh.hdr, pageNo: pageNo}, nil
}

// newPageHandle appends a fresh page to the file and pins it.
func (fh *FileHandle) newPageHandle() (pageHandle, error) {
	frame, err := fh.bp.NewPage(fh.fd)
	if err != nil {
		return pageHandle{}, err
	}
	ph := pageHandle{frame: frame, hdr: &fh.hdr, pageNo: frame.Id().PageNo}
	ph.setNumRecords(0)
	ph.setNextFreePageNo(NoPage)
	fh.hdr.NumPages++
	return ph, nil
}

// createPageHandle returns a pinned page guaranteed to have at least one
// free slot: the head of the free-page list, or a newly appended page when
// the list is empty. Full pages are always unlinked on insert, which is what
// upholds the guarantee.
func (fh *FileHandle) createPageHandle() (pageHandle, error) {
	if fh.hdr.FirstFreePageNo == NoPage {
		ph, err := fh.newPageHandle()
		if err != nil {
			return pageHandle{}, err
		}
		fh.hdr.FirstFreePageNo = ph.pageNo
		return ph, nil
	}
	return fh.fetchPageHandle(fh.hdr.FirstFreePageNo)
}

func (fh *FileHandle) unpin(ph pageHandle, dirty bool) error {
	return fh.bp.UnpinPage(heap.PageId{FD: fh.fd, PageNo: ph.pageNo}, dirty)
}

// GetRecord copies the record at rid out of its slot. The bitmap bit is not
// consulted: a get on an unoccupied slot returns whatever bytes the slot
// holds. Callers are expected to present Rids they know to be live.
func (fh *FileHandle) GetRecord(rid Rid) (Record, error) {
	if rid.SlotNo < 0 || rid.SlotNo >= fh.hdr.NumRecordsPerPage {
		return nil, fmt.Errorf("slot %d: %w", rid.SlotNo, ErrInvalidSlot)
	}
	ph, err := fh.fetchPageHandle(rid.PageNo)
	if err != nil {
		return nil, err
	}
	rec := make(Record, fh.hdr.RecordSize)
	copy(rec, ph.slot(rid.SlotNo))
	if err := fh.unpin(ph, false); err != nil {
		return nil, err
	}
	return rec, nil
}

// InsertRecord stores buf in the first free slot of a page taken from the
// free-page list and returns the record's Rid. A page filled by the insert
// is unlinked from the list.
func (fh *FileHandle) InsertRecord(buf []byte) (Rid, error) {
	if int32(len(buf)) != fh.hdr.RecordSize {
		return InvalidRid, fmt.Errorf("got %d bytes, record size %d: %w", len(buf), fh.hdr.RecordSize, ErrRecordSize)
	}
	ph, err := fh.createPageHandle()
	if err != nil {
		return InvalidRid, err
	}

	slotNo := bitmapFirstUnset(ph.bitmap(), fh.hdr.NumRecordsPerPage)
	if slotNo < 0 {
		// the free-list invariant says this cannot happen
		if uerr := fh.unpin(ph, false); uerr != nil {
			return InvalidRid, uerr
		}
		return InvalidRid, fmt.Errorf("page %d: %w", ph.pageNo, ErrPageFull)
	}

	copy(ph.slot(slotNo), buf)
	bitmapSet(ph.bitmap(), slotNo)
	n := ph.numRecords() + 1
	ph.setNumRecords(n)
	if n == fh.hdr.NumRecordsPerPage {
		// page is now full: advance the free list past it, reading the
		// link while the page is still pinned
		fh.hdr.FirstFreePageNo = ph.nextFreePageNo()
	}
	if err := fh.unpin(ph, true); err != nil {
		return InvalidRid, err
	}
	return Rid{PageNo: ph.pageNo, SlotNo: slotNo}, nil
}

// InsertRecordAt overwrites the slot at a caller-chosen rid without touching
// the bitmap or record count. Occupancy accounting is the caller's problem;
// this is the restore path used when replaying externally logged state.
func (fh *FileHandle) InsertRecordAt(rid Rid, buf []byte) error {
	if int32(len(buf)) != fh.hdr.RecordSize {
		return fmt.Errorf("got %d bytes, record size %d: %w", len(buf), fh.hdr.RecordSize, ErrRecordSize)
	}
	return fh.overwriteSlot(rid, buf)
}

// UpdateRecord overwrites the record bytes at rid in place.
func (fh *FileHandle) UpdateRecord(rid Rid, buf []byte) error {
	if int32(len(buf)) != fh.hdr.RecordSize {
		return fmt.Errorf("got %d bytes, record size %d: %w", len(buf), fh.hdr.RecordSize, ErrRecordSize)
	}
	return fh.overwriteSlot(rid, buf)
}

func (fh *FileHandle) overwriteSlot(rid Rid, buf []byte) error {
	if rid.SlotNo < 0 || rid.SlotNo >= fh.hdr.NumRecordsPerPage {
		return fmt.Errorf("slot %d: %w", rid.SlotNo, ErrInvalidSlot)
	}
	ph, err := fh.fetchPageHandle(rid.PageNo)
	if err != nil {
		return err
	}
	copy(ph.slot(rid.SlotNo), buf)
	return fh.unpin(ph, true)
}

// DeleteRecord clears the bitmap bit at rid and decrements the page's record
// count. A page that transitions from full back to having one free slot is
// re-linked at the head of the free-page list. The transition is decided and
// the links are written while the page is still pinned.
func (fh *FileHandle) DeleteRecord(rid Rid) error {
	if rid.SlotNo < 0 || rid.SlotNo >= fh.hdr.NumRecordsPerPage {
		return fmt.Errorf("slot %d: %w", rid.SlotNo, ErrInvalidSlot)
	}
	ph, err := fh.fetchPageHandle(rid.PageNo)
	if err != nil {
		return err
	}
	bitmapClear(ph.bitmap(), rid.SlotNo)
	n := ph.numRecords() - 1
	ph.setNumRecords(n)
	if n == fh.hdr.NumRecordsPerPage-1 {
		ph.setNextFreePageNo(fh.hdr.FirstFreePageNo)
		fh.hdr.FirstFreePageNo = ph.pageNo
	}
	return fh.unpin(ph, true)
}

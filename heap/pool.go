package heap

import (
	"fmt"
	"sync"

	"ironDB/disk"
	"ironDB/logger"
)

// BufferPoolMgr caches file pages in a fixed arena of frames. It is the sole
// issuer of disk I/O for cached pages and the sole writer of frame contents.
//
// Every public operation runs under one pool-wide mutex, including any disk
// I/O it performs. This is a deliberate throughput ceiling: splitting the
// lock requires redesigning victim selection and is out of scope for a first
// correct version.
type BufferPoolMgr struct {
	mu        sync.Mutex
	frames    []*Frame
	pageTable map[PageId]FrameId
	freeList  []FrameId
	replacer  Replacer
	dm        *disk.Manager
	log       *logger.Logger
}

// NewBufferPoolMgr creates a pool with numFrames frames backed by dm, using
// replacer for eviction decisions.
func NewBufferPoolMgr(dm *disk.Manager, numFrames int, replacer Replacer, log *logger.Logger) *BufferPoolMgr {
	if log == nil {
		log = logger.NewNop()
	}
	bp := &BufferPoolMgr{
		frames:    make([]*Frame, numFrames),
		pageTable: make(map[PageId]FrameId, numFrames),
		freeList:  make([]FrameId, 0, numFrames),
		replacer:  replacer,
		dm:        dm,
		log:       log.Named("pool"),
	}
	for i := range bp.frames {
		bp.frames[i] = newFrame(dm.PageSize())
		bp.freeList = append(bp.freeList, FrameId(i))
	}
	return bp
}

// findVictimLocked returns a frame to reuse: the free list first, then the
// replacer. Caller holds bp.mu.
func (bp *BufferPoolMgr) findVictimLocked() (FrameId, bool) {
	if len(bp.freeList) > 0 {
		id := bp.freeList[0]
		bp.freeList = bp.freeList[1:]
		return id, true
	}
	return bp.replacer.Victim()
}

// evictLocked writes the frame back if dirty and drops its page-table entry,
// leaving the frame unassigned. The dirty write-back must happen before the
// frame's identity changes. Caller holds bp.mu.
func (bp *BufferPoolMgr) evictLocked(fid FrameId) error {
	frame := bp.frames[fid]
	if !frame.id.Valid() {
		return nil
	}
	if frame.dirty {
		if err := bp.dm.WritePage(frame.id.FD, frame.id.PageNo, frame.data); err != nil {
			return fmt.Errorf("failed to write back evicted page %v: %w", frame.id, err)
		}
		bp.log.Debugw("wrote back dirty page on eviction", "fd", frame.id.FD, "page", frame.id.PageNo)
	}
	delete(bp.pageTable, frame.id)
	frame.reset()
	return nil
}

// FetchPage returns the frame holding pid, pinning it. On a miss the page is
// read from disk into a reclaimed frame. The returned frame is valid until
// the matching UnpinPage.
func (bp *BufferPoolMgr) FetchPage(pid PageId) (*Frame, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if fid, ok := bp.pageTable[pid]; ok {
		frame := bp.frames[fid]
		frame.pinCount++
		bp.replacer.Pin(fid)
		return frame, nil
	}

	fid, ok := bp.findVictimLocked()
	if !ok {
		return nil, ErrPoolExhausted
	}
	if err := bp.evictLocked(fid); err != nil {
		// the victim is untouched; put it back in rotation
		bp.replacer.Unpin(fid)
		return nil, err
	}

	frame := bp.frames[fid]
	if err := bp.dm.ReadPage(pid.FD, pid.PageNo, frame.data); err != nil {
		frame.reset()
		bp.freeList = append(bp.freeList, fid)
		return nil, fmt.Errorf("failed to read page %v: %w", pid, err)
	}
	frame.id = pid
	frame.pinCount = 1
	frame.dirty = false
	bp.pageTable[pid] = fid
	bp.replacer.Pin(fid)
	return frame, nil
}

// UnpinPage drops one reference to pid. dirty is OR-ed into the frame's
// dirty flag; once marked dirty a page stays dirty until flushed. When the
// pin count reaches zero the frame becomes eviction-eligible.
func (bp *BufferPoolMgr) UnpinPage(pid PageId, dirty bool) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	fid, ok := bp.pageTable[pid]
	if !ok {
		return ErrPageNotResident
	}
	frame := bp.frames[fid]
	if frame.pinCount <= 0 {
		return ErrPageNotPinned
	}
	frame.pinCount--
	if dirty {
		frame.dirty = true
	}
	if frame.pinCount == 0 {
		bp.replacer.Unpin(fid)
	}
	return nil
}

// FlushPage writes pid's bytes to disk regardless of pin state and clears
// the dirty flag.
func (bp *BufferPoolMgr) FlushPage(pid PageId) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	fid, ok := bp.pageTable[pid]
	if !ok {
		return ErrPageNotResident
	}
	frame := bp.frames[fid]
	if err := bp.dm.WritePage(pid.FD, pid.PageNo, frame.data); err != nil {
		return fmt.Errorf("failed to flush page %v: %w", pid, err)
	}
	frame.dirty = false
	return nil
}

// FlushAllPages writes back every resident page belonging to fd, clearing
// each dirty flag. Nothing is unpinned or evicted.
func (bp *BufferPoolMgr) FlushAllPages(fd int) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	for pid, fid := range bp.pageTable {
		if pid.FD != fd {
			continue
		}
		frame := bp.frames[fid]
		if err := bp.dm.WritePage(pid.FD, pid.PageNo, frame.data); err != nil {
			return fmt.Errorf("failed to flush page %v: %w", pid, err)
		}
		frame.dirty = false
	}
	return nil
}

// NewPage allocates a fresh page in fd, installs it in a reclaimed frame,
// zero-initialized and pinned with count 1.
func (bp *BufferPoolMgr) NewPage(fd int) (*Frame, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	fid, ok := bp.findVictimLocked()
	if !ok {
		return nil, ErrPoolExhausted
	}

	pageNo, err := bp.dm.AllocatePage(fd)
	if err != nil {
		// allocation failed before the victim was touched; restore it
		if bp.frames[fid].id.Valid() {
			bp.replacer.Unpin(fid)
		} else {
			bp.freeList = append(bp.freeList, fid)
		}
		return nil, fmt.Errorf("failed to allocate page in fd %d: %w", fd, err)
	}

	if err := bp.evictLocked(fid); err != nil {
		bp.replacer.Unpin(fid)
		return nil, err
	}

	frame := bp.frames[fid]
	frame.id = PageId{FD: fd, PageNo: pageNo}
	frame.pinCount = 1
	frame.dirty = false
	bp.pageTable[frame.id] = fid
	bp.replacer.Pin(fid)
	bp.log.Debugw("allocated new page", "fd", fd, "page", pageNo)
	return frame, nil
}

// DeletePage removes pid from the pool: a no-op if not resident, an error if
// still pinned, otherwise flushed, dropped from the page table and returned
// to the free list.
func (bp *BufferPoolMgr) DeletePage(pid PageId) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	fid, ok := bp.pageTable[pid]
	if !ok {
		return nil
	}
	frame := bp.frames[fid]
	if frame.pinCount != 0 {
		return ErrPagePinned
	}
	if err := bp.dm.WritePage(pid.FD, pid.PageNo, frame.data); err != nil {
		return fmt.Errorf("failed to flush deleted page %v: %w", pid, err)
	}
	delete(bp.pageTable, pid)
	bp.replacer.Pin(fid)
	frame.reset()
	bp.freeList = append(bp.freeList, fid)
	return nil
}

// Size returns the number of frames in the pool.
func (bp *BufferPoolMgr) Size() int {
	return len(bp.frames)
}

// Resident returns how many pages are currently cached.
func (bp *BufferPoolMgr) Resident() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return len(bp.pageTable)
}

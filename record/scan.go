package record

// Scan is a forward-only cursor over one FileHandle, visiting occupied slots
// in page-major, slot-minor order. Each advance pins the page it inspects
// and unpins it before returning; nothing is held between calls.
type Scan struct {
	fh  *FileHandle
	rid Rid
}

// NewScan positions a cursor on the first occupied slot of the file, or at
// the end if the file holds no records.
func NewScan(fh *FileHandle) (*Scan, error) {
	s := &Scan{
		fh:  fh,
		rid: Rid{PageNo: FirstDataPage, SlotNo: -1},
	}
	if err := s.Next(); err != nil {
		return nil, err
	}
	return s, nil
}

// Next advances to the next occupied slot, or past the last page when none
// remain.
func (s *Scan) Next() error {
	for s.rid.PageNo < s.fh.hdr.NumPages {
		ph, err := s.fh.fetchPageHandle(s.rid.PageNo)
		if err != nil {
			return err
		}
		for slot := s.rid.SlotNo + 1; slot < s.fh.hdr.NumRecordsPerPage; slot++ {
			if bitmapTest(ph.bitmap(), slot) {
				s.rid.SlotNo = slot
				return s.fh.unpin(ph, false)
			}
		}
		if err := s.fh.unpin(ph, false); err != nil {
			return err
		}
		s.rid.PageNo++
		s.rid.SlotNo = -1
	}
	return nil
}

// IsEnd reports whether the cursor has moved past the last page.
func (s *Scan) IsEnd() bool {
	return s.rid.PageNo >= s.fh.hdr.NumPages
}

// Rid returns the cursor's position. Meaningless once IsEnd is true.
func (s *Scan) Rid() Rid {
	return s.rid
}

package record

import "encoding/binary"

// On-disk layouts. The file header occupies the start of page 0; every data
// page starts with a page header followed by the slot bitmap and the record
// slots:
//
//	[NumRecords int32][NextFreePageNo int32][bitmap][slot 0]...[slot N-1]
const (
	pageNumRecordsOff   = 0
	pageNextFreeOff     = 4
	pageHdrSize         = 8
	fileRecordSizeOff   = 0
	fileRecordsPerPgOff = 4
	fileNumPagesOff     = 8
	fileFirstFreeOff    = 12
	fileHdrSize         = 16
)

// FileHeader mirrors the per-file metadata persisted in page 0. It is read
// once at open and mutated in memory as pages are allocated and freed;
// Close writes it back.
type FileHeader struct {
	RecordSize        int32
	NumRecordsPerPage int32
	NumPages          int32
	FirstFreePageNo   int32
}

func decodeFileHeader(buf []byte) FileHeader {
	return FileHeader{
		RecordSize:        int32(binary.BigEndian.Uint32(buf[fileRecordSizeOff:])),
		NumRecordsPerPage: int32(binary.BigEndian.Uint32(buf[fileRecordsPerPgOff:])),
		NumPages:          int32(binary.BigEndian.Uint32(buf[fileNumPagesOff:])),
		FirstFreePageNo:   int32(binary.BigEndian.Uint32(buf[fileFirstFreeOff:])),
	}
}

func encodeFileHeader(hdr FileHeader, buf []byte) {
	binary.BigEndian.PutUint32(buf[fileRecordSizeOff:], uint32(hdr.RecordSize))
	binary.BigEndian.PutUint32(buf[fileRecordsPerPgOff:], uint32(hdr.NumRecordsPerPage))
	binary.BigEndian.PutUint32(buf[fileNumPagesOff:], uint32(hdr.NumPages))
	binary.BigEndian.PutUint32(buf[fileFirstFreeOff:], uint32(hdr.FirstFreePageNo))
}

// recordsPerPage computes how many fixed-size records fit on a page after
// the page header and a bitmap bit per slot.
func recordsPerPage(pageSize int, recordSize int32) int32 {
	usable := int32(pageSize - pageHdrSize)
	n := usable * 8 / (recordSize*8 + 1)
	for n > 0 && bitmapLen(n)+n*recordSize > usable {
		n--
	}
	return n
}

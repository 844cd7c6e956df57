package record

import (
	"fmt"

	"ironDB/disk"
	"ironDB/heap"
)

// CreateFile initializes a heap file for fixed-size records: page 0 holds
// the file header, data pages start at FirstDataPage.
func CreateFile(dm *disk.Manager, name string, recordSize int32) error {
	if recordSize <= 0 {
		return fmt.Errorf("invalid record size %d", recordSize)
	}
	perPage := recordsPerPage(dm.PageSize(), recordSize)
	if perPage <= 0 {
		return fmt.Errorf("record size %d does not fit a %d-byte page", recordSize, dm.PageSize())
	}

	fd, err := dm.Open(name)
	if err != nil {
		return err
	}
	defer dm.Close(fd)

	if _, err := dm.AllocatePage(fd); err != nil {
		return fmt.Errorf("failed to allocate header page: %w", err)
	}
	hdr := FileHeader{
		RecordSize:        recordSize,
		NumRecordsPerPage: perPage,
		NumPages:          1,
		FirstFreePageNo:   NoPage,
	}
	buf := make([]byte, dm.PageSize())
	encodeFileHeader(hdr, buf)
	if err := dm.WritePage(fd, 0, buf); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	return nil
}

// OpenFile opens an existing heap file and reads its header from page 0.
func OpenFile(dm *disk.Manager, bp *heap.BufferPoolMgr, name string) (*FileHandle, error) {
	fd, err := dm.Open(name)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, dm.PageSize())
	if err := dm.ReadPage(fd, 0, buf); err != nil {
		dm.Close(fd)
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	return &FileHandle{
		bp:  bp,
		dm:  dm,
		fd:  fd,
		hdr: decodeFileHeader(buf),
	}, nil
}

// Close flushes every resident page of the file, persists the in-memory
// header back to page 0, and releases the descriptor.
func (fh *FileHandle) Close() error {
	if err := fh.bp.FlushAllPages(fh.fd); err != nil {
		return err
	}
	buf := make([]byte, fh.dm.PageSize())
	encodeFileHeader(fh.hdr, buf)
	if err := fh.dm.WritePage(fh.fd, 0, buf); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	return fh.dm.Close(fh.fd)
}

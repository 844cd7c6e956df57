// Package disk implements page-granular file I/O for the storage core.
package disk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// InvalidPageNo is returned by AllocatePage on failure.
const InvalidPageNo int32 = -1

var ErrUnknownFile = errors.New("unknown file descriptor")

// Manager hands out integer descriptors for heap files under a data
// directory and performs fixed-size page reads, writes and allocation.
type Manager struct {
	dataDir  string
	pageSize int
	mu       sync.Mutex
	files    map[int]*os.File
	nextFd   int
}

// NewManager creates a Manager rooted at dataDir. The directory is created
// if it does not exist.
func NewManager(dataDir string, pageSize int) (*Manager, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d", pageSize)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}
	return &Manager{
		dataDir:  dataDir,
		pageSize: pageSize,
		files:    make(map[int]*os.File),
	}, nil
}

// PageSize returns the fixed page size shared by all files.
func (m *Manager) PageSize() int {
	return m.pageSize
}

// Open opens (creating if needed) the named heap file and returns its
// descriptor for use with the page operations.
func (m *Manager) Open(name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := filepath.Join(m.dataDir, name)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return -1, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	fd := m.nextFd
	m.nextFd++
	m.files[fd] = f
	return fd, nil
}

// Close closes the file behind fd and invalidates the descriptor.
func (m *Manager) Close(fd int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[fd]
	if !ok {
		return ErrUnknownFile
	}
	delete(m.files, fd)
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close fd %d: %w", fd, err)
	}
	return nil
}

func (m *Manager) file(fd int) (*os.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[fd]
	if !ok {
		return nil, ErrUnknownFile
	}
	return f, nil
}

// ReadPage fills buf with the persisted bytes of the given page.
// len(buf) must equal the page size.
func (m *Manager) ReadPage(fd int, pageNo int32, buf []byte) error {
	f, err := m.file(fd)
	if err != nil {
		return err
	}
	if len(buf) != m.pageSize {
		return fmt.Errorf("buffer length %d does not match page size %d", len(buf), m.pageSize)
	}
	offset := int64(pageNo) * int64(m.pageSize)
	n, err := f.ReadAt(buf, offset)
	if err != nil {
		return fmt.Errorf("failed to read page %d of fd %d: %w", pageNo, fd, err)
	}
	if n != m.pageSize {
		return fmt.Errorf("incomplete read: expected %d bytes, got %d", m.pageSize, n)
	}
	return nil
}

// WritePage persists buf as the bytes of the given page and syncs the file.
func (m *Manager) WritePage(fd int, pageNo int32, buf []byte) error {
	f, err := m.file(fd)
	if err != nil {
		return err
	}
	if len(buf) != m.pageSize {
		return fmt.Errorf("buffer length %d does not match page size %d", len(buf), m.pageSize)
	}
	offset := int64(pageNo) * int64(m.pageSize)
	n, err := f.WriteAt(buf, offset)
	if err != nil {
		return fmt.Errorf("failed to write page %d of fd %d: %w", pageNo, fd, err)
	}
	if n != m.pageSize {
		return fmt.Errorf("incomplete write: expected %d bytes, wrote %d", m.pageSize, n)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync fd %d: %w", fd, err)
	}
	return nil
}

// AllocatePage appends a zero-filled page to the file and returns its page
// number, or InvalidPageNo with an error.
func (m *Manager) AllocatePage(fd int) (int32, error) {
	f, err := m.file(fd)
	if err != nil {
		return InvalidPageNo, err
	}
	stat, err := f.Stat()
	if err != nil {
		return InvalidPageNo, fmt.Errorf("failed to stat fd %d: %w", fd, err)
	}
	pageNo := int32(stat.Size() / int64(m.pageSize))
	zero := make([]byte, m.pageSize)
	if _, err := f.WriteAt(zero, int64(pageNo)*int64(m.pageSize)); err != nil {
		return InvalidPageNo, fmt.Errorf("failed to extend fd %d: %w", fd, err)
	}
	return pageNo, nil
}

// NumPages returns the number of pages currently in the file.
func (m *Manager) NumPages(fd int) (int32, error) {
	f, err := m.file(fd)
	if err != nil {
		return 0, err
	}
	stat, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat fd %d: %w", fd, err)
	}
	return int32(stat.Size() / int64(m.pageSize)), nil
}

package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	dm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)

	fd, err := dm.Open("data.db")
	require.NoError(t, err)
	defer dm.Close(fd)

	pageNo, err := dm.AllocatePage(fd)
	require.NoError(t, err)
	assert.Equal(t, int32(0), pageNo)

	out := make([]byte, 128)
	copy(out, []byte("hello pages"))
	require.NoError(t, dm.WritePage(fd, pageNo, out))

	in := make([]byte, 128)
	require.NoError(t, dm.ReadPage(fd, pageNo, in))
	assert.Equal(t, out, in)
}

func TestAllocatePageSequence(t *testing.T) {
	dm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)

	fd, err := dm.Open("data.db")
	require.NoError(t, err)
	defer dm.Close(fd)

	for want := int32(0); want < 5; want++ {
		got, err := dm.AllocatePage(fd)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	n, err := dm.NumPages(fd)
	require.NoError(t, err)
	assert.Equal(t, int32(5), n)

	// allocated pages arrive zero-filled
	buf := make([]byte, 128)
	require.NoError(t, dm.ReadPage(fd, 4, buf))
	for _, b := range buf {
		require.Zero(t, b)
	}
}

func TestReadUnallocatedPage(t *testing.T) {
	dm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)

	fd, err := dm.Open("data.db")
	require.NoError(t, err)
	defer dm.Close(fd)

	buf := make([]byte, 128)
	assert.Error(t, dm.ReadPage(fd, 7, buf))
}

func TestUnknownDescriptor(t *testing.T) {
	dm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)

	buf := make([]byte, 128)
	assert.ErrorIs(t, dm.ReadPage(42, 0, buf), ErrUnknownFile)
	assert.ErrorIs(t, dm.WritePage(42, 0, buf), ErrUnknownFile)
	_, err = dm.AllocatePage(42)
	assert.ErrorIs(t, err, ErrUnknownFile)
	assert.ErrorIs(t, dm.Close(42), ErrUnknownFile)
}

func TestBadBufferLength(t *testing.T) {
	dm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)

	fd, err := dm.Open("data.db")
	require.NoError(t, err)
	defer dm.Close(fd)

	_, err = dm.AllocatePage(fd)
	require.NoError(t, err)
	assert.Error(t, dm.ReadPage(fd, 0, make([]byte, 64)))
	assert.Error(t, dm.WritePage(fd, 0, make([]byte, 64)))
}

func TestDescriptorsAreIndependent(t *testing.T) {
	dm, err := NewManager(t.TempDir(), 128)
	require.NoError(t, err)

	fd1, err := dm.Open("a.db")
	require.NoError(t, err)
	fd2, err := dm.Open("b.db")
	require.NoError(t, err)
	defer dm.Close(fd1)
	defer dm.Close(fd2)

	require.NotEqual(t, fd1, fd2)
	_, err = dm.AllocatePage(fd1)
	require.NoError(t, err)

	n1, err := dm.NumPages(fd1)
	require.NoError(t, err)
	n2, err := dm.NumPages(fd2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), n1)
	assert.Equal(t, int32(0), n2)
}

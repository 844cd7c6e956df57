package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanEmptyFile(t *testing.T) {
	fh := newTestFile(t)

	scan, err := NewScan(fh)
	require.NoError(t, err)
	assert.True(t, scan.IsEnd())
}

// TestScanOrder builds two pages with holes and checks that the cursor
// yields exactly the occupied slots in page-major, slot-minor order.
func TestScanOrder(t *testing.T) {
	fh := newTestFile(t)

	var rids []Rid
	for i := 0; i < testPerPage+2; i++ {
		rid, err := fh.InsertRecord(payload(byte('a' + i)))
		require.NoError(t, err)
		rids = append(rids, rid)
	}
	// page 1 keeps slots {0,2}, page 2 keeps slot {1}
	require.NoError(t, fh.DeleteRecord(Rid{PageNo: FirstDataPage, SlotNo: 1}))
	require.NoError(t, fh.DeleteRecord(Rid{PageNo: FirstDataPage, SlotNo: 3}))
	require.NoError(t, fh.DeleteRecord(Rid{PageNo: FirstDataPage + 1, SlotNo: 0}))

	want := []Rid{
		{PageNo: FirstDataPage, SlotNo: 0},
		{PageNo: FirstDataPage, SlotNo: 2},
		{PageNo: FirstDataPage + 1, SlotNo: 1},
	}

	scan, err := NewScan(fh)
	require.NoError(t, err)
	var got []Rid
	for !scan.IsEnd() {
		got = append(got, scan.Rid())
		require.NoError(t, scan.Next())
	}
	assert.Equal(t, want, got)
}

func TestScanStartsOnFirstRecord(t *testing.T) {
	fh := newTestFile(t)

	// leave slot 0 empty so the constructor has to skip it
	rid, err := fh.InsertRecord(payload('a'))
	require.NoError(t, err)
	target := Rid{PageNo: FirstDataPage, SlotNo: 3}
	_, err = fh.InsertRecord(payload('b'))
	require.NoError(t, err)
	_, err = fh.InsertRecord(payload('c'))
	require.NoError(t, err)
	_, err = fh.InsertRecord(payload('d'))
	require.NoError(t, err)
	require.NoError(t, fh.DeleteRecord(rid))
	require.NoError(t, fh.DeleteRecord(Rid{PageNo: FirstDataPage, SlotNo: 1}))
	require.NoError(t, fh.DeleteRecord(Rid{PageNo: FirstDataPage, SlotNo: 2}))

	scan, err := NewScan(fh)
	require.NoError(t, err)
	require.False(t, scan.IsEnd())
	assert.Equal(t, target, scan.Rid())

	require.NoError(t, scan.Next())
	assert.True(t, scan.IsEnd())
}

package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUVictimOrder(t *testing.T) {
	lru := NewLRUReplacer(5)

	lru.Unpin(3)
	lru.Unpin(1)
	lru.Unpin(4)
	require.Equal(t, 3, lru.Size())

	// victims come back least-recently-unpinned first
	for _, want := range []FrameId{3, 1, 4} {
		got, ok := lru.Victim()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := lru.Victim()
	assert.False(t, ok, "empty replacer must not produce a victim")
	assert.Equal(t, 0, lru.Size())
}

func TestLRUPinRemovesEligibility(t *testing.T) {
	lru := NewLRUReplacer(5)

	lru.Unpin(0)
	lru.Unpin(1)
	lru.Unpin(2)
	lru.Pin(1)
	require.Equal(t, 2, lru.Size())

	got, ok := lru.Victim()
	require.True(t, ok)
	assert.Equal(t, FrameId(0), got)
	got, ok = lru.Victim()
	require.True(t, ok)
	assert.Equal(t, FrameId(2), got)
}

func TestLRUPinUntrackedIsNoop(t *testing.T) {
	lru := NewLRUReplacer(3)
	lru.Pin(7)
	assert.Equal(t, 0, lru.Size())
}

func TestLRUUnpinDuplicateKeepsPosition(t *testing.T) {
	lru := NewLRUReplacer(5)

	lru.Unpin(1)
	lru.Unpin(2)
	lru.Unpin(1) // already tracked, must not move to the back
	require.Equal(t, 2, lru.Size())

	got, ok := lru.Victim()
	require.True(t, ok)
	assert.Equal(t, FrameId(1), got)
}

func TestLRUCapacityBound(t *testing.T) {
	lru := NewLRUReplacer(2)

	lru.Unpin(0)
	lru.Unpin(1)
	lru.Unpin(2) // over capacity, dropped
	assert.Equal(t, 2, lru.Size())

	got, ok := lru.Victim()
	require.True(t, ok)
	assert.Equal(t, FrameId(0), got)
}

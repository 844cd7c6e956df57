package record

// Slot bitmaps: one bit per slot, bit set means the slot holds a record.
// Bit i lives in byte i/8 at position i%8, lowest bit first.

func bitmapLen(slots int32) int32 {
	return (slots + 7) / 8
}

func bitmapTest(bm []byte, i int32) bool {
	return bm[i/8]&(1<<(uint(i)%8)) != 0
}

func bitmapSet(bm []byte, i int32) {
	bm[i/8] |= 1 << (uint(i) % 8)
}

func bitmapClear(bm []byte, i int32) {
	bm[i/8] &^= 1 << (uint(i) % 8)
}

// bitmapFirstUnset returns the lowest unset bit below n, or -1 if all of the
// first n bits are set.
func bitmapFirstUnset(bm []byte, n int32) int32 {
	for i := int32(0); i < n; i++ {
		if !bitmapTest(bm, i) {
			return i
		}
	}
	return -1
}

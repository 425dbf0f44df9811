package bitmap

import (
	"math/bits"
	"strings"
)

const fullByte byte = 0xff

// Bitmap is an occupancy map: bit i of byte i/8 is 1 iff slot i is in use.
type Bitmap []byte

// SpanOf returns the number of bytes needed to track slotCount slots.
func SpanOf(slotCount uint32) uint32 {
	return (slotCount + 7) >> 3
}

// Reset marks the first slotCount slots free. Bit positions past slotCount
// in the last byte are marked used so FindFree never returns them.
func (b Bitmap) Reset(slotCount uint32) {
	for i := range b {
		b[i] = 0
	}
	rem := slotCount & 0x7
	if rem != 0 {
		b[len(b)-1] = ^byte(1<<rem - 1)
	}
}

// FindFree returns the lowest free slot and marks it used.
func (b Bitmap) FindFree() (uint32, bool) {
	for i, v := range b {
		if v == fullByte {
			continue
		}
		pos := uint32(bits.TrailingZeros8(^v))
		b[i] = v | 1<<pos
		return uint32(i)<<3 + pos, true
	}
	return 0, false
}

// Set ...
func (b Bitmap) Set(slot uint32) {
	b[slot>>3] |= 1 << (slot & 0x7)
}

// Clear ...
func (b Bitmap) Clear(slot uint32) {
	b[slot>>3] &^= 1 << (slot & 0x7)
}

// IsSet ...
func (b Bitmap) IsSet(slot uint32) bool {
	return b[slot>>3]&(1<<(slot&0x7)) != 0
}

// CountFree ...
func (b Bitmap) CountFree() uint32 {
	free := 0
	for _, v := range b {
		free += 8 - bits.OnesCount8(v)
	}
	return uint32(free)
}

// String renders every bit, lowest slot first.
func (b Bitmap) String() string {
	var sb strings.Builder
	sb.Grow(len(b) << 3)
	for _, v := range b {
		for k := 0; k < 8; k++ {
			if v&(1<<k) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanOf(t *testing.T) {
	table := []struct {
		name      string
		slotCount uint32
		expected  uint32
	}{
		{name: "zero", slotCount: 0, expected: 0},
		{name: "one", slotCount: 1, expected: 1},
		{name: "full-byte", slotCount: 8, expected: 1},
		{name: "next-byte", slotCount: 9, expected: 2},
		{name: "many", slotCount: 682, expected: 86},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			assert.Equal(t, e.expected, SpanOf(e.slotCount))
		})
	}
}

func TestBitmap_Reset(t *testing.T) {
	table := []struct {
		name      string
		slotCount uint32
		expected  Bitmap
	}{
		{name: "exact", slotCount: 16, expected: Bitmap{0, 0}},
		{name: "remainder-2", slotCount: 10, expected: Bitmap{0, 0xfc}},
		{name: "remainder-7", slotCount: 7, expected: Bitmap{0x80}},
		{name: "single", slotCount: 1, expected: Bitmap{0xfe}},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			b := make(Bitmap, SpanOf(e.slotCount))
			for i := range b {
				b[i] = 0x5a
			}
			b.Reset(e.slotCount)
			assert.Equal(t, e.expected, b)
			assert.Equal(t, e.slotCount, b.CountFree())
		})
	}
}

func TestBitmap_FindFree(t *testing.T) {
	b := make(Bitmap, SpanOf(10))
	b.Reset(10)

	for i := uint32(0); i < 10; i++ {
		slot, ok := b.FindFree()
		assert.True(t, ok)
		assert.Equal(t, i, slot)
		assert.True(t, b.IsSet(slot))
	}

	slot, ok := b.FindFree()
	assert.False(t, ok)
	assert.Equal(t, uint32(0), slot)
	assert.Equal(t, Bitmap{0xff, 0xff}, b)
}

func TestBitmap_FindFree_Lowest_After_Clear(t *testing.T) {
	b := Bitmap{0xff, 0xff, 0xff}

	b.Clear(19)
	b.Clear(9)
	assert.Equal(t, Bitmap{0xff, 0xfd, 0xf7}, b)

	slot, ok := b.FindFree()
	assert.True(t, ok)
	assert.Equal(t, uint32(9), slot)

	slot, ok = b.FindFree()
	assert.True(t, ok)
	assert.Equal(t, uint32(19), slot)

	_, ok = b.FindFree()
	assert.False(t, ok)
}

func TestBitmap_Set_Clear_IsSet(t *testing.T) {
	b := make(Bitmap, 2)

	b.Set(0)
	b.Set(11)
	assert.Equal(t, Bitmap{0x01, 0x08}, b)
	assert.True(t, b.IsSet(11))
	assert.False(t, b.IsSet(10))

	b.Clear(0)
	assert.False(t, b.IsSet(0))
	assert.Equal(t, uint32(15), b.CountFree())
}

func TestBitmap_Empty(t *testing.T) {
	var b Bitmap
	_, ok := b.FindFree()
	assert.False(t, ok)
	assert.Equal(t, uint32(0), b.CountFree())
	assert.Equal(t, "", b.String())
}

func TestBitmap_String(t *testing.T) {
	b := Bitmap{0x01, 0xfc}
	assert.Equal(t, "1000000000111111", b.String())
}

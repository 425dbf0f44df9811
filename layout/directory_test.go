package layout

import (
	"testing"

	"github.com/QuangTung97/blockpool/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_FirstFit(t *testing.T) {
	d, ok := Plan(arena.New(), []uint32{24, 12, 8, 16, 20})
	require.True(t, ok)

	table := []struct {
		name     string
		size     uint32
		expected int
	}{
		{name: "one", size: 1, expected: 0},
		{name: "exact-smallest", size: 8, expected: 0},
		{name: "between", size: 13, expected: 2},
		{name: "exact-middle", size: 16, expected: 2},
		{name: "largest", size: 24, expected: 4},
		{name: "too-large", size: 25, expected: 5},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			assert.Equal(t, e.expected, d.FirstFit(e.size))
		})
	}
}

func TestDirectory_Locate(t *testing.T) {
	d, ok := Plan(arena.New(), []uint32{32, 64})
	require.True(t, ok)

	table := []struct {
		name  string
		addr  uint32
		class int
		slot  uint32
		ok    bool
	}{
		{name: "first-slot", addr: 102, class: 0, slot: 0, ok: true},
		{name: "last-small-slot", addr: 102 + 32*681, class: 0, slot: 681, ok: true},
		{name: "first-large-slot", addr: 22011, class: 1, slot: 0, ok: true},
		{name: "second-large-slot", addr: 22011 + 64, class: 1, slot: 1, ok: true},
		{name: "last-large-slot", addr: 22011 + 64*679, class: 1, slot: 679, ok: true},
		{name: "misaligned", addr: 103, class: 0, ok: false},
		{name: "large-misaligned", addr: 22011 + 32, class: 1, ok: false},
		{name: "second-bitmap", addr: 21926, class: 0, ok: false},
		{name: "first-bitmap", addr: 16, class: -1, ok: false},
		{name: "directory", addr: 0, class: -1, ok: false},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			class, slot, ok := d.Locate(e.addr)
			assert.Equal(t, e.ok, ok)
			assert.Equal(t, e.class, class)
			assert.Equal(t, e.slot, slot)
		})
	}
}

func TestDirectory_Slots(t *testing.T) {
	d, ok := Plan(arena.New(), []uint32{32, 64})
	require.True(t, ok)

	assert.Equal(t, uint32(102), d.SlotAddr(0, 0))
	assert.Equal(t, uint32(102+32*5), d.SlotAddr(0, 5))
	assert.Equal(t, uint32(22011+64*2), d.SlotAddr(1, 2))
	assert.Equal(t, uint32(21926), d.RegionEnd(0))
	assert.Equal(t, uint32(64), d.MaxBlockSize())
}

func TestDirectory_Validate_Detects_Corruption(t *testing.T) {
	table := []struct {
		name    string
		corrupt func(d Directory)
		message string
	}{
		{
			name: "unsorted",
			corrupt: func(d Directory) {
				d.sizes().set(1, 16)
			},
			message: "smaller than class 0",
		},
		{
			name: "phantom-bit-free",
			corrupt: func(d Directory) {
				b := d.Bitmap(0)
				b.Clear(683)
			},
			message: "past the last slot",
		},
		{
			name: "wrong-span",
			corrupt: func(d Directory) {
				d.spans().set(1, 90)
			},
			message: "bitmap span",
		},
		{
			name: "moved-base",
			corrupt: func(d Directory) {
				d.bases().set(0, 20)
			},
			message: "class 0 starts at 20",
		},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			d, ok := Plan(arena.New(), []uint32{32, 64})
			require.True(t, ok)
			require.NoError(t, d.Validate())

			e.corrupt(d)
			err := d.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), e.message)
		})
	}
}

func TestDirectory_Validate_Empty(t *testing.T) {
	assert.Error(t, Directory{}.Validate())
}

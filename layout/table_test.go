package layout

import (
	"testing"

	"github.com/QuangTung97/blockpool/arena"
	"github.com/stretchr/testify/assert"
)

func newTestTable(values ...uint16) uint16Table {
	t := uint16Table{arena: arena.New(), offset: 6, n: uint32(len(values))}
	for i, v := range values {
		t.set(uint32(i), v)
	}
	return t
}

func contentOfTable(t uint16Table) []uint16 {
	var result []uint16
	for i := uint32(0); i < t.n; i++ {
		result = append(result, t.at(i))
	}
	return result
}

func TestInsertionSort(t *testing.T) {
	table := []struct {
		name     string
		input    []uint16
		expected []uint16
	}{
		{
			name:     "single",
			input:    []uint16{7},
			expected: []uint16{7},
		},
		{
			name:     "reversed",
			input:    []uint16{24, 12, 8, 16, 20},
			expected: []uint16{8, 12, 16, 20, 24},
		},
		{
			name:     "already-sorted",
			input:    []uint16{1, 2, 3},
			expected: []uint16{1, 2, 3},
		},
		{
			name:     "duplicates",
			input:    []uint16{64, 32, 64, 8, 32},
			expected: []uint16{8, 32, 32, 64, 64},
		},
		{
			name:     "max-value",
			input:    []uint16{65535, 0, 300},
			expected: []uint16{0, 300, 65535},
		},
	}

	for _, e := range table {
		t.Run(e.name, func(t *testing.T) {
			tbl := newTestTable(e.input...)
			insertionSort(tbl)
			assert.Equal(t, e.expected, contentOfTable(tbl))
		})
	}
}

func TestTable_Layout(t *testing.T) {
	a := arena.New()
	d := newDirectory(a, 3)

	assert.Equal(t, uint32(0), d.sizes().offset)
	assert.Equal(t, uint32(6), d.spans().offset)
	assert.Equal(t, uint32(12), d.bases().offset)
	assert.Equal(t, uint32(24), d.bases().end())

	d.bases().set(2, 0x10203)
	assert.Equal(t, uint32(0x10203), a.Uint32(20))
}

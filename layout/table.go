package layout

import "github.com/QuangTung97/blockpool/arena"

const (
	sizeEntryBytes  = 2
	spanEntryBytes  = 2
	baseEntryBytes  = 4
	classEntryBytes = sizeEntryBytes + spanEntryBytes + baseEntryBytes
)

// uint16Table is a view of n consecutive uint16 entries inside an arena.
type uint16Table struct {
	arena  *arena.Arena
	offset uint32
	n      uint32
}

func (t uint16Table) at(i uint32) uint16 {
	return t.arena.Uint16(t.offset + i*sizeEntryBytes)
}

func (t uint16Table) set(i uint32, v uint16) {
	t.arena.PutUint16(t.offset+i*sizeEntryBytes, v)
}

func (t uint16Table) end() uint32 {
	return t.offset + t.n*sizeEntryBytes
}

type uint32Table struct {
	arena  *arena.Arena
	offset uint32
	n      uint32
}

func (t uint32Table) at(i uint32) uint32 {
	return t.arena.Uint32(t.offset + i*baseEntryBytes)
}

func (t uint32Table) set(i uint32, v uint32) {
	t.arena.PutUint32(t.offset+i*baseEntryBytes, v)
}

func (t uint32Table) end() uint32 {
	return t.offset + t.n*baseEntryBytes
}

// insertionSort sorts the table ascending, keeping equal entries in order.
func insertionSort(t uint16Table) {
	for i := uint32(1); i < t.n; i++ {
		key := t.at(i)
		j := int(i) - 1
		for j >= 0 && t.at(uint32(j)) > key {
			t.set(uint32(j+1), t.at(uint32(j)))
			j--
		}
		t.set(uint32(j+1), key)
	}
}

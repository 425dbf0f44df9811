package arena

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Capacity is the size in bytes of every arena.
const Capacity = 1 << 16

// ErrReleased is returned when releasing an arena twice.
var ErrReleased = errors.New("arena: already released")

// Arena is a fixed block of Capacity bytes addressed by uint32 offsets.
// Multi-byte values are stored little endian.
type Arena struct {
	data    []byte
	release func([]byte) error
}

// New allocates an arena on the Go heap.
func New() *Arena {
	return &Arena{
		data: make([]byte, Capacity),
	}
}

// Len ...
func (a *Arena) Len() uint32 {
	return uint32(len(a.data))
}

// Bytes returns the region [offset, offset+length) of the arena.
// The capacity of the result is clipped so appends never spill into
// the neighbouring region.
func (a *Arena) Bytes(offset uint32, length uint32) []byte {
	end := offset + length
	return a.data[offset:end:end]
}

// Uint16 ...
func (a *Arena) Uint16(offset uint32) uint16 {
	return binary.LittleEndian.Uint16(a.data[offset:])
}

// PutUint16 ...
func (a *Arena) PutUint16(offset uint32, v uint16) {
	binary.LittleEndian.PutUint16(a.data[offset:], v)
}

// Uint32 ...
func (a *Arena) Uint32(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(a.data[offset:])
}

// PutUint32 ...
func (a *Arena) PutUint32(offset uint32, v uint32) {
	binary.LittleEndian.PutUint32(a.data[offset:], v)
}

// Zero clears the region [offset, offset+length).
func (a *Arena) Zero(offset uint32, length uint32) {
	region := a.Bytes(offset, length)
	for i := range region {
		region[i] = 0
	}
}

// Release gives the backing memory back. Heap arenas are simply dropped,
// mapped arenas are unmapped. The arena must not be used afterwards.
func (a *Arena) Release() error {
	if a.data == nil {
		return ErrReleased
	}
	data := a.data
	a.data = nil
	if a.release == nil {
		return nil
	}
	return errors.Wrap(a.release(data), "arena: release")
}

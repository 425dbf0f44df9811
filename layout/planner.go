package layout

import (
	"github.com/QuangTung97/blockpool/arena"
	"github.com/QuangTung97/blockpool/bitmap"
)

// MaxClasses is the largest number of size classes an arena can hold.
const MaxClasses = 256

func validateBlockSizes(blockSizes []uint32) bool {
	if len(blockSizes) == 0 || len(blockSizes) > MaxClasses {
		return false
	}
	for _, size := range blockSizes {
		if size == 0 || size >= arena.Capacity {
			return false
		}
	}
	return true
}

// Plan partitions the arena into one slot pool per block size and writes
// the directory describing it into the front of the arena. It returns
// false when the sizes are invalid or some class cannot get a single slot.
func Plan(a *arena.Arena, blockSizes []uint32) (Directory, bool) {
	if !validateBlockSizes(blockSizes) {
		return Directory{}, false
	}

	d := newDirectory(a, uint32(len(blockSizes)))

	sizes := d.sizes()
	for i, size := range blockSizes {
		sizes.set(uint32(i), uint16(size))
	}
	insertionSort(sizes)

	// The span table holds the tentative slot counts until the layout is written.
	counts := d.spans()
	a.Zero(counts.offset, counts.end()-counts.offset)

	if !distribute(sizes, counts) {
		return Directory{}, false
	}

	d.allocEnd = writeRegions(d)
	return d, true
}

func distribute(sizes uint16Table, counts uint16Table) bool {
	available := uint32(arena.Capacity) - sizes.n*classEntryBytes
	smallest := uint32(sizes.at(0))

	for {
		progress := false
		for i := uint32(0); i < sizes.n; i++ {
			size := uint32(sizes.at(i))
			slots := counts.at(i)

			if available < size {
				if slots == 0 {
					return false
				}
				continue
			}

			if slots%8 == 0 {
				// a new bitmap byte is only worth paying for if the slot still fits
				if available == size {
					continue
				}
				available--
			}
			counts.set(i, slots+1)
			available -= size
			progress = true
		}

		if !progress || available < smallest {
			break
		}
	}

	for i := uint32(0); i < counts.n; i++ {
		if counts.at(i) == 0 {
			return false
		}
	}
	return true
}

func writeRegions(d Directory) uint32 {
	sizes := d.sizes()
	spans := d.spans()
	bases := d.bases()

	addr := bases.end()
	for i := uint32(0); i < d.count; i++ {
		slots := uint32(spans.at(i))
		span := bitmap.SpanOf(slots)

		bases.set(i, addr)
		bitmap.Bitmap(d.arena.Bytes(addr, span)).Reset(slots)
		spans.set(i, uint16(span))

		addr += span + slots*uint32(sizes.at(i))
	}
	return addr
}

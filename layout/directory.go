package layout

import (
	"github.com/QuangTung97/blockpool/arena"
	"github.com/QuangTung97/blockpool/bitmap"
	"github.com/cockroachdb/errors"
)

// Directory describes the size classes laid out in an arena. The three
// tables it reads live at the front of the arena itself:
//
//	[sizes: n × uint16][bitmap spans: n × uint16][base addresses: n × uint32]
//
// followed by one [bitmap][slots] region per class in ascending size order.
type Directory struct {
	arena    *arena.Arena
	count    uint32
	allocEnd uint32
}

func newDirectory(a *arena.Arena, count uint32) Directory {
	return Directory{
		arena: a,
		count: count,
	}
}

func (d Directory) sizes() uint16Table {
	return uint16Table{arena: d.arena, offset: 0, n: d.count}
}

func (d Directory) spans() uint16Table {
	return uint16Table{arena: d.arena, offset: d.sizes().end(), n: d.count}
}

func (d Directory) bases() uint32Table {
	return uint32Table{arena: d.arena, offset: d.spans().end(), n: d.count}
}

// Count returns the number of size classes.
func (d Directory) Count() int {
	return int(d.count)
}

// BlockSize ...
func (d Directory) BlockSize(class int) uint32 {
	return uint32(d.sizes().at(uint32(class)))
}

// MaxBlockSize returns the block size of the largest class.
func (d Directory) MaxBlockSize() uint32 {
	return d.BlockSize(d.Count() - 1)
}

// BitmapSpan ...
func (d Directory) BitmapSpan(class int) uint32 {
	return uint32(d.spans().at(uint32(class)))
}

// Base returns the offset of the class bitmap.
func (d Directory) Base(class int) uint32 {
	return d.bases().at(uint32(class))
}

// SlotStart returns the offset of slot 0 of the class.
func (d Directory) SlotStart(class int) uint32 {
	return d.Base(class) + d.BitmapSpan(class)
}

// RegionEnd returns the first offset after the slots of the class.
func (d Directory) RegionEnd(class int) uint32 {
	if class+1 < d.Count() {
		return d.Base(class + 1)
	}
	return d.allocEnd
}

// FirstFit returns the smallest class whose block size is at least size,
// or Count() when there is none.
func (d Directory) FirstFit(size uint32) int {
	sizes := d.sizes()
	first := uint32(0)
	last := sizes.n
	for first != last {
		mid := (first + last) >> 1
		if uint32(sizes.at(mid)) < size {
			first = mid + 1
		} else {
			last = mid
		}
	}
	return int(first)
}

// SlotCount ...
func (d Directory) SlotCount(class int) uint32 {
	return (d.RegionEnd(class) - d.SlotStart(class)) / d.BlockSize(class)
}

// SlotAddr ...
func (d Directory) SlotAddr(class int, slot uint32) uint32 {
	return d.SlotStart(class) + slot*d.BlockSize(class)
}

// Bitmap returns the occupancy map of the class, backed by the arena.
func (d Directory) Bitmap(class int) bitmap.Bitmap {
	return d.arena.Bytes(d.Base(class), d.BitmapSpan(class))
}

// AllocEnd returns the first offset past the last class region.
func (d Directory) AllocEnd() uint32 {
	return d.allocEnd
}

// SizesOffset ...
func (d Directory) SizesOffset() uint32 {
	return d.sizes().offset
}

// SpansOffset ...
func (d Directory) SpansOffset() uint32 {
	return d.spans().offset
}

// BasesOffset ...
func (d Directory) BasesOffset() uint32 {
	return d.bases().offset
}

// Locate maps an offset to the class and slot whose first byte it is.
// Classes are scanned from the largest down; the first one whose slot
// storage starts at or before addr owns it. ok is false when addr is
// not the start of a slot.
func (d Directory) Locate(addr uint32) (class int, slot uint32, ok bool) {
	for class = d.Count() - 1; class >= 0; class-- {
		start := d.SlotStart(class)
		if start > addr {
			continue
		}
		offset := addr - start
		size := d.BlockSize(class)
		if offset%size != 0 {
			return class, 0, false
		}
		slot = offset / size
		if slot >= d.SlotCount(class) {
			return class, 0, false
		}
		return class, slot, true
	}
	return -1, 0, false
}

// Validate checks the layout invariants of the directory.
func (d Directory) Validate() error {
	if d.count == 0 {
		return errors.New("directory has no size classes")
	}
	prev := d.bases().end()
	for class := 0; class < d.Count(); class++ {
		if class > 0 && d.BlockSize(class) < d.BlockSize(class-1) {
			return errors.Newf("class %d block size %d is smaller than class %d block size %d",
				class, d.BlockSize(class), class-1, d.BlockSize(class-1))
		}
		if d.Base(class) != prev {
			return errors.Newf("class %d starts at %d, expected %d", class, d.Base(class), prev)
		}

		slotCount := d.SlotCount(class)
		if slotCount == 0 {
			return errors.Newf("class %d has no slots", class)
		}
		if d.BitmapSpan(class) != bitmap.SpanOf(slotCount) {
			return errors.Newf("class %d bitmap span is %d, expected %d for %d slots",
				class, d.BitmapSpan(class), bitmap.SpanOf(slotCount), slotCount)
		}
		end := d.SlotStart(class) + slotCount*d.BlockSize(class)
		if end != d.RegionEnd(class) {
			return errors.Newf("class %d slots end at %d, region ends at %d", class, end, d.RegionEnd(class))
		}

		b := d.Bitmap(class)
		for pos := slotCount; pos < uint32(len(b))<<3; pos++ {
			if !b.IsSet(pos) {
				return errors.Newf("class %d bit %d past the last slot is not marked used", class, pos)
			}
		}
		prev = end
	}
	if d.allocEnd > arena.Capacity {
		return errors.Newf("allocation end %d exceeds arena capacity %d", d.allocEnd, arena.Capacity)
	}
	return nil
}

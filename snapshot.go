package blockpool

// ClassStats describes one size class at the time of a snapshot.
type ClassStats struct {
	Index      int    `json:"index"`
	BlockSize  uint32 `json:"block_size"`
	SlotCount  uint32 `json:"slot_count"`
	BitmapSpan uint32 `json:"bitmap_span"`
	Base       Addr   `json:"base"`
	SlotStart  Addr   `json:"slot_start"`
	RegionEnd  Addr   `json:"region_end"`
	Free       uint32 `json:"free"`
	Occupancy  string `json:"occupancy"`
}

// Used ...
func (c ClassStats) Used() uint32 {
	return c.SlotCount - c.Free
}

// Snapshot is a read-only copy of the directory and bitmaps of a pool.
type Snapshot struct {
	Capacity    uint32       `json:"capacity"`
	SizesOffset Addr         `json:"sizes_offset"`
	SpansOffset Addr         `json:"spans_offset"`
	BasesOffset Addr         `json:"bases_offset"`
	AllocEnd    Addr         `json:"alloc_end"`
	Classes     []ClassStats `json:"classes"`
}

// FreeSlots returns the number of free slots over all classes.
func (s Snapshot) FreeSlots() uint32 {
	free := uint32(0)
	for _, c := range s.Classes {
		free += c.Free
	}
	return free
}

// Snapshot collects the current layout and occupancy of the pool.
func (p *Pool) Snapshot() Snapshot {
	if !p.checkInitialized("snapshot") {
		return Snapshot{}
	}

	classes := make([]ClassStats, 0, p.dir.Count())
	for class := 0; class < p.dir.Count(); class++ {
		b := p.dir.Bitmap(class)
		slotCount := p.dir.SlotCount(class)
		occupancy := b.String()

		classes = append(classes, ClassStats{
			Index:      class,
			BlockSize:  p.dir.BlockSize(class),
			SlotCount:  slotCount,
			BitmapSpan: p.dir.BitmapSpan(class),
			Base:       Addr(p.dir.Base(class)),
			SlotStart:  Addr(p.dir.SlotStart(class)),
			RegionEnd:  Addr(p.dir.RegionEnd(class)),
			Free:       b.CountFree(),
			Occupancy:  occupancy[:slotCount],
		})
	}

	return Snapshot{
		Capacity:    Capacity,
		SizesOffset: Addr(p.dir.SizesOffset()),
		SpansOffset: Addr(p.dir.SpansOffset()),
		BasesOffset: Addr(p.dir.BasesOffset()),
		AllocEnd:    Addr(p.dir.AllocEnd()),
		Classes:     classes,
	}
}

// Package blockpool serves fixed-size blocks out of a single 64 KiB arena.
//
// A Pool is configured once with a list of block sizes. Init splits the
// arena into one slot pool per size, each tracked by an occupancy bitmap,
// and stores the directory describing the split inside the arena itself.
// Allocate hands out the first free slot of the smallest class that fits,
// Deallocate maps an address back to its class and slot by address alone.
//
// A Pool is not safe for concurrent use.
package blockpool

import (
	"math"

	"github.com/QuangTung97/blockpool/arena"
	"github.com/QuangTung97/blockpool/layout"
)

// Capacity is the size in bytes of the arena of every pool.
const Capacity = arena.Capacity

// MaxClasses is the largest number of block sizes Init accepts.
const MaxClasses = layout.MaxClasses

// Addr is a byte offset from the start of the pool arena.
type Addr uint32

// NullAddr is never a valid slot address.
const NullAddr Addr = math.MaxUint32

// Pool ...
type Pool struct {
	conf poolConfig

	arena       *arena.Arena
	dir         layout.Directory
	initialized bool
}

// New creates an uninitialized pool. The arena is created by Init.
func New(opts ...Option) *Pool {
	conf := defaultPoolConfig()
	for _, opt := range opts {
		opt(&conf)
	}
	return &Pool{
		conf: conf,
	}
}

func (p *Pool) fault(err error) {
	if p.conf.mode == ModeStrict {
		panic(err)
	}
	p.conf.logger.Error("blockpool: fault", "mode", p.conf.mode.String(), "error", err)
	if p.conf.onFault != nil {
		p.conf.onFault(err)
	}
}

func (p *Pool) checkInitialized(op string) bool {
	if p.initialized {
		return true
	}
	p.fault(newFault(ErrNotInitialized, "%s", op))
	return false
}

func (p *Pool) newArena() (*arena.Arena, error) {
	if p.conf.mappedArena {
		return arena.NewMapped()
	}
	return arena.New(), nil
}

// Initialized ...
func (p *Pool) Initialized() bool {
	return p.initialized
}

// Init lays out one slot pool per block size. It returns false, leaving the
// pool uninitialized, when the list is empty, holds more than MaxClasses
// sizes, holds a size of 0 or at least Capacity, or when some size cannot
// get a single slot. Calling Init on an initialized pool is a fault.
func (p *Pool) Init(blockSizes []uint32) bool {
	if p.initialized {
		p.fault(newFault(ErrAlreadyInitialized, "init with %d block sizes", len(blockSizes)))
		return false
	}

	a, err := p.newArena()
	if err != nil {
		p.conf.logger.Warn("blockpool: cannot create arena", "error", err)
		return false
	}

	dir, ok := layout.Plan(a, blockSizes)
	if !ok {
		p.conf.logger.Warn("blockpool: rejected block sizes", "sizes", blockSizes)
		if err := a.Release(); err != nil {
			p.conf.logger.Warn("blockpool: cannot release arena", "error", err)
		}
		return false
	}

	p.arena = a
	p.dir = dir
	p.initialized = true

	p.conf.logger.Info("blockpool: initialized",
		"classes", dir.Count(),
		"alloc_end", dir.AllocEnd(),
		"mapped", p.conf.mappedArena,
	)
	for class := 0; class < dir.Count(); class++ {
		p.conf.logger.Debug("blockpool: size class",
			"class", class,
			"block_size", dir.BlockSize(class),
			"slots", dir.SlotCount(class),
			"base", dir.Base(class),
			"bitmap_span", dir.BitmapSpan(class),
		)
	}
	return true
}

// Allocate returns the address of a free slot of at least n bytes. It tries
// every class large enough for n from the smallest up. It returns NullAddr
// and false when n is 0, larger than every block size, or no class large
// enough has a free slot.
func (p *Pool) Allocate(n uint32) (Addr, bool) {
	if !p.checkInitialized("allocate") {
		return NullAddr, false
	}
	if n == 0 || n > p.dir.MaxBlockSize() {
		return NullAddr, false
	}

	for class := p.dir.FirstFit(n); class < p.dir.Count(); class++ {
		slot, ok := p.dir.Bitmap(class).FindFree()
		if ok {
			return Addr(p.dir.SlotAddr(class, slot)), true
		}
	}

	p.conf.logger.Debug("blockpool: no free slot", "size", n)
	return NullAddr, false
}

// Deallocate gives a slot back. NullAddr and addresses outside the slot
// area are ignored. Freeing an address that is not the start of a slot, or
// a slot that is not in use, is a fault. The slot contents are not touched.
func (p *Pool) Deallocate(addr Addr) {
	if !p.checkInitialized("deallocate") {
		return
	}
	if addr == NullAddr || uint32(addr) >= p.dir.AllocEnd() {
		return
	}

	class, slot, ok := p.dir.Locate(uint32(addr))
	if !ok {
		p.fault(newFault(ErrMisalignedAddr, "deallocate address %d", addr))
		return
	}

	b := p.dir.Bitmap(class)
	if !b.IsSet(slot) {
		p.fault(newFault(ErrDoubleFree, "deallocate address %d (class %d, slot %d)", addr, class, slot))
		return
	}
	b.Clear(slot)
}

// Bytes returns the memory of the slot at addr, sized to its block size.
// It returns nil when addr is not the start of a slot in use.
func (p *Pool) Bytes(addr Addr) []byte {
	if !p.checkInitialized("bytes") {
		return nil
	}
	class, slot, ok := p.locateInUse(addr)
	if !ok {
		return nil
	}
	return p.arena.Bytes(p.dir.SlotAddr(class, slot), p.dir.BlockSize(class))
}

// BlockSize returns the block size of the slot at addr.
func (p *Pool) BlockSize(addr Addr) (uint32, bool) {
	if !p.checkInitialized("block size") {
		return 0, false
	}
	class, _, ok := p.locateInUse(addr)
	if !ok {
		return 0, false
	}
	return p.dir.BlockSize(class), true
}

func (p *Pool) locateInUse(addr Addr) (int, uint32, bool) {
	if addr == NullAddr || uint32(addr) >= p.dir.AllocEnd() {
		return 0, 0, false
	}
	class, slot, ok := p.dir.Locate(uint32(addr))
	if !ok || !p.dir.Bitmap(class).IsSet(slot) {
		return 0, 0, false
	}
	return class, slot, true
}

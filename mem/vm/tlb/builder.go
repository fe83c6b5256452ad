package tlb

import (
	"log"
	"math/bits"

	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb/internal"
	"github.com/AltayOzkan/TLB-Project/sim"
)

// DefaultCycleLimit is the number of cycles after which a run is stopped if no
// other limit is given.
const DefaultCycleLimit = 1000

// A Builder can build TLBs
type Builder struct {
	numEntries    int
	log2BlockSize uint
	latency       uint64
	fillLatency   uint64
	addressOffset uint32
	cycleLimit    uint64
	hooks         []sim.Hook
}

// MakeBuilder returns a Builder
func MakeBuilder() Builder {
	return Builder{
		numEntries:    32,
		log2BlockSize: 12,
		latency:       4,
		fillLatency:   100,
		cycleLimit:    DefaultCycleLimit,
	}
}

// WithNumEntries sets the number of entries in the TLB.
func (b Builder) WithNumEntries(n int) Builder {
	b.numEntries = n
	return b
}

// WithLog2BlockSize sets the block size as a power of 2
func (b Builder) WithLog2BlockSize(n uint) Builder {
	b.log2BlockSize = n
	return b
}

// WithBlockSize sets the block size in bytes. The low log2(n) bits of an
// address are not used for selecting the TLB entry.
func (b Builder) WithBlockSize(n uint64) Builder {
	if !isPowerOfTwo(n) {
		log.Panicf("block size must be a power of 2, got %d", n)
	}

	b.log2BlockSize = uint(bits.TrailingZeros64(n))

	return b
}

// WithLatency sets the latency of the TLB lookup. The latency is counted in
// both hit and miss cases.
func (b Builder) WithLatency(cycles uint64) Builder {
	b.latency = cycles
	return b
}

// WithFillLatency sets the number of cycles it takes to fetch a missing
// translation.
func (b Builder) WithFillLatency(cycles uint64) Builder {
	b.fillLatency = cycles
	return b
}

// WithAddressOffset sets the number of blocks between a virtual address and
// its physical address.
func (b Builder) WithAddressOffset(offset uint32) Builder {
	b.addressOffset = offset
	return b
}

// WithCycleLimit sets the number of cycles after which a run is stopped. Use
// 0 for DefaultCycleLimit.
func (b Builder) WithCycleLimit(cycles uint64) Builder {
	b.cycleLimit = cycles
	return b
}

// WithHooks sets the hooks that observe the translations.
func (b Builder) WithHooks(hooks ...sim.Hook) Builder {
	b.hooks = hooks
	return b
}

// Build creates a new TLB
func (b Builder) Build(name string) *Comp {
	tlb := &Comp{}
	tlb.HookableBase = sim.NewHookableBase()
	tlb.name = name

	tlb.table = internal.NewDirectMappedTable(b.numEntries, b.log2BlockSize)
	tlb.log2BlockSize = b.log2BlockSize
	tlb.latency = b.latency
	tlb.fillLatency = b.fillLatency
	tlb.addressOffset = b.addressOffset

	tlb.cycleLimit = b.cycleLimit
	if tlb.cycleLimit == 0 {
		tlb.cycleLimit = DefaultCycleLimit
	}

	for _, h := range b.hooks {
		tlb.AcceptHook(h)
	}

	return tlb
}

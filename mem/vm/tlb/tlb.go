// Package tlb provides a direct-mapped TLB model that replays a trace of
// memory requests and counts the cycles, hits and misses.
package tlb

import (
	"math"
	"sync"

	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb/internal"
	"github.com/AltayOzkan/TLB-Project/sim"
)

// Result is what a TLB run reports.
type Result struct {
	Cycles    uint64
	Hits      uint64
	Misses    uint64
	GateCount uint64

	// Retired is the number of requests that were processed. It is less than
	// the number of requests if the run was aborted.
	Retired uint64
	Aborted bool
}

// Comp is a direct-mapped TLB that serves one request at a time.
type Comp struct {
	*sim.HookableBase

	name  string
	table internal.Table

	log2BlockSize uint
	latency       uint64
	fillLatency   uint64
	addressOffset uint32
	cycleLimit    uint64

	lock       sync.RWMutex
	numReqs    int
	currentReq int
	result     Result
}

// Name returns the name of the TLB.
func (c *Comp) Name() string {
	return c.name
}

// Run replays the requests in order and returns the accumulated result. The
// table starts with all entries invalid. The run stops early once the elapsed
// cycles exceed the cycle limit.
func (c *Comp) Run(reqs []vm.Request) Result {
	c.reset(len(reqs))

	for i, req := range reqs {
		c.process(i, req)

		if c.exceedsCycleLimit() {
			break
		}
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	c.result.GateCount = EstimateGateCount(
		uint64(c.table.Capacity()),
		c.blockSize(),
		uint64(c.addressOffset),
		c.fillLatency,
		c.latency,
	)

	return c.result
}

func (c *Comp) reset(numReqs int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.table.Reset()
	c.numReqs = numReqs
	c.currentReq = 0
	c.result = Result{}
}

func (c *Comp) exceedsCycleLimit() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.result.Cycles <= c.cycleLimit {
		return false
	}

	c.result.Aborted = true

	return true
}

// process moves one request through lookup, fill on miss, and retirement.
// Hooks are invoked without holding the lock.
func (c *Comp) process(index int, req vm.Request) {
	c.lock.Lock()
	c.advance(c.latency)

	var pos *sim.HookPos
	trans := vm.Translation{ReqIndex: index, VAddr: req.Addr}

	entry, hit := c.table.Lookup(req.Addr)
	if hit {
		pos = c.handleTranslationHit(&trans, entry)
	} else {
		pos = c.handleTranslationMiss(&trans)
	}
	c.lock.Unlock()

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: pos, Item: req, Detail: trans})

	c.lock.Lock()
	if !hit {
		c.table.Update(req.Addr, trans.PAddr)
	}

	c.advance(1)
	c.result.Retired++
	c.currentReq = index + 1
	trans.Cycle = c.result.Cycles
	c.lock.Unlock()

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    vm.HookPosReqRetired,
		Item:   req,
		Detail: trans,
	})
}

func (c *Comp) handleTranslationHit(
	trans *vm.Translation,
	entry internal.Entry,
) *sim.HookPos {
	c.result.Hits++

	trans.Hit = true
	trans.PAddr = entry.PAddr
	trans.Cycle = c.result.Cycles

	return vm.HookPosTLBHit
}

func (c *Comp) handleTranslationMiss(trans *vm.Translation) *sim.HookPos {
	c.result.Misses++
	c.advance(c.fillLatency)

	trans.PAddr = c.translate(trans.VAddr)
	trans.Cycle = c.result.Cycles

	return vm.HookPosTLBMiss
}

// translate returns the physical address of a virtual address, wrapping
// around at 32 bits.
func (c *Comp) translate(vAddr uint32) uint32 {
	return vAddr + c.addressOffset*uint32(c.blockSize())
}

func (c *Comp) blockSize() uint64 {
	return uint64(1) << c.log2BlockSize
}

// advance moves the cycle counter forward, saturating at the maximum value.
// The caller must hold the lock.
func (c *Comp) advance(cycles uint64) {
	if c.result.Cycles > math.MaxUint64-cycles {
		c.result.Cycles = math.MaxUint64
		return
	}

	c.result.Cycles += cycles
}

// Cycles returns the number of cycles elapsed in the current run.
func (c *Comp) Cycles() uint64 {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.result.Cycles
}

// Status is a snapshot of a TLB, safe to read while a run is in progress.
type Status struct {
	Name         string
	NumEntries   int
	NumReqs      int
	CurrentReq   int
	CycleLimit   uint64
	Result       Result
	ValidEntries int
}

// Status returns a snapshot of the TLB.
func (c *Comp) Status() Status {
	c.lock.RLock()
	defer c.lock.RUnlock()

	s := Status{
		Name:       c.name,
		NumEntries: c.table.Capacity(),
		NumReqs:    c.numReqs,
		CurrentReq: c.currentReq,
		CycleLimit: c.cycleLimit,
		Result:     c.result,
	}

	for _, e := range c.table.Entries() {
		if e.Valid {
			s.ValidEntries++
		}
	}

	return s
}

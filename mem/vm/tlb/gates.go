package tlb

const (
	// baseGates covers the control logic.
	baseGates = 1000

	// Each entry stores a virtual address, a physical address and a valid bit.
	bitsPerEntry = 32*2 + 1

	gatesPerBit = 4

	// Each entry needs one 32-bit addition.
	gatesPerArithmeticOp = 150
)

// EstimateGateCount returns a rough number of primitive gates needed to build
// a TLB with numEntries entries. The block size, address offset and latencies
// are accepted for future models and do not change the estimate.
func EstimateGateCount(
	numEntries uint64,
	blockSize uint64,
	addressOffset uint64,
	fillLatency uint64,
	lookupLatency uint64,
) uint64 {
	storageGates := numEntries * bitsPerEntry * gatesPerBit
	datapathGates := numEntries * gatesPerArithmeticOp

	return baseGates + storageGates + datapathGates
}

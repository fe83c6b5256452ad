package tlb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Builder", func() {
	It("should panic if the block size is not a power of 2", func() {
		Expect(func() { MakeBuilder().WithBlockSize(12) }).To(Panic())
		Expect(func() { MakeBuilder().WithBlockSize(0) }).To(Panic())
	})

	It("should convert the block size to offset bits", func() {
		Expect(MakeBuilder().WithBlockSize(1).log2BlockSize).To(Equal(uint(0)))
		Expect(MakeBuilder().WithBlockSize(4096).log2BlockSize).To(Equal(uint(12)))
	})

	It("should build a TLB with the given parameters", func() {
		tlb := MakeBuilder().
			WithNumEntries(64).
			WithLog2BlockSize(6).
			WithLatency(7).
			WithFillLatency(70).
			WithAddressOffset(9).
			WithCycleLimit(5000).
			Build("L1TLB")

		Expect(tlb.Name()).To(Equal("L1TLB"))
		Expect(tlb.table.Capacity()).To(Equal(64))
		Expect(tlb.blockSize()).To(Equal(uint64(64)))
		Expect(tlb.latency).To(Equal(uint64(7)))
		Expect(tlb.fillLatency).To(Equal(uint64(70)))
		Expect(tlb.addressOffset).To(Equal(uint32(9)))
		Expect(tlb.cycleLimit).To(Equal(uint64(5000)))
		Expect(tlb.NumHooks()).To(Equal(0))
	})

	It("should fall back to the default cycle limit", func() {
		tlb := MakeBuilder().WithCycleLimit(0).Build("TLB")

		Expect(tlb.cycleLimit).To(Equal(uint64(DefaultCycleLimit)))
	})
})

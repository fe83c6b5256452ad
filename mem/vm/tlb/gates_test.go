package tlb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Gate Count", func() {
	It("should estimate the base gates for an empty TLB", func() {
		Expect(EstimateGateCount(0, 4096, 1, 100, 1)).To(Equal(uint64(1000)))
	})

	It("should add storage and datapath gates per entry", func() {
		Expect(EstimateGateCount(1, 1, 0, 0, 0)).To(Equal(uint64(1000 + 260 + 150)))
		Expect(EstimateGateCount(16, 1, 0, 0, 0)).To(Equal(uint64(7560)))
	})

	It("should be deterministic", func() {
		Expect(EstimateGateCount(32, 64, 2, 10, 3)).
			To(Equal(EstimateGateCount(32, 64, 2, 10, 3)))
	})

	It("should only depend on the number of entries", func() {
		base := EstimateGateCount(32, 1, 0, 0, 0)

		Expect(EstimateGateCount(32, 4096, 0, 0, 0)).To(Equal(base))
		Expect(EstimateGateCount(32, 1, 77, 0, 0)).To(Equal(base))
		Expect(EstimateGateCount(32, 1, 0, 500, 9)).To(Equal(base))
	})
})

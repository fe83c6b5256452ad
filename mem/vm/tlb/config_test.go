package tlb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = Config{
			CycleLimit:  100,
			NumEntries:  16,
			BlockSize:   4096,
			Latency:     1,
			FillLatency: 10,
		}
	})

	It("should accept a valid configuration", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should accept zero latencies", func() {
		cfg.Latency = 0
		cfg.FillLatency = 0

		Expect(cfg.Validate()).To(Succeed())
	})

	DescribeTable("should reject",
		func(modify func(c *Config)) {
			modify(&cfg)

			Expect(cfg.Validate()).To(MatchError(ErrInvalidConfig))
		},
		Entry("zero entries", func(c *Config) { c.NumEntries = 0 }),
		Entry("too many entries", func(c *Config) { c.NumEntries = 1 << 30 }),
		Entry("zero block size", func(c *Config) { c.BlockSize = 0 }),
		Entry("block size not a power of two", func(c *Config) { c.BlockSize = 48 }),
		Entry("block size wider than an address", func(c *Config) { c.BlockSize = 1 << 32 }),
	)
})

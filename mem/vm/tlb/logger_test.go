package tlb

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/sim"
)

var _ = Describe("ProgressLogger", func() {
	var (
		buf    *bytes.Buffer
		logger *ProgressLogger
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		logger = NewProgressLogger(log.New(buf, "", 0))
	})

	It("should log retired requests", func() {
		logger.Func(sim.HookCtx{
			Pos: vm.HookPosReqRetired,
			Detail: vm.Translation{
				ReqIndex: 2, VAddr: 0x20, Hit: true, Cycle: 9,
			},
		})

		Expect(buf.String()).To(Equal(
			"Cycle: 9, Current Request: 3 (hit 0x20)\n"))
	})

	It("should ignore hit and miss positions", func() {
		logger.Func(sim.HookCtx{
			Pos:    vm.HookPosTLBMiss,
			Detail: vm.Translation{},
		})

		Expect(buf.Len()).To(Equal(0))
	})
})

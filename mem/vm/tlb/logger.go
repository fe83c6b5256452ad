package tlb

import (
	"log"

	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/sim"
)

// ProgressLogger is a hook that prints a line every time a TLB retires a
// request.
type ProgressLogger struct {
	sim.LogHookBase
}

// NewProgressLogger returns a new ProgressLogger which will write in to the
// logger.
func NewProgressLogger(logger *log.Logger) *ProgressLogger {
	h := new(ProgressLogger)
	h.Logger = logger

	return h
}

// Func writes the progress of the TLB into the logger.
func (h *ProgressLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != vm.HookPosReqRetired {
		return
	}

	trans, ok := ctx.Detail.(vm.Translation)
	if !ok {
		return
	}

	kind := "miss"
	if trans.Hit {
		kind = "hit"
	}

	h.Logger.Printf("Cycle: %d, Current Request: %d (%s 0x%x)",
		trans.Cycle, trans.ReqIndex+1, kind, trans.VAddr)
}

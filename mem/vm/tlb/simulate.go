package tlb

import (
	"fmt"
	"io"

	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/sim"
)

// Simulate builds a TLB from cfg and replays the requests through it.
//
// If sink is not nil, one hit or miss line is written into it per request,
// and it is closed before Simulate returns if it is an io.Closer. A failure
// to write or close the sink is returned as an error and the result is
// discarded. Hitting the cycle limit is not an error; the partial result is
// returned with Aborted set.
func Simulate(
	cfg Config,
	reqs []vm.Request,
	sink io.Writer,
	hooks ...sim.Hook,
) (Result, error) {
	var tracer *vm.TLBTracer
	if sink != nil {
		tracer = vm.NewTLBTracer(sink)
	}

	if err := cfg.Validate(); err != nil {
		closeTracer(tracer)
		return Result{}, err
	}

	allHooks := make([]sim.Hook, 0, len(hooks)+1)
	if tracer != nil {
		allHooks = append(allHooks, tracer)
	}
	allHooks = append(allHooks, hooks...)

	comp := MakeBuilder().
		WithNumEntries(int(cfg.NumEntries)).
		WithBlockSize(cfg.BlockSize).
		WithLatency(cfg.Latency).
		WithFillLatency(cfg.FillLatency).
		WithAddressOffset(cfg.AddressOffset).
		WithCycleLimit(cfg.CycleLimit).
		WithHooks(allHooks...).
		Build("TLB")

	result := comp.Run(reqs)

	if err := closeTracer(tracer); err != nil {
		return Result{}, fmt.Errorf("error writing trace: %w", err)
	}

	return result, nil
}

func closeTracer(t *vm.TLBTracer) error {
	if t == nil {
		return nil
	}

	return t.Close()
}

package vm

import (
	"fmt"
	"io"
	"log"

	"github.com/AltayOzkan/TLB-Project/sim"
)

type flusher interface {
	Flush() error
}

// A TLBTracer writes one line for each translation reported by a TLB.
type TLBTracer struct {
	writer io.Writer
	logger *log.Logger
	err    error
}

// NewTLBTracer produce a new TLBTracer, injecting the dependency of a writer.
func NewTLBTracer(w io.Writer) *TLBTracer {
	t := new(TLBTracer)
	t.writer = w
	t.logger = log.New(w, "", 0)

	return t
}

// Func writes the hit or miss record of a translation.
func (t *TLBTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosTLBHit && ctx.Pos != HookPosTLBMiss {
		return
	}

	trans, ok := ctx.Detail.(Translation)
	if !ok || t.err != nil {
		return
	}

	var err error
	if trans.Hit {
		err = t.logger.Output(2, fmt.Sprintf(
			"Hit: Virtual Address %x, Physical Address %x",
			trans.VAddr, trans.PAddr))
	} else {
		err = t.logger.Output(2, fmt.Sprintf(
			"Miss: Virtual Address %x, Translated Physical Address %x",
			trans.VAddr, trans.PAddr))
	}

	if err == nil {
		err = t.flush()
	}

	t.err = err
}

// flush pushes buffered writers. Files are written without buffering.
func (t *TLBTracer) flush() error {
	if f, ok := t.writer.(flusher); ok {
		return f.Flush()
	}

	return nil
}

// Err returns the first error met while writing the trace.
func (t *TLBTracer) Err() error {
	return t.err
}

// Close closes the underlying writer if it can be closed. It returns the
// first write error if there was one.
func (t *TLBTracer) Close() error {
	var closeErr error
	if c, ok := t.writer.(io.Closer); ok {
		closeErr = c.Close()
	}

	if t.err != nil {
		return t.err
	}

	return closeErr
}

// Package trace provides tracers that record the translations of a TLB.
package trace

import (
	"math"

	"github.com/AltayOzkan/TLB-Project/datarecording"
	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/sim"
)

const (
	translationTable = "tlb_translations"
	runTable         = "tlb_runs"
)

// translationEntry represents a translation in the database
type translationEntry struct {
	ID       string
	Location string
	Kind     string
	ReqIndex int64
	VAddr    uint32
	PAddr    uint32
	IsWrite  bool
	Data     uint32
	Cycle    int64
	Time     float64
}

type named interface {
	Name() string
}

// A DBTracer is a hook that records the translations reported by a TLB into
// a database using the data recorder. Translations are held back until Commit
// is called, so that the rows of a failed run can be dropped with Discard.
type DBTracer struct {
	dataRecorder datarecording.DataRecorder
	freq         sim.Freq
	pending      []translationEntry
}

// NewDBTracer creates a new database-based tracer. Cycles are converted to
// time with freq.
func NewDBTracer(
	dataRecorder datarecording.DataRecorder,
	freq sim.Freq,
) *DBTracer {
	t := &DBTracer{
		dataRecorder: dataRecorder,
		freq:         freq,
	}

	t.dataRecorder.CreateTable(translationTable, translationEntry{})

	return t
}

// Func records hits and misses.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	var kind string

	switch ctx.Pos {
	case vm.HookPosTLBHit:
		kind = "hit"
	case vm.HookPosTLBMiss:
		kind = "miss"
	default:
		return
	}

	trans, ok := ctx.Detail.(vm.Translation)
	if !ok {
		return
	}

	req, _ := ctx.Item.(vm.Request)

	location := ""
	if n, ok := ctx.Domain.(named); ok {
		location = n.Name()
	}

	entry := translationEntry{
		ID:       sim.GetIDGenerator().Generate(),
		Location: location,
		Kind:     kind,
		ReqIndex: int64(trans.ReqIndex),
		VAddr:    trans.VAddr,
		PAddr:    trans.PAddr,
		IsWrite:  req.IsWrite,
		Data:     req.Data,
		Cycle:    clampToInt64(trans.Cycle),
		Time:     float64(t.freq.CyclesToTime(trans.Cycle)),
	}

	t.pending = append(t.pending, entry)
}

// Commit hands the held translations to the data recorder.
func (t *DBTracer) Commit() {
	for _, entry := range t.pending {
		t.dataRecorder.InsertData(translationTable, entry)
	}

	t.pending = nil
}

// Discard drops the held translations.
func (t *DBTracer) Discard() {
	t.pending = nil
}

func clampToInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(v)
}

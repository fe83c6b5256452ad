package trace

import (
	"context"
	"fmt"

	"github.com/AltayOzkan/TLB-Project/datarecording"
	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb"
	"github.com/AltayOzkan/TLB-Project/sim"
)

// RunEntry is one TLB run as stored in the tlb_runs table.
type RunEntry struct {
	ID            string
	Trace         string
	NumEntries    int64
	BlockSize     int64
	Latency       int64
	FillLatency   int64
	AddressOffset uint32
	CycleLimit    int64
	NumReqs       int64
	Retired       int64
	Cycles        int64
	Hits          int64
	Misses        int64
	GateCount     int64
	Aborted       bool
}

// A RunRecorder stores the configuration and the result of TLB runs.
type RunRecorder struct {
	dataRecorder datarecording.DataRecorder
}

// NewRunRecorder creates a RunRecorder that writes into the tlb_runs table.
func NewRunRecorder(dataRecorder datarecording.DataRecorder) *RunRecorder {
	r := &RunRecorder{dataRecorder: dataRecorder}
	r.dataRecorder.CreateTable(runTable, RunEntry{})

	return r
}

// Record buffers one run. It returns the ID given to the run.
func (r *RunRecorder) Record(
	traceName string,
	numReqs int,
	cfg tlb.Config,
	result tlb.Result,
) string {
	entry := RunEntry{
		ID:            sim.GetIDGenerator().Generate(),
		Trace:         traceName,
		NumEntries:    clampToInt64(cfg.NumEntries),
		BlockSize:     clampToInt64(cfg.BlockSize),
		Latency:       clampToInt64(cfg.Latency),
		FillLatency:   clampToInt64(cfg.FillLatency),
		AddressOffset: cfg.AddressOffset,
		CycleLimit:    clampToInt64(cfg.CycleLimit),
		NumReqs:       int64(numReqs),
		Retired:       clampToInt64(result.Retired),
		Cycles:        clampToInt64(result.Cycles),
		Hits:          clampToInt64(result.Hits),
		Misses:        clampToInt64(result.Misses),
		GateCount:     clampToInt64(result.GateCount),
		Aborted:       result.Aborted,
	}

	r.dataRecorder.InsertData(runTable, entry)

	return entry.ID
}

// ListRuns reads the recorded runs, most recent first. If limit is positive,
// at most limit runs are returned.
func ListRuns(
	ctx context.Context,
	reader datarecording.DataReader,
	limit int,
) ([]RunEntry, error) {
	reader.MapTable(runTable, RunEntry{})

	results, _, err := reader.Query(ctx, runTable, datarecording.QueryParams{
		OrderBy: "rowid DESC",
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", runTable, err)
	}

	runs := make([]RunEntry, 0, len(results))
	for _, r := range results {
		runs = append(runs, *r.(*RunEntry))
	}

	return runs, nil
}

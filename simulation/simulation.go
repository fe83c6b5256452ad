// Package simulation bundles the services shared by the TLB runs of one
// program execution.
package simulation

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/AltayOzkan/TLB-Project/datarecording"
	"github.com/AltayOzkan/TLB-Project/mem/trace"
	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb"
	"github.com/AltayOzkan/TLB-Project/monitoring"
	"github.com/AltayOzkan/TLB-Project/sim"
)

// A Simulation provides the services that observe TLB runs: a data recorder
// and a monitor, both optional.
type Simulation struct {
	id string

	dataRecorder datarecording.DataRecorder
	execRecorder *datarecording.ExecRecorder
	runRecorder  *trace.RunRecorder
	dbTracer     *trace.DBTracer

	monitor    *monitoring.Monitor
	monitorURL string

	hooks      []sim.Hook
	terminated bool
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetDataRecorder returns the data recorder used in the simulation. It is nil
// if data recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil if
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorURL returns the address of the monitoring server.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// AddHook attaches a hook to the TLB runs started after this call.
func (s *Simulation) AddHook(h sim.Hook) {
	s.hooks = append(s.hooks, h)
}

// Run simulates a TLB configured by cfg on the requests. The trace name
// identifies the run in the recorded data and on the monitor. Text trace
// lines go to sink if it is not nil. Nothing is recorded for a run that
// fails.
func (s *Simulation) Run(
	traceName string,
	cfg tlb.Config,
	reqs []vm.Request,
	sink io.Writer,
) (tlb.Result, error) {
	hooks := s.hooks[:len(s.hooks):len(s.hooks)]

	if s.monitor != nil {
		bar := s.monitor.CreateProgressBar(
			filepath.Base(traceName), uint64(len(reqs)))
		defer s.monitor.CompleteProgressBar(bar)

		hooks = append(hooks, bar)
	}

	result, err := tlb.Simulate(cfg, reqs, sink, hooks...)
	if err != nil {
		if s.dbTracer != nil {
			s.dbTracer.Discard()
		}

		return result, err
	}

	if s.dataRecorder != nil {
		s.dbTracer.Commit()
		s.execRecorder.AddProperty("Trace", traceName)
		s.execRecorder.AddProperty("Retired",
			strconv.FormatUint(result.Retired, 10))
		s.runRecorder.Record(traceName, len(reqs), cfg, result)
		s.dataRecorder.Flush()
	}

	return result, nil
}

// Terminate writes the execution information and closes the data recorder.
// Calling it more than once has no effect.
func (s *Simulation) Terminate() error {
	if s.dataRecorder == nil || s.terminated {
		return nil
	}

	s.terminated = true
	s.execRecorder.End()

	return s.dataRecorder.Close()
}

package simulation

import (
	"fmt"

	"github.com/AltayOzkan/TLB-Project/datarecording"
	"github.com/AltayOzkan/TLB-Project/mem/trace"
	"github.com/AltayOzkan/TLB-Project/monitoring"
	"github.com/AltayOzkan/TLB-Project/sim"
	"github.com/rs/xid"
)

// Builder can be used to build a simulation.
type Builder struct {
	recordingOn    bool
	outputFileName string
	monitorOn      bool
	monitorPort    int
	freq           sim.Freq
}

// MakeBuilder creates a new builder. Recording and monitoring are off by
// default.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithDataRecording records the translations and the runs into a SQLite
// database.
func (b Builder) WithDataRecording() Builder {
	b.recordingOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
// The .sqlite3 suffix is appended.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitoring starts a monitoring server when the simulation is built.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithFreq sets the frequency used to convert recorded cycles into time.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when data recording is disabled")
	}
}

// Build builds the simulation. It fails if the database cannot be created or
// the monitoring server cannot be started.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	s := &Simulation{
		id: xid.New().String(),
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "tlbsim_" + s.id
		}

		dr, err := datarecording.NewDataRecorder(outputPath)
		if err != nil {
			return nil, err
		}

		s.dataRecorder = dr
		s.execRecorder = datarecording.NewExecRecorder(dr)
		s.execRecorder.Start()
		s.runRecorder = trace.NewRunRecorder(dr)
		s.dbTracer = trace.NewDBTracer(dr, b.freq)
		s.hooks = append(s.hooks, s.dbTracer)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor().WithPortNumber(b.monitorPort)

		url, err := s.monitor.StartServer()
		if err != nil {
			s.Terminate()
			return nil, fmt.Errorf("cannot build simulation: %w", err)
		}

		s.monitorURL = url
		s.hooks = append(s.hooks, s.monitor)
	}

	return s, nil
}

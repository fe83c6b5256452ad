package datarecording

import (
	"os"
	"strings"
	"time"
)

// execInfo is one property of a program execution.
type execInfo struct {
	Property string
	Value    string
}

const execInfoTable = "exec_info"

// An ExecRecorder records when and how the program was executed.
type ExecRecorder struct {
	recorder DataRecorder
	entries  []execInfo
}

// NewExecRecorder creates an ExecRecorder writing into the exec_info table of
// the recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		recorder: recorder,
	}

	e.recorder.CreateTable(execInfoTable, execInfo{})

	return e
}

// Start records the start time, the command and the working directory.
func (e *ExecRecorder) Start() {
	e.entries = append(e.entries,
		execInfo{"Start Time", timestamp()},
		execInfo{"Command", strings.Join(os.Args, " ")},
	)

	if cwd, err := os.Getwd(); err == nil {
		e.entries = append(e.entries, execInfo{"Working Directory", cwd})
	}
}

// AddProperty records an extra property of the execution.
func (e *ExecRecorder) AddProperty(property, value string) {
	e.entries = append(e.entries, execInfo{property, value})
}

// End writes all the properties along with the end time.
func (e *ExecRecorder) End() {
	e.entries = append(e.entries, execInfo{"End Time", timestamp()})

	for _, entry := range e.entries {
		e.recorder.InsertData(execInfoTable, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05.000000000")
}

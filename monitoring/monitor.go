// Package monitoring serves the state of a running simulation over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"reflect"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/monitoring/web"
	"github.com/AltayOzkan/TLB-Project/sim"
	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// A Component is something that can be monitored.
type Component interface {
	Name() string
	Cycles() uint64
}

// Monitor can turn a simulation into a server and allows external monitoring
// and controlling of the simulation.
//
// A Monitor is also a hook. Attached to a component, it registers the
// component on the first report and can hold the simulation between two
// requests while paused.
type Monitor struct {
	portNumber int

	componentsLock sync.Mutex
	components     []Component

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar

	pauseLock sync.Mutex
	pauseCond *sync.Cond
	paused    bool
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	m := &Monitor{}
	m.pauseCond = sync.NewCond(&m.pauseLock)

	return m
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterComponent register a component to be monitored. Registering the
// same component twice has no effect.
func (m *Monitor) RegisterComponent(c Component) {
	m.componentsLock.Lock()
	defer m.componentsLock.Unlock()

	for _, registered := range m.components {
		if registered == c {
			return
		}
	}

	m.components = append(m.components, c)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Func registers the reporting component and blocks at request retirement
// while the monitor is paused.
func (m *Monitor) Func(ctx sim.HookCtx) {
	if c, ok := ctx.Domain.(Component); ok {
		m.RegisterComponent(c)
	}

	if ctx.Pos != vm.HookPosReqRetired {
		return
	}

	m.pauseLock.Lock()
	for m.paused {
		m.pauseCond.Wait()
	}
	m.pauseLock.Unlock()
}

// Pause holds the simulation at the next request retirement.
func (m *Monitor) Pause() {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	m.paused = true
}

// Continue releases a paused simulation.
func (m *Monitor) Continue() {
	m.pauseLock.Lock()
	defer m.pauseLock.Unlock()

	m.paused = false
	m.pauseCond.Broadcast()
}

// Handler returns the HTTP handler that serves the monitoring API and the
// web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseSimulation)
	r.HandleFunc("/api/continue", m.continueSimulation)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/list_components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/status/{name}", m.componentStatus)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns the URL it
// listens on. A random port is used if no port number is set.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", fmt.Errorf("cannot start monitoring server: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	handler := m.Handler()

	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	return url, nil
}

func (m *Monitor) pauseSimulation(w http.ResponseWriter, _ *http.Request) {
	m.Pause()

	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueSimulation(w http.ResponseWriter, _ *http.Request) {
	m.Continue()

	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	m.componentsLock.Lock()
	var now uint64
	for _, c := range m.components {
		now = max(now, c.Cycles())
	}
	m.componentsLock.Unlock()

	fmt.Fprintf(w, "{\"now\":%d}", now)
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	m.componentsLock.Lock()
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}
	m.componentsLock.Unlock()

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	status, ok := m.findStatusOr404(w, name)
	if !ok {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(status)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) componentStatus(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	status, ok := m.findStatusOr404(w, name)
	if !ok {
		return
	}

	bytes, err := json.Marshal(status)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, ok := m.findStatusOr404(w, req.CompName)
	if !ok {
		return
	}

	elem, err := m.walkFields(status, req.FieldName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bytes, err := json.Marshal(elem.Interface())
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type fieldFormatError struct {
	field string
}

func (e fieldFormatError) Error() string {
	return fmt.Sprintf("cannot walk into field %q", e.field)
}

func (m *Monitor) walkFields(
	comp any,
	fields string,
) (reflect.Value, error) {
	elem := reflect.ValueOf(comp)

	fieldNames := strings.Split(fields, ".")

	for len(fieldNames) > 0 {
		switch elem.Kind() {
		case reflect.Ptr, reflect.Interface:
			elem = elem.Elem()
		case reflect.Struct:
			elem = elem.FieldByName(fieldNames[0])
			if !elem.IsValid() {
				return elem, fieldFormatError{field: fieldNames[0]}
			}

			fieldNames = fieldNames[1:]
		case reflect.Slice:
			index, err := strconv.Atoi(fieldNames[0])
			if err != nil || index < 0 || index >= elem.Len() {
				return elem, fieldFormatError{field: fieldNames[0]}
			}

			elem = elem.Index(index)
			fieldNames = fieldNames[1:]
		default:
			return elem, fieldFormatError{field: fieldNames[0]}
		}
	}

	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}

	if !elem.CanInterface() {
		return elem, fieldFormatError{field: fields}
	}

	return elem, nil
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) Component {
	m.componentsLock.Lock()
	defer m.componentsLock.Unlock()

	for _, c := range m.components {
		if c.Name() == name {
			return c
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Component not found"))
	dieOnErr(err)

	return nil
}

// findStatusOr404 returns what the component's Status method reports, or the
// component itself if it has no such method.
func (m *Monitor) findStatusOr404(
	w http.ResponseWriter,
	name string,
) (any, bool) {
	component := m.findComponentOr404(w, name)
	if component == nil {
		return nil, false
	}

	method := reflect.ValueOf(component).MethodByName("Status")
	if !method.IsValid() ||
		method.Type().NumIn() != 0 ||
		method.Type().NumOut() != 1 {
		return component, true
	}

	return method.Call(nil)[0].Interface(), true
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	snapshots := make([]progressBarRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		snapshots = append(snapshots, b.snapshot())
	}
	m.progressBarsLock.Unlock()

	bytes, err := json.Marshal(snapshots)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, r *http.Request) {
	duration := time.Second
	if s := r.URL.Query().Get("duration"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			http.Error(w, "invalid duration "+s, http.StatusBadRequest)
			return
		}

		duration = d
	}

	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(duration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}

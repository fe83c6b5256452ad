package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"

	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb"
	"github.com/AltayOzkan/TLB-Project/sim"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleStruct struct {
	Field1 int
	Field2 string
	Field3 *sampleStruct
	Field4 []sampleStruct
	field5 int
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		m    *Monitor
		comp *tlb.Comp
		reqs []vm.Request
	)

	BeforeEach(func() {
		m = NewMonitor()
		comp = tlb.MakeBuilder().
			WithNumEntries(4).
			WithBlockSize(1).
			WithLatency(2).
			WithFillLatency(3).
			WithHooks(m).
			Build("TLB")
		reqs = []vm.Request{{Addr: 0x10}, {Addr: 0x10}, {Addr: 0x21}}
	})

	It("should register a component once when it reports", func() {
		comp.Run(reqs)

		Expect(m.components).To(HaveLen(1))
		Expect(m.components[0]).To(BeIdenticalTo(comp))
	})

	It("should replace ports below 1000 with a random port", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should list components", func() {
		comp.Run(reqs)

		rec := get(m.Handler(), "/api/list_components")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal(`["TLB"]`))
	})

	It("should report the current cycle", func() {
		comp.Run(reqs)

		rec := get(m.Handler(), "/api/now")

		Expect(rec.Body.String()).To(Equal(`{"now":15}`))
	})

	It("should report the status of a component", func() {
		comp.Run(reqs)

		rec := get(m.Handler(), "/api/status/TLB")
		Expect(rec.Code).To(Equal(http.StatusOK))

		status := tlb.Status{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &status)).To(Succeed())
		Expect(status.Name).To(Equal("TLB"))
		Expect(status.NumReqs).To(Equal(3))
		Expect(status.CurrentReq).To(Equal(3))
		Expect(status.Result.Hits).To(Equal(uint64(1)))
		Expect(status.Result.Misses).To(Equal(uint64(2)))
		Expect(status.ValidEntries).To(Equal(2))
	})

	It("should serialize the details of a component", func() {
		comp.Run(reqs)

		rec := get(m.Handler(), "/api/component/TLB")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should return 404 for unknown components", func() {
		rec := get(m.Handler(), "/api/status/L2TLB")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should report a single field", func() {
		comp.Run(reqs)

		req := `{"comp_name":"TLB","field_name":"Result.Misses"}`
		rec := get(m.Handler(), "/api/field/"+url.PathEscape(req))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("2"))
	})

	It("should reject unknown fields", func() {
		comp.Run(reqs)

		req := `{"comp_name":"TLB","field_name":"Result.Evictions"}`
		rec := get(m.Handler(), "/api/field/"+url.PathEscape(req))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should track progress", func() {
		bar := m.CreateProgressBar("trace.txt", uint64(len(reqs)))
		comp.AcceptHook(bar)

		comp.Run(reqs)

		rec := get(m.Handler(), "/api/progress")
		bars := []progressBarRsp{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("trace.txt"))
		Expect(bars[0].Total).To(Equal(uint64(3)))
		Expect(bars[0].Finished).To(Equal(uint64(3)))
		Expect(bars[0].InProgress).To(Equal(uint64(0)))

		m.CompleteProgressBar(bar)
		Expect(m.progressBars).To(BeEmpty())
	})

	It("should hold the simulation while paused", func() {
		done := make(chan tlb.Result)

		rec := get(m.Handler(), "/api/pause")
		Expect(rec.Code).To(Equal(http.StatusOK))

		go func() {
			done <- comp.Run(reqs)
		}()

		Consistently(done, "50ms").ShouldNot(Receive())
		Expect(comp.Status().CurrentReq).To(Equal(1))

		get(m.Handler(), "/api/continue")

		var result tlb.Result
		Eventually(done).Should(Receive(&result))
		Expect(result.Cycles).To(Equal(uint64(15)))
	})

	It("should report resources", func() {
		rec := get(m.Handler(), "/api/resource")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("cpu_percent"))
	})

	It("should serve the web page", func() {
		rec := get(m.Handler(), "/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("TLB Monitor"))
	})

	It("should start a server", func() {
		comp.Run(reqs)

		addr, err := m.StartServer()
		Expect(err).ToNot(HaveOccurred())

		rsp, err := http.Get(addr + "/api/list_components")
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(Equal(`["TLB"]`))
	})

	It("should ignore domains that cannot be monitored", func() {
		m.Func(sim.HookCtx{Pos: vm.HookPosReqRetired})

		Expect(m.components).To(BeEmpty())
	})

	It("should walk int fields", func() {
		s := &sampleStruct{Field1: 1}

		elem, err := m.walkFields(s, "Field1")

		Expect(err).To(BeNil())
		Expect(elem.Kind()).To(Equal(reflect.Int))
		Expect(elem.Int()).To(Equal(int64(1)))
	})

	It("should walk string fields", func() {
		s := &sampleStruct{Field2: "abc"}

		elem, err := m.walkFields(s, "Field2")

		Expect(err).To(BeNil())
		Expect(elem.String()).To(Equal("abc"))
	})

	It("should walk pointer fields", func() {
		s := &sampleStruct{Field3: &sampleStruct{Field1: 2}}

		elem, err := m.walkFields(s, "Field3.Field1")

		Expect(err).To(BeNil())
		Expect(elem.Int()).To(Equal(int64(2)))
	})

	It("should walk slice fields", func() {
		s := &sampleStruct{
			Field4: []sampleStruct{{Field2: "a"}, {Field2: "b"}},
		}

		elem, err := m.walkFields(s, "Field4.1.Field2")

		Expect(err).To(BeNil())
		Expect(elem.String()).To(Equal("b"))
	})

	It("should reject out-of-range slice indices", func() {
		s := &sampleStruct{Field4: []sampleStruct{{}}}

		_, err := m.walkFields(s, "Field4.3")

		Expect(err).To(BeAssignableToTypeOf(fieldFormatError{}))
	})

	It("should reject unexported fields", func() {
		s := &sampleStruct{field5: 5}

		_, err := m.walkFields(s, "field5")

		Expect(err).To(HaveOccurred())
	})
})

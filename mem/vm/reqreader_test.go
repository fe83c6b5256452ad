package vm

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Request Reader", func() {
	It("should read reads and writes", func() {
		input := "R 10\nW 1f ab\nX ffffffff 1\n"

		reqs, err := ReadRequests(strings.NewReader(input))

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(Equal([]Request{
			{Addr: 0x10},
			{Addr: 0x1f, Data: 0xab, IsWrite: true},
			{Addr: 0xffffffff, Data: 1},
		}))
	})

	It("should accept a 0x prefix", func() {
		reqs, err := ReadRequests(strings.NewReader("R 0x20 0X3\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(Equal([]Request{{Addr: 0x20, Data: 3}}))
	})

	It("should ignore a malformed data field", func() {
		reqs, err := ReadRequests(strings.NewReader("W 20 zz"))

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(Equal([]Request{{Addr: 0x20, IsWrite: true}}))
	})

	It("should return no requests for an empty input", func() {
		reqs, err := ReadRequests(strings.NewReader(""))

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(BeEmpty())
	})

	DescribeTable("should reject lines without an op and an address",
		func(input string) {
			_, err := ReadRequests(strings.NewReader(input))

			Expect(err).To(MatchError(ErrInvalidRequestFormat))
		},
		Entry("missing address", "R\n"),
		Entry("blank line", "R 10\n\nR 20\n"),
		Entry("non-hex address", "R xyz\n"),
		Entry("address wider than 32 bits", "R 100000000\n"),
		Entry("multi-character op", "RW 10\n"),
	)

	It("should report the line number of a bad line", func() {
		_, err := ReadRequests(strings.NewReader("R 10\nR\n"))

		Expect(err).To(MatchError(ContainSubstring("line 2")))
	})

	It("should report the line number of an over-long line", func() {
		input := "R 10\nR " + strings.Repeat("0", bufio.MaxScanTokenSize) + "\n"

		_, err := ReadRequests(strings.NewReader(input))

		Expect(err).To(MatchError(bufio.ErrTooLong))
		Expect(err).To(MatchError(ContainSubstring("line 2")))
	})

	It("should read from a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace.txt")
		Expect(os.WriteFile(path, []byte("R 10\nR 10\n"), 0o644)).To(Succeed())

		reqs, err := ReadRequestFile(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(reqs).To(HaveLen(2))
	})

	It("should fail on a missing file", func() {
		_, err := ReadRequestFile(filepath.Join(GinkgoT().TempDir(), "none"))

		Expect(err).To(HaveOccurred())
	})
})

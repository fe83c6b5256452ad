package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidRequestFormat is returned when a trace line does not carry at
// least an operation and an address.
var ErrInvalidRequestFormat = errors.New("invalid format in input file")

// ReadRequestFile reads all the requests from the trace file at path.
func ReadRequestFile(path string) ([]Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file %s: %w", path, err)
	}
	defer f.Close()

	return ReadRequests(f)
}

// ReadRequests parses a request trace. Each line has the form
// `<op> <addr-hex> [<data-hex>]`. The op W marks a write, any other op a
// read.
func ReadRequests(r io.Reader) ([]Request, error) {
	var reqs []Request

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		req, err := parseRequestLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		reqs = append(reqs, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
	}

	return reqs, nil
}

func parseRequestLine(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields[0]) != 1 {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidRequestFormat, line)
	}

	addr, err := parseHex32(fields[1])
	if err != nil {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidRequestFormat, line)
	}

	req := Request{
		Addr:    addr,
		IsWrite: fields[0] == "W",
	}

	// A malformed data field leaves the payload at 0.
	if len(fields) > 2 {
		if data, err := parseHex32(fields[2]); err == nil {
			req.Data = data
		}
	}

	return req, nil
}

func parseHex32(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}

	return uint32(v), nil
}

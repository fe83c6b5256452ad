package tlb

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a TLB configuration cannot be simulated.
var ErrInvalidConfig = errors.New("invalid TLB configuration")

// Config holds the numeric configuration of a TLB simulation.
type Config struct {
	// CycleLimit stops a run once the elapsed cycles exceed it. 0 means
	// DefaultCycleLimit.
	CycleLimit    uint64
	NumEntries    uint64
	Latency       uint64
	FillLatency   uint64
	BlockSize     uint64
	AddressOffset uint32
}

// Validate checks that the configuration describes a TLB that can be built.
func (c Config) Validate() error {
	if c.NumEntries == 0 {
		return fmt.Errorf("%w: TLB size must be greater than zero", ErrInvalidConfig)
	}

	if c.NumEntries > maxNumEntries {
		return fmt.Errorf("%w: TLB size %d exceeds %d",
			ErrInvalidConfig, c.NumEntries, maxNumEntries)
	}

	if !isPowerOfTwo(c.BlockSize) {
		return fmt.Errorf("%w: block size %d is not a power of two",
			ErrInvalidConfig, c.BlockSize)
	}

	if c.BlockSize > maxBlockSize {
		return fmt.Errorf("%w: block size %d exceeds %d",
			ErrInvalidConfig, c.BlockSize, uint64(maxBlockSize))
	}

	return nil
}

const (
	// maxNumEntries bounds the table allocation.
	maxNumEntries = 1 << 24

	// Addresses are 32 bits wide.
	maxBlockSize = 1 << 31
)

func isPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

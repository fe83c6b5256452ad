package cmd

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// ErrInvalidArgument is returned when a simulation parameter is missing or
// out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// Config holds the parameters of one simulation run as given on the command
// line.
type Config struct {
	Cycles         int64
	BlockSize      uint64
	V2BBlockOffset uint64
	TLBSize        uint64
	TLBLatency     uint64
	MemoryLatency  uint64
	TraceFile      string
}

// Names of the flags shared between the command line and the environment.
const (
	flagCycles         = "cycles"
	flagBlockSize      = "blocksize"
	flagV2BBlockOffset = "v2b-block-offset"
	flagTLBSize        = "tlb-size"
	flagTLBLatency     = "tlb-latency"
	flagMemoryLatency  = "memory-latency"
	flagTraceFile      = "tf"
)

var envNames = map[string]string{
	flagCycles:         "TLBSIM_CYCLES",
	flagBlockSize:      "TLBSIM_BLOCKSIZE",
	flagV2BBlockOffset: "TLBSIM_V2B_BLOCK_OFFSET",
	flagTLBSize:        "TLBSIM_TLB_SIZE",
	flagTLBLatency:     "TLBSIM_TLB_LATENCY",
	flagMemoryLatency:  "TLBSIM_MEMORY_LATENCY",
	flagTraceFile:      "TLBSIM_TF",
}

// loadEnvFile adds the variables of a dotenv file to the environment.
// Variables that are already set are not overwritten. A missing file is only
// an error if the user asked for it explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil && !explicit {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("cannot load env file %s: %w", path, err)
	}

	return nil
}

// resolveConfig reads the simulation parameters from the flags of cmd. A flag
// that is not set falls back to its environment variable.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	var (
		c   Config
		err error
	)

	c.Cycles, err = resolveInt(cmd, flagCycles)
	if err != nil {
		return c, err
	}

	uintFields := []struct {
		name  string
		value *uint64
	}{
		{flagBlockSize, &c.BlockSize},
		{flagV2BBlockOffset, &c.V2BBlockOffset},
		{flagTLBSize, &c.TLBSize},
		{flagTLBLatency, &c.TLBLatency},
		{flagMemoryLatency, &c.MemoryLatency},
	}

	for _, f := range uintFields {
		*f.value, err = resolveUint(cmd, f.name)
		if err != nil {
			return c, err
		}
	}

	c.TraceFile, _ = cmd.Flags().GetString(flagTraceFile)
	if !cmd.Flags().Changed(flagTraceFile) {
		if v, ok := os.LookupEnv(envNames[flagTraceFile]); ok {
			c.TraceFile = v
		}
	}

	return c, nil
}

func resolveInt(cmd *cobra.Command, name string) (int64, error) {
	if cmd.Flags().Changed(name) {
		return cmd.Flags().GetInt64(name)
	}

	v, ok := os.LookupEnv(envNames[name])
	if !ok || v == "" {
		return cmd.Flags().GetInt64(name)
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidArgument, envNames[name], v)
	}

	return n, nil
}

func resolveUint(cmd *cobra.Command, name string) (uint64, error) {
	if cmd.Flags().Changed(name) {
		return cmd.Flags().GetUint64(name)
	}

	v, ok := os.LookupEnv(envNames[name])
	if !ok || v == "" {
		return cmd.Flags().GetUint64(name)
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidArgument, envNames[name], v)
	}

	return n, nil
}

// Validate checks that all the parameters are set and greater than zero and
// that they form a valid TLB configuration. The block offset may be zero.
func (c Config) Validate() error {
	if c.Cycles <= 0 ||
		c.BlockSize == 0 ||
		c.TLBSize == 0 ||
		c.TLBLatency == 0 ||
		c.MemoryLatency == 0 {
		return fmt.Errorf(
			"%w: all parameters must be set and greater than zero",
			ErrInvalidArgument)
	}

	if c.V2BBlockOffset > math.MaxUint32 {
		return fmt.Errorf("%w: v2b-block-offset %d does not fit in 32 bits",
			ErrInvalidArgument, c.V2BBlockOffset)
	}

	return c.TLBConfig().Validate()
}

// TLBConfig converts the parameters into the configuration of a TLB.
func (c Config) TLBConfig() tlb.Config {
	return tlb.Config{
		CycleLimit:    uint64(c.Cycles),
		NumEntries:    c.TLBSize,
		Latency:       c.TLBLatency,
		FillLatency:   c.MemoryLatency,
		BlockSize:     c.BlockSize,
		AddressOffset: uint32(c.V2BBlockOffset),
	}
}

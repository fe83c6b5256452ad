// Package cmd provides the command-line interface of the TLB simulator.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/AltayOzkan/TLB-Project/mem/vm"
	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb"
	"github.com/AltayOzkan/TLB-Project/sim"
	"github.com/AltayOzkan/TLB-Project/simulation"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// traceFreq converts cycles into the times stored in recorded traces.
const traceFreq = 1 * sim.GHz

// NewRootCommand creates the tlbsim command with all its flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tlbsim [flags] <input_file>",
		Short: "tlbsim replays a memory trace through a direct-mapped TLB.",
		Long: `tlbsim replays a trace of memory requests through a ` +
			`direct-mapped TLB and reports the cycles, hits, misses and an ` +
			`estimate of the primitive gates needed to build the TLB.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runSimulation,
	}

	f := rootCmd.Flags()
	f.Int64P(flagCycles, "c", 0, "Number of cycles to simulate")
	f.Uint64(flagBlockSize, 0, "Size of memory blocks in bytes")
	f.Uint64(flagV2BBlockOffset, 0,
		"Offset to translate virtual to physical addresses, in blocks")
	f.Uint64(flagTLBSize, 0, "Size of the TLB in entries")
	f.Uint64(flagTLBLatency, 0, "TLB latency in cycles")
	f.Uint64(flagMemoryLatency, 0, "Memory latency in cycles")
	f.String(flagTraceFile, "", "Tracefile to output signals")
	f.String("sqlite", "",
		"Record translations and the run summary into <name>.sqlite3")
	f.Bool("monitor", false, "Serve the state of the simulation over HTTP")
	f.Int("monitor-port", 0, "Port of the monitoring server")
	f.Bool("open-browser", false, "Open the monitoring page in a browser")
	f.BoolP("verbose", "v", false, "Print the progress of every request")

	rootCmd.PersistentFlags().String("env-file", ".env",
		"File with TLBSIM_* variables to use for unset flags")

	rootCmd.AddCommand(newGatesCommand(), newRunsCommand())

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	if err := loadEnvFromFlags(cmd); err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	inputFile := args[0]

	reqs, err := vm.ReadRequestFile(inputFile)
	if err != nil {
		return err
	}

	s, err := buildSimulation(cmd)
	if err != nil {
		return err
	}

	setupLogging(cmd, s)

	sink, err := openTraceFile(cfg.TraceFile)
	if err != nil {
		s.Terminate()
		return err
	}

	result, err := s.Run(inputFile, cfg.TLBConfig(), reqs, sink)
	if err != nil {
		s.Terminate()
		return err
	}

	if err := s.Terminate(); err != nil {
		return err
	}

	if result.Aborted {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: Cycle count exceeded limit")
	}

	printResult(cmd.OutOrStdout(), result)

	return nil
}

func loadEnvFromFlags(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")

	return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
}

func buildSimulation(cmd *cobra.Command) (*simulation.Simulation, error) {
	b := simulation.MakeBuilder().WithFreq(traceFreq)

	dbName, _ := cmd.Flags().GetString("sqlite")
	if dbName != "" {
		b = b.WithDataRecording().WithOutputFileName(dbName)
	}

	monitorOn, _ := cmd.Flags().GetBool("monitor")
	if monitorOn {
		port, _ := cmd.Flags().GetInt("monitor-port")
		b = b.WithMonitoring().WithMonitorPort(port)
	}

	s, err := b.Build()
	if err != nil {
		return nil, err
	}

	openBrowser, _ := cmd.Flags().GetBool("open-browser")
	if monitorOn && openBrowser {
		if err := browser.OpenURL(s.MonitorURL()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"Cannot open the browser, visit %s instead: %v\n",
				s.MonitorURL(), err)
		}
	}

	return s, nil
}

func setupLogging(cmd *cobra.Command, s *simulation.Simulation) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return
	}

	logger := log.New(cmd.ErrOrStderr(), "", 0)
	s.AddHook(tlb.NewProgressLogger(logger))
}

func openTraceFile(path string) (io.Writer, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create trace file: %w", err)
	}

	return f, nil
}

func printResult(w io.Writer, result tlb.Result) {
	fmt.Fprintf(w, "Cycles: %d\n", result.Cycles)
	fmt.Fprintf(w, "Hits: %d\n", result.Hits)
	fmt.Fprintf(w, "Misses: %d\n", result.Misses)
	fmt.Fprintf(w, "Primitive Gate Count: %d\n", result.GateCount)
}

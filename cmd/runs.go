package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/AltayOzkan/TLB-Project/datarecording"
	"github.com/AltayOzkan/TLB-Project/mem/trace"
	"github.com/spf13/cobra"
)

func newRunsCommand() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:          "runs <db_file>",
		Short:        "List the runs recorded with --sqlite.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			runs, err := trace.ListRuns(cmd.Context(), reader, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w,
				"ID\tTrace\tEntries\tBlock Size\tRequests\tCycles\tHits\tMisses\tGates\tAborted")

			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d/%d\t%d\t%d\t%d\t%d\t%t\n",
					r.ID, r.Trace, r.NumEntries, r.BlockSize,
					r.Retired, r.NumReqs, r.Cycles, r.Hits, r.Misses,
					r.GateCount, r.Aborted)
			}

			return w.Flush()
		},
	}

	runsCmd.Flags().Int("limit", 0, "Show only the latest runs")

	return runsCmd
}

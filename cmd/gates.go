package cmd

import (
	"fmt"

	"github.com/AltayOzkan/TLB-Project/mem/vm/tlb"
	"github.com/spf13/cobra"
)

func newGatesCommand() *cobra.Command {
	gatesCmd := &cobra.Command{
		Use:          "gates",
		Short:        "Print the primitive gate estimate of a TLB.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFromFlags(cmd); err != nil {
				return err
			}

			size, err := resolveUint(cmd, flagTLBSize)
			if err != nil {
				return err
			}

			if size == 0 {
				return fmt.Errorf("%w: TLB size must be greater than zero",
					ErrInvalidArgument)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Primitive Gate Count: %d\n",
				tlb.EstimateGateCount(size, 0, 0, 0, 0))

			return nil
		},
	}

	gatesCmd.Flags().Uint64(flagTLBSize, 0, "Size of the TLB in entries")

	return gatesCmd
}

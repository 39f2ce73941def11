package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmatch/gen"
	"github.com/katalvlaran/lvmatch/internal/instance"
)

// newGenerateCmd creates the generate command
func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random instance",
		Long: `Print a seeded random instance in the format read by the other commands.

Examples:
  lvmatch generate stable --size 10 --seed 7 > couples.yaml
  lvmatch generate donors --donors 20 --receivers 15 > cohort.yaml`,
	}

	cmd.AddCommand(newGenerateStableCmd(a))
	cmd.AddCommand(newGenerateDonorsCmd(a))

	return cmd
}

func newGenerateStableCmd(a *app) *cobra.Command {
	var (
		size     int
		truncate int
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "stable",
		Short: "Random complete preference lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, r, err := gen.Preferences(size, size, seed)
			if err != nil {
				return err
			}
			if truncate > 0 {
				if p, err = gen.Truncate(p, truncate); err != nil {
					return err
				}
			}
			a.log.Debug("generated stable instance", zap.Int("size", size), zap.Int64("seed", seed))

			return writeInstance(cmd, &instance.Stable{Proposers: p, Receivers: r})
		},
	}

	cmd.Flags().IntVar(&size, "size", 5, "participants per side")
	cmd.Flags().IntVar(&truncate, "truncate", 0, "keep only the first N entries of each proposer list (0 keeps all)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 selects the default seed)")

	return cmd
}

func newGenerateDonorsCmd(a *app) *cobra.Command {
	var (
		donors    int
		receivers int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "donors",
		Short: "Random blood-typed donors and receivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, rs, err := gen.Cohort(donors, receivers, nil, seed)
			if err != nil {
				return err
			}
			a.log.Debug("generated donor instance",
				zap.Int("donors", donors), zap.Int("receivers", receivers), zap.Int64("seed", seed))

			return writeInstance(cmd, &instance.Donors{Donors: ds, Receivers: rs})
		},
	}

	cmd.Flags().IntVar(&donors, "donors", 5, "number of donors")
	cmd.Flags().IntVar(&receivers, "receivers", 5, "number of receivers")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 selects the default seed)")

	return cmd
}

func writeInstance(cmd *cobra.Command, v interface{}) error {
	data, err := instance.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)

	return err
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmatch/bipartite"
	"github.com/katalvlaran/lvmatch/bloodtype"
	"github.com/katalvlaran/lvmatch/internal/instance"
)

// newDonorsCmd creates the donors command
func newDonorsCmd(a *app) *cobra.Command {
	var (
		file      string
		tableFile string
		verify    bool
	)

	cmd := &cobra.Command{
		Use:   "donors",
		Short: "Compute a maximum donor/receiver matching",
		Long: `Compute a maximum-cardinality matching between donors and receivers.

Compatibility comes from the instance's explicit "compatible" pairs when
present, otherwise from blood types and a compatibility table (the
built-in ABO/Rh table unless --table is given).

Examples:
  lvmatch donors -f cohort.yaml
  lvmatch donors -f cohort.yaml --table custom.yaml -o table --verify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := instance.LoadDonors(file)
			if err != nil {
				return err
			}
			table := bloodtype.Default()
			if tableFile != "" {
				if table, err = bloodtype.LoadFile(tableFile); err != nil {
					return err
				}
			}

			g, err := bipartite.BuildGraph(inst.DonorIDs(), inst.ReceiverIDs(), inst.Predicate(table))
			if err != nil {
				return fmt.Errorf("compatibility graph of %s: %w", file, err)
			}
			a.log.Debug("compatibility graph built",
				zap.Int("donors", len(inst.Donors)),
				zap.Int("receivers", len(inst.Receivers)),
				zap.Int("edges", g.Edges()))

			res, err := g.MaximumMatching(bipartite.WithOnAugment(func(phase int, donor, receiver string) {
				a.log.Debug("augmenting path",
					zap.Int("phase", phase),
					zap.String("donor", donor),
					zap.String("receiver", receiver))
			}))
			if err != nil {
				return fmt.Errorf("maximum matching of %s: %w", file, err)
			}
			a.log.Info("maximum matching computed",
				zap.Int("size", res.Size),
				zap.Int("phases", res.Phases))

			if verify {
				more, err := g.HasAugmentingPath(res.Pairs)
				if err != nil {
					return fmt.Errorf("verification failed: %w", err)
				}
				if more {
					return fmt.Errorf("verification failed: %w: matching is not maximum", bipartite.ErrInternalInconsistency)
				}
				a.log.Info("matching verified maximum")
			}

			return render(cmd.OutOrStdout(), a.v.GetString(keyOutput), newDonorsReport(res))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "instance file (required)")
	cmd.Flags().StringVar(&tableFile, "table", "", "compatibility table file (default: built-in ABO/Rh)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check that no augmenting path remains")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

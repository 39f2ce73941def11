package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmatch/internal/instance"
	"github.com/katalvlaran/lvmatch/stable"
)

// newStableCmd creates the stable command
func newStableCmd(a *app) *cobra.Command {
	var (
		file       string
		incomplete bool
		verify     bool
	)

	cmd := &cobra.Command{
		Use:   "stable",
		Short: "Compute a stable matching between two ranked populations",
		Long: `Compute the proposer-optimal stable matching of a YAML instance:

  proposers:
    A: [X, Y, Z]
  receivers:
    X: [B, A, C]

Strategies (sequential, bucket, heap) only change the order in which
proposals are served; they always produce the same pairs.

Examples:
  lvmatch stable -f couples.yaml
  lvmatch stable -f couples.yaml --strategy heap -o table
  LVMATCH_STRATEGY=bucket lvmatch stable -f couples.yaml --verify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := instance.LoadStable(file)
			if err != nil {
				return err
			}
			st, err := stable.ParseStrategy(a.v.GetString(keyStrategy))
			if err != nil {
				return err
			}

			opts := []stable.Option{
				stable.WithStrategy(st),
				stable.WithOnProposal(func(proposer, receiver string, rank int) {
					a.log.Debug("proposal",
						zap.String("proposer", proposer),
						zap.String("receiver", receiver),
						zap.Int("rank", rank))
				}),
			}
			if incomplete {
				opts = append(opts, stable.WithIncompleteLists())
			}

			res, err := stable.Match(inst.Proposers, inst.Receivers, opts...)
			if err != nil {
				return fmt.Errorf("stable matching of %s: %w", file, err)
			}
			a.log.Info("stable matching computed",
				zap.String("strategy", st.String()),
				zap.Int("pairs", len(res.Pairs)),
				zap.Int("proposals", res.Proposals))

			if verify {
				if err = stable.Verify(inst.Proposers, inst.Receivers, res.Pairs); err != nil {
					return fmt.Errorf("verification failed: %w", err)
				}
				a.log.Info("matching verified stable")
			}

			return render(cmd.OutOrStdout(), a.v.GetString(keyOutput), newStableReport(res))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "instance file (required)")
	cmd.Flags().String(keyStrategy, stable.Sequential.String(), "proposal scheduling: sequential, bucket or heap")
	cmd.Flags().BoolVar(&incomplete, "incomplete", false, "allow unequal populations and partial preference lists")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the result for blocking pairs")
	_ = cmd.MarkFlagRequired("file")
	_ = a.v.BindPFlag(keyStrategy, cmd.Flags().Lookup(keyStrategy))

	return cmd
}

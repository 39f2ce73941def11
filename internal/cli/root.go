// Package cli implements the lvmatch command line.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration keys shared by flags, LVMATCH_* environment variables and
// the optional config file.
const (
	keyLogLevel = "log-level"
	keyOutput   = "output"
	keyStrategy = "strategy"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	log     *zap.Logger
	cfgFile string
}

// NewRootCmd creates the root cobra command.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}
	a.v.SetEnvPrefix("LVMATCH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "lvmatch",
		Short: "Stable and maximum bipartite matchings from YAML instances",
		Long: `lvmatch computes stable matchings between two ranked populations
(Gale–Shapley) and maximum donor/receiver matchings under a compatibility
relation (Hopcroft–Karp).

Settings come from flags, LVMATCH_* environment variables or --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.StringP(keyOutput, "o", "yaml", "output format (yaml, table)")
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup(keyLogLevel))
	_ = a.v.BindPFlag(keyOutput, flags.Lookup(keyOutput))

	rootCmd.AddCommand(newStableCmd(a))
	rootCmd.AddCommand(newDonorsCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newVersionCmd(version))

	return rootCmd
}

// setup reads the config file, if any, and builds the logger.
func (a *app) setup() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}

	lggr, err := newLogger(a.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	a.log = lggr

	return nil
}

// newVersionCmd creates the version command
func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lvmatch version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}

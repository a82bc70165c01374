package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// options holds every flag value. Each command tree gets its own copy so
// tests can build and execute fresh commands.
type options struct {
	logger *zap.Logger

	configPath string
	debug      bool

	numShares    float64
	ipoPrice     float64
	movingCosts  float64
	interestRate float64
	origin       string
	destination  string

	// grid sweep
	outputDir  string
	minReturn  float64
	maxReturn  float64
	returnStep float64
	details    bool

	// single cell
	return1 float64
	return2 float64
	plain   bool

	asYAML bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newCommand(&options{})
}

// newCommand builds the command tree around o. A logger already set on o
// is used as is.
func newCommand(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "ipo-exit",
		Short: "Compare IPO sell timing and relocation strategies after tax",
		Long: `ipo-exit sweeps a grid of share price returns over two six-month periods
and, for every cell, picks the best of four strategies:

  SELL_6M_STAY   sell at 6 months, pay short-term tax at home
  SELL_6M_MOVE   move, sell at 6 months, pay short-term tax at the destination
  HOLD_12M_STAY  hold 12 months, pay long-term tax at home
  HOLD_12M_MOVE  move, hold 12 months, pay long-term tax at the destination

Writes heatmap.tsv (best totals) and decisions.tsv (winning strategy) to --output-dir.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if o.debug {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			o.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrid(cmd, o)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Path to YAML config")
	pf.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	pf.Float64Var(&o.numShares, "num-shares", 0, "Shares granted at IPO, before withholding (required)")
	pf.Float64Var(&o.ipoPrice, "ipo-price", 0, "IPO share price in $ (required)")
	pf.Float64Var(&o.movingCosts, "moving-costs", 0, "One-off cost of relocating in $")
	pf.Float64Var(&o.interestRate, "interest-rate", 4, "Annual % earned on proceeds reinvested after an early sale")
	pf.StringVar(&o.origin, "origin", "", "Jurisdiction code you live in now (default CA)")
	pf.StringVar(&o.destination, "destination", "", "Jurisdiction code you would move to (default WA)")

	f := root.Flags()
	f.StringVar(&o.outputDir, "output-dir", ".", "Directory for heatmap.tsv and decisions.tsv")
	f.Float64Var(&o.minReturn, "min-return", -30, "Lowest return % on both axes")
	f.Float64Var(&o.maxReturn, "max-return", 100, "Highest return % on both axes")
	f.Float64Var(&o.returnStep, "return-step", 10, "Return % step on both axes")
	f.BoolVar(&o.details, "details", false, "Also write scenarios.tsv with every strategy per cell")

	root.AddCommand(
		newScenarioCmd(o),
		newRankCmd(o),
		newJurisdictionsCmd(o),
	)
	return root
}

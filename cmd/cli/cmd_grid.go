package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/analysis"
	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/report"
	"ipo-exit-planner/internal/scenario"
)

func runGrid(cmd *cobra.Command, o *options) error {
	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	in, _, err := buildInput(cfg, 0, 0)
	if err != nil {
		return err
	}
	axis, err := cfg.Axis()
	if err != nil {
		return err
	}

	log := o.logger.With(zap.String("run_id", uuid.NewString()))
	g, err := scenario.New(log).Run(in, axis, axis)
	if err != nil {
		return err
	}
	log.Info("grid swept",
		zap.String("origin", in.Origin.Code),
		zap.String("destination", in.Destination.Code),
		zap.Int("rows", g.Rows()),
		zap.Int("cols", g.Cols()),
	)

	paths, err := report.WriteFiles(o.outputDir, g, report.Options{Details: o.details})
	if err != nil {
		return err
	}
	log.Info("outputs written", zap.Strings("paths", paths))

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintf(out, "Wrote %s\n", p)
	}

	s := analysis.Summarize(g)
	fmt.Fprintf(out, "\n%d cells, %s -> %s\n", s.Cells, in.Origin.Code, in.Destination.Code)
	for _, d := range model.Decisions {
		fmt.Fprintf(out, "  %-14s %d\n", d, s.Counts[d])
	}
	fmt.Fprintf(out, "Best total min=%s p05=%s mean=%s p95=%s max=%s\n",
		report.Money(s.MinBest),
		report.Money(s.P05Best),
		report.Money(s.MeanBest),
		report.Money(s.P95Best),
		report.Money(s.MaxBest),
	)
	fmt.Fprintf(out, "Moving wins in %.0f%% of cells; largest breakeven moving cost %s\n",
		s.MoveShare()*100, report.Money(s.MaxBreakeven))
	return nil
}

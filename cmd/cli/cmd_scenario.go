package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/analysis"
	"ipo-exit-planner/internal/report"
	"ipo-exit-planner/internal/scenario"
)

func addCellFlags(cmd *cobra.Command, o *options) {
	f := cmd.Flags()
	f.Float64Var(&o.return1, "return1", 0, "Return % over the first six months")
	f.Float64Var(&o.return2, "return2", 0, "Return % over the second six months")
	f.BoolVar(&o.plain, "plain", false, "Print raw Markdown instead of rendering it")
}

func newScenarioCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Compare all four strategies for one pair of returns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			in, _, err := buildInput(cfg, o.return1, o.return2)
			if err != nil {
				return err
			}
			log := o.logger.With(zap.String("run_id", uuid.NewString()))
			res, err := scenario.New(log).Evaluate(in)
			if err != nil {
				return err
			}
			log.Debug("scenario evaluated",
				zap.String("best", string(res.Best)),
				zap.String("total", res.BestTotal.StringFixed(2)),
			)
			return render(cmd, o, report.ScenarioMarkdown(in, res))
		},
	}
	addCellFlags(cmd, o)
	return cmd
}

func newRankCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank every destination for one pair of returns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			in, table, err := buildInput(cfg, o.return1, o.return2)
			if err != nil {
				return err
			}
			log := o.logger.With(zap.String("run_id", uuid.NewString()))
			ranked, err := analysis.RankDestinations(scenario.New(log), in, table.All())
			if err != nil {
				return err
			}
			log.Debug("destinations ranked", zap.Int("count", len(ranked)))
			return render(cmd, o, report.RankMarkdown(in, ranked))
		},
	}
	addCellFlags(cmd, o)
	return cmd
}

func render(cmd *cobra.Command, o *options, md string) error {
	out := cmd.OutOrStdout()
	if o.plain {
		_, err := fmt.Fprint(out, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

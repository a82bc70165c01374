package strategy

import (
	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/tax"
)

// HoldStrategy keeps every share through both periods and sells at the
// 12-month mark at long-term rates.
type HoldStrategy struct {
	Move bool
}

func (s *HoldStrategy) Name() string { return string(s.Decision()) }

func (s *HoldStrategy) Decision() model.Decision {
	if s.Move {
		return model.DecisionHold12MMove
	}
	return model.DecisionHold12MStay
}

func (s *HoldStrategy) Evaluate(ctx Context) model.StrategyOutcome {
	in := ctx.Input
	where, moving := residence(in, s.Move)

	shares := in.SharesAfterWithholding()
	price := in.PriceAt12M()

	proceeds := shares.Mul(price)
	gain := shares.Mul(price.Sub(in.IPOPrice))

	return finish(model.StrategyOutcome{
		Decision:     s.Decision(),
		Jurisdiction: where.Code,
		Proceeds:     proceeds,
		Interest:     decimal.Zero,
		MovingCost:   moving,
	}, ctx.Tax.Compute(gain, tax.LongTerm, where))
}

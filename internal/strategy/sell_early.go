package strategy

import (
	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/tax"
)

// SellEarlyStrategy sells every share at the 6-month mark and parks the
// proceeds at the interest rate for the remaining six months.
//
// The whole pre-tax proceeds are reinvested; tax on the sale and on the
// interest is settled at year end at the short-term rates of the jurisdiction
// the seller lives in.
type SellEarlyStrategy struct {
	Move bool
}

func (s *SellEarlyStrategy) Name() string { return string(s.Decision()) }

func (s *SellEarlyStrategy) Decision() model.Decision {
	if s.Move {
		return model.DecisionSell6MMove
	}
	return model.DecisionSell6MStay
}

func (s *SellEarlyStrategy) Evaluate(ctx Context) model.StrategyOutcome {
	in := ctx.Input
	where, moving := residence(in, s.Move)

	shares := in.SharesAfterWithholding()
	price := in.PriceAt6M()

	proceeds := shares.Mul(price)
	interest := proceeds.Mul(in.HalfYearInterest())
	gain := shares.Mul(price.Sub(in.IPOPrice)).Add(interest)

	return finish(model.StrategyOutcome{
		Decision:     s.Decision(),
		Jurisdiction: where.Code,
		Proceeds:     proceeds,
		Interest:     interest,
		MovingCost:   moving,
	}, ctx.Tax.Compute(gain, tax.ShortTerm, where))
}

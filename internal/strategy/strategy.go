package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/tax"
)

type Context struct {
	Input model.ScenarioInput
	Tax   *tax.Calculator
}

type Strategy interface {
	Name() string
	Decision() model.Decision
	Evaluate(ctx Context) model.StrategyOutcome
}

// All returns the four exit strategies in tie-break priority order.
func All() []Strategy {
	return []Strategy{
		&SellEarlyStrategy{Move: false},
		&SellEarlyStrategy{Move: true},
		&HoldStrategy{Move: false},
		&HoldStrategy{Move: true},
	}
}

// ForDecision returns the strategy that produces d.
func ForDecision(d model.Decision) (Strategy, error) {
	for _, s := range All() {
		if s.Decision() == d {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown strategy %q", d)
}

// residence returns where the sale is taxed and the moving cost paid to get
// there.
func residence(in model.ScenarioInput, move bool) (model.JurisdictionProfile, decimal.Decimal) {
	if move {
		return in.Destination, in.MovingCost
	}
	return in.Origin, decimal.Zero
}

func finish(o model.StrategyOutcome, b tax.Breakdown) model.StrategyOutcome {
	o.TaxableGain = b.Taxable
	o.FederalTax = b.Federal
	o.StateTax = b.State
	o.LossClamped = b.Clamped
	o.Total = o.Proceeds.Add(o.Interest).Sub(b.Total()).Sub(o.MovingCost)
	return o
}

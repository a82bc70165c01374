package model

import "github.com/shopspring/decimal"

// StrategyOutcome captures what one strategy yields for one grid cell.
// All amounts are in $.
type StrategyOutcome struct {
	Decision     Decision
	Jurisdiction string

	Proceeds    decimal.Decimal // gross sale proceeds
	Interest    decimal.Decimal // earned on reinvested proceeds (6-month sales only)
	TaxableGain decimal.Decimal // after clamping losses to zero
	FederalTax  decimal.Decimal
	StateTax    decimal.Decimal
	MovingCost  decimal.Decimal // only charged by move strategies

	Total decimal.Decimal // Proceeds + Interest - taxes - MovingCost

	// LossClamped is set when the pre-clamp gain was negative.
	LossClamped bool
}

func (o StrategyOutcome) Tax() decimal.Decimal {
	return o.FederalTax.Add(o.StateTax)
}

// TotalBeforeMoving is the total as if moving were free.
func (o StrategyOutcome) TotalBeforeMoving() decimal.Decimal {
	return o.Total.Add(o.MovingCost)
}

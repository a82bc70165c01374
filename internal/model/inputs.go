package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ScenarioInput is everything needed to evaluate one grid cell.
// Units:
// - NumShares: shares granted before withholding
// - IPOPrice, MovingCost: $
// - Return1Pct, Return2Pct: % price change over each six-month period
// - InterestRatePct: % per year earned on reinvested proceeds
type ScenarioInput struct {
	NumShares       decimal.Decimal
	IPOPrice        decimal.Decimal
	Return1Pct      decimal.Decimal
	Return2Pct      decimal.Decimal
	MovingCost      decimal.Decimal
	InterestRatePct decimal.Decimal

	Origin      JurisdictionProfile
	Destination JurisdictionProfile
}

func (in ScenarioInput) Validate() error {
	if !in.NumShares.IsPositive() {
		return errors.New("num shares must be > 0")
	}
	if !in.IPOPrice.IsPositive() {
		return errors.New("ipo price must be > 0")
	}
	if in.MovingCost.IsNegative() {
		return errors.New("moving costs must be >= 0")
	}
	if in.InterestRatePct.IsNegative() {
		return errors.New("interest rate must be >= 0")
	}
	if in.Return1Pct.LessThan(hundred.Neg()) {
		return fmt.Errorf("return for period 1 must be >= -100%%, got %s%%", in.Return1Pct)
	}
	if in.Return2Pct.LessThan(hundred.Neg()) {
		return fmt.Errorf("return for period 2 must be >= -100%%, got %s%%", in.Return2Pct)
	}
	if err := in.Origin.Validate(); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if err := in.Destination.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	return nil
}

// WithReturns returns a copy of in with both period returns replaced.
func (in ScenarioInput) WithReturns(r1, r2 decimal.Decimal) ScenarioInput {
	in.Return1Pct = r1
	in.Return2Pct = r2
	return in
}

// SharesAfterWithholding is the share count left once the origin withholding
// has been taken at vest.
func (in ScenarioInput) SharesAfterWithholding() decimal.Decimal {
	return in.NumShares.Mul(decimal.NewFromInt(1).Sub(in.Origin.WithholdingRate))
}

// PriceAt6M is the share price after the first period.
func (in ScenarioInput) PriceAt6M() decimal.Decimal {
	return in.IPOPrice.Mul(growth(in.Return1Pct))
}

// PriceAt12M is the share price after both periods.
func (in ScenarioInput) PriceAt12M() decimal.Decimal {
	return in.PriceAt6M().Mul(growth(in.Return2Pct))
}

// HalfYearInterest is the fraction earned on reinvested proceeds over the
// second six-month period (simple interest).
func (in ScenarioInput) HalfYearInterest() decimal.Decimal {
	return in.InterestRatePct.Div(hundred).Div(two)
}

func growth(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Div(hundred))
}

// CheckFinite rejects NaN and ±Inf, naming the offending field.
func CheckFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number, got %v", name, v)
	}
	return nil
}

// FiniteDecimal converts v, failing instead of panicking on NaN or ±Inf.
func FiniteDecimal(name string, v float64) (decimal.Decimal, error) {
	if err := CheckFinite(name, v); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(v), nil
}

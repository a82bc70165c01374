// Package tax computes federal and state tax owed on capital gains.
package tax

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/model"
)

// Term is the holding-period treatment of a gain.
type Term int

const (
	ShortTerm Term = iota
	LongTerm
)

func (t Term) String() string {
	if t == LongTerm {
		return "long-term"
	}
	return "short-term"
}

// Progressive returns the tax owed on income under a bracket schedule:
// the sum of (min(income, upper) - lower) * rate over the brackets the income
// reaches. Income at or below zero owes nothing.
func Progressive(income decimal.Decimal, brackets []model.TaxBracket) decimal.Decimal {
	owed := decimal.Zero
	if !income.IsPositive() {
		return owed
	}
	for i, b := range brackets {
		if income.LessThanOrEqual(b.Threshold) {
			break
		}
		upper := income
		if i+1 < len(brackets) && brackets[i+1].Threshold.LessThan(income) {
			upper = brackets[i+1].Threshold
		}
		owed = owed.Add(upper.Sub(b.Threshold).Mul(b.Rate))
	}
	return owed
}

// Breakdown is the tax owed on one gain.
type Breakdown struct {
	Taxable decimal.Decimal
	Federal decimal.Decimal
	State   decimal.Decimal
	// Clamped is set when a negative gain was treated as zero.
	Clamped bool
}

func (b Breakdown) Total() decimal.Decimal {
	return b.Federal.Add(b.State)
}

type Calculator struct {
	logger *zap.Logger
}

func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Compute taxes income as a gain of the given term for a resident of p.
//
// Losses are clamped to zero: no credit, no carry-forward. The result is
// flagged with Clamped.
func (c *Calculator) Compute(income decimal.Decimal, term Term, p model.JurisdictionProfile) Breakdown {
	var out Breakdown
	if income.IsNegative() {
		c.logger.Debug("clamping negative taxable gain to zero",
			zap.String("jurisdiction", p.Code),
			zap.Stringer("term", term),
			zap.String("gain", income.StringFixed(2)))
		income = decimal.Zero
		out.Clamped = true
	}

	rate := p.FederalShortTermRate
	if term == LongTerm {
		rate = p.FederalLongTermRate
	}

	out.Taxable = income
	out.Federal = income.Mul(rate)
	out.State = Progressive(income, p.Brackets)
	return out
}

// MarginalRate is the combined federal + state rate on the next dollar of
// income.
func MarginalRate(income decimal.Decimal, term Term, p model.JurisdictionProfile) decimal.Decimal {
	rate := p.FederalShortTermRate
	if term == LongTerm {
		rate = p.FederalLongTermRate
	}
	state := decimal.Zero
	for _, b := range p.Brackets {
		if income.LessThan(b.Threshold) {
			break
		}
		state = b.Rate
	}
	return rate.Add(state)
}

package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/tax"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// flat builds a profile whose state schedule is a single bracket.
func flat(code, state string) model.JurisdictionProfile {
	return model.JurisdictionProfile{
		Code:                 code,
		Brackets:             []model.TaxBracket{{Threshold: d("0"), Rate: d(state)}},
		FederalShortTermRate: d("0"),
		FederalLongTermRate:  d("0"),
		WithholdingRate:      d("0"),
	}
}

// baseInput: 10 shares at $10, +10% in each period, 20%/yr interest (10% over
// the second half), moving costs $1.
func baseInput() model.ScenarioInput {
	return model.ScenarioInput{
		NumShares:       d("10"),
		IPOPrice:        d("10"),
		Return1Pct:      d("10"),
		Return2Pct:      d("10"),
		MovingCost:      d("1"),
		InterestRatePct: d("20"),
		Origin:          flat("HI", "0.1"),
		Destination:     flat("LO", "0.1"),
	}
}

func evaluate(t *testing.T, s Strategy, in model.ScenarioInput) model.StrategyOutcome {
	t.Helper()
	require.NoError(t, in.Validate())
	return s.Evaluate(Context{Input: in, Tax: tax.NewCalculator(nil)})
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(d(want)), "want %s, got %s", want, got)
}

func TestSellEarlyStay(t *testing.T) {
	out := evaluate(t, &SellEarlyStrategy{}, baseInput())

	assert.Equal(t, model.DecisionSell6MStay, out.Decision)
	assert.Equal(t, "HI", out.Jurisdiction)
	assertMoney(t, "110", out.Proceeds)
	assertMoney(t, "11", out.Interest)
	assertMoney(t, "21", out.TaxableGain)
	assertMoney(t, "2.1", out.StateTax)
	assertMoney(t, "0", out.MovingCost)
	assertMoney(t, "118.9", out.Total)
}

func TestSellEarlyReinvestsAtInterestRate(t *testing.T) {
	in := baseInput()
	in.InterestRatePct = d("40")
	out := evaluate(t, &SellEarlyStrategy{}, in)
	assertMoney(t, "128.8", out.Total)
}

func TestSellEarlyMoveChargesMovingCost(t *testing.T) {
	out := evaluate(t, &SellEarlyStrategy{Move: true}, baseInput())
	assert.Equal(t, model.DecisionSell6MMove, out.Decision)
	assert.Equal(t, "LO", out.Jurisdiction)
	assertMoney(t, "1", out.MovingCost)
	assertMoney(t, "117.9", out.Total)
	assertMoney(t, "118.9", out.TotalBeforeMoving())
}

func TestHold(t *testing.T) {
	in := baseInput()
	in.Origin = flat("HI", "0.9")
	in.Destination = flat("LO", "0.1")

	stay := evaluate(t, &HoldStrategy{}, in)
	assertMoney(t, "121", stay.Proceeds)
	assertMoney(t, "0", stay.Interest)
	assertMoney(t, "21", stay.TaxableGain)
	assertMoney(t, "102.1", stay.Total)

	move := evaluate(t, &HoldStrategy{Move: true}, in)
	assert.Equal(t, model.DecisionHold12MMove, move.Decision)
	assertMoney(t, "117.9", move.Total)
}

func TestFederalRatesFollowTerm(t *testing.T) {
	in := baseInput()
	in.Origin.FederalShortTermRate = d("0.5")
	in.Origin.FederalLongTermRate = d("0.3")

	sell := evaluate(t, &SellEarlyStrategy{}, in)
	assertMoney(t, "10.5", sell.FederalTax)
	assertMoney(t, "108.4", sell.Total)

	hold := evaluate(t, &HoldStrategy{}, in)
	assertMoney(t, "6.3", hold.FederalTax)
	assertMoney(t, "112.6", hold.Total)
}

func TestWithholdingReducesShares(t *testing.T) {
	in := baseInput()
	in.Origin.WithholdingRate = d("0.5")
	out := evaluate(t, &HoldStrategy{}, in)
	assertMoney(t, "60.5", out.Proceeds)
}

func TestLossIsNotTaxed(t *testing.T) {
	in := baseInput()
	in.Return1Pct = d("-50")
	in.Return2Pct = d("0")
	in.InterestRatePct = d("0")

	out := evaluate(t, &HoldStrategy{}, in)
	assert.True(t, out.LossClamped)
	assertMoney(t, "0", out.Tax())
	assertMoney(t, "50", out.Total)
}

func TestMovingCostNeverHelps(t *testing.T) {
	in := baseInput()
	for _, r1 := range []string{"-60", "-10", "0", "15", "80"} {
		for _, r2 := range []string{"-40", "0", "25"} {
			cell := in.WithReturns(d(r1), d(r2))
			for _, s := range []Strategy{&SellEarlyStrategy{Move: true}, &HoldStrategy{Move: true}} {
				free := cell
				free.MovingCost = decimal.Zero
				withCost := evaluate(t, s, cell)
				without := evaluate(t, s, free)
				assert.Truef(t, withCost.Total.LessThanOrEqual(without.Total),
					"%s at %s/%s: %s > %s", s.Name(), r1, r2, withCost.Total, without.Total)
			}
		}
	}
}

func TestAllAndForDecision(t *testing.T) {
	all := All()
	require.Len(t, all, len(model.Decisions))
	for i, s := range all {
		assert.Equal(t, model.Decisions[i], s.Decision())
		assert.Equal(t, string(model.Decisions[i]), s.Name())
	}

	s, err := ForDecision(model.DecisionHold12MMove)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionHold12MMove, s.Decision())

	_, err = ForDecision("SELL_NEVER")
	assert.Error(t, err)
}

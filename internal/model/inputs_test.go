package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ScenarioInput {
	return ScenarioInput{
		NumShares:       d("1000"),
		IPOPrice:        d("10"),
		Return1Pct:      d("6"),
		Return2Pct:      d("7"),
		MovingCost:      d("0"),
		InterestRatePct: d("4"),
		Origin:          validProfile(),
		Destination:     validProfile(),
	}
}

func TestScenarioInputDerivedValues(t *testing.T) {
	in := validInput()
	assert.NoError(t, in.Validate())

	assert.True(t, in.SharesAfterWithholding().Equal(d("780")))
	assert.True(t, in.PriceAt6M().Equal(d("10.6")))
	assert.True(t, in.PriceAt12M().Equal(d("11.342")))
	assert.True(t, in.HalfYearInterest().Equal(d("0.02")))
}

func TestScenarioInputValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ScenarioInput)
		want   string
	}{
		{"no shares", func(in *ScenarioInput) { in.NumShares = d("0") }, "num shares"},
		{"no price", func(in *ScenarioInput) { in.IPOPrice = d("-1") }, "ipo price"},
		{"negative moving", func(in *ScenarioInput) { in.MovingCost = d("-5") }, "moving costs"},
		{"negative interest", func(in *ScenarioInput) { in.InterestRatePct = d("-1") }, "interest rate"},
		{"return below -100", func(in *ScenarioInput) { in.Return2Pct = d("-101") }, "period 2"},
		{"bad origin", func(in *ScenarioInput) { in.Origin.Code = "" }, "origin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			assert.ErrorContains(t, in.Validate(), tc.want)
		})
	}
}

func TestWithReturnsCopies(t *testing.T) {
	in := validInput()
	out := in.WithReturns(d("-20"), d("30"))
	assert.True(t, out.Return1Pct.Equal(d("-20")))
	assert.True(t, in.Return1Pct.Equal(d("6")))
	assert.True(t, out.PriceAt6M().Equal(d("8")))
}

func TestFiniteDecimal(t *testing.T) {
	v, err := FiniteDecimal("num shares", 12.5)
	require.NoError(t, err)
	assert.True(t, v.Equal(d("12.5")))

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FiniteDecimal("--num-shares", bad)
		assert.ErrorContains(t, err, "--num-shares must be a finite number")
	}
}

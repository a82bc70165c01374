package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipo-exit-planner/internal/data"
	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/scenario"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func input(t *testing.T) model.ScenarioInput {
	t.Helper()
	table := data.DefaultTable()
	ca, err := table.Get("CA")
	require.NoError(t, err)
	wa, err := table.Get("WA")
	require.NoError(t, err)
	return model.ScenarioInput{
		NumShares:       d("50000"),
		IPOPrice:        d("20"),
		Return1Pct:      d("30"),
		Return2Pct:      d("20"),
		MovingCost:      d("15000"),
		InterestRatePct: d("4"),
		Origin:          ca,
		Destination:     wa,
	}
}

func TestRankDestinations(t *testing.T) {
	e := scenario.New(nil)
	ranked, err := RankDestinations(e, input(t), data.DefaultTable().All())
	require.NoError(t, err)
	require.Len(t, ranked, data.DefaultTable().Len()-1)

	var codes []string
	for _, r := range ranked {
		codes = append(codes, r.Destination.Code)
		assert.NotEqual(t, "CA", r.Destination.Code)
	}
	// No-income-tax states tie and keep table order.
	assert.Equal(t, []string{"FL", "NV", "TX", "WA"}, codes[:4])

	for i := 1; i < len(ranked); i++ {
		assert.True(t, ranked[i-1].Result.BestTotal.GreaterThanOrEqual(ranked[i].Result.BestTotal))
	}

	stay := BestStay(ranked)
	assert.True(t, stay.IsPositive())
	assert.True(t, ranked[0].Gain(stay).IsPositive(), "moving to a no-tax state should pay off here")
	assert.True(t, ranked[0].Result.Best.Moves())
}

func TestRankDestinationsPropagatesErrors(t *testing.T) {
	in := input(t)
	in.IPOPrice = decimal.Zero
	_, err := RankDestinations(scenario.New(nil), in, data.DefaultTable().All())
	assert.Error(t, err)
}

func TestBestStayEmpty(t *testing.T) {
	assert.True(t, BestStay(nil).IsZero())
}

func TestSummarize(t *testing.T) {
	axis := scenario.Axis{Min: d("-50"), Max: d("50"), Step: d("25")}
	g, err := scenario.New(nil).Run(input(t), axis, axis)
	require.NoError(t, err)

	s := Summarize(g)
	assert.Equal(t, 25, s.Cells)

	total := 0
	for _, n := range s.Counts {
		total += n
	}
	assert.Equal(t, s.Cells, total)

	assert.True(t, s.MinBest.LessThanOrEqual(s.P05Best))
	assert.True(t, s.P05Best.LessThanOrEqual(s.P95Best))
	assert.True(t, s.P95Best.LessThanOrEqual(s.MaxBest))
	assert.True(t, s.MeanBest.GreaterThanOrEqual(s.MinBest))
	assert.True(t, s.MeanBest.LessThanOrEqual(s.MaxBest))
	assert.GreaterOrEqual(t, s.MoveShare(), 0.0)
	assert.LessOrEqual(t, s.MoveShare(), 1.0)
	assert.True(t, s.MaxBreakeven.IsPositive())
}

func TestSummarizeNil(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Cells)
	assert.Equal(t, 0.0, s.MoveShare())
}

func TestPercentileSorted(t *testing.T) {
	vals := []decimal.Decimal{d("0"), d("10"), d("20"), d("30"), d("40")}
	assert.True(t, percentileSorted(vals, 0).Equal(d("0")))
	assert.True(t, percentileSorted(vals, 1).Equal(d("40")))
	assert.True(t, percentileSorted(vals, 0.5).Equal(d("20")))
	assert.True(t, percentileSorted(vals, 0.05).Equal(d("2")))
	assert.True(t, percentileSorted(nil, 0.5).IsZero())
}

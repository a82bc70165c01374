package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/scenario"
)

// GridSummary condenses a sweep into the numbers worth printing after a run.
type GridSummary struct {
	Cells int

	// Counts holds how many cells each strategy won.
	Counts map[model.Decision]int

	MinBest  decimal.Decimal
	MaxBest  decimal.Decimal
	MeanBest decimal.Decimal
	P05Best  decimal.Decimal
	P95Best  decimal.Decimal

	// MaxBreakeven is the largest moving cost that still pays off somewhere
	// on the grid.
	MaxBreakeven decimal.Decimal
}

// MoveShare is the fraction of cells where a move strategy wins.
func (s GridSummary) MoveShare() float64 {
	if s.Cells == 0 {
		return 0
	}
	moves := s.Counts[model.DecisionSell6MMove] + s.Counts[model.DecisionHold12MMove]
	return float64(moves) / float64(s.Cells)
}

func Summarize(g *scenario.Grid) GridSummary {
	s := GridSummary{Counts: map[model.Decision]int{}}
	if g == nil {
		return s
	}
	vals := make([]decimal.Decimal, 0, g.Rows()*g.Cols())
	sum := decimal.Zero
	g.Each(func(_, _ int, r *scenario.Result) {
		s.Counts[r.Best]++
		vals = append(vals, r.BestTotal)
		sum = sum.Add(r.BestTotal)
		if r.BreakevenMovingCost.GreaterThan(s.MaxBreakeven) {
			s.MaxBreakeven = r.BreakevenMovingCost
		}
	})
	s.Cells = len(vals)
	if s.Cells == 0 {
		return s
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i].LessThan(vals[j]) })
	s.MinBest = vals[0]
	s.MaxBest = vals[len(vals)-1]
	s.MeanBest = sum.Div(decimal.NewFromInt(int64(len(vals))))
	s.P05Best = percentileSorted(vals, 0.05)
	s.P95Best = percentileSorted(vals, 0.95)
	return s
}

func percentileSorted(sorted []decimal.Decimal, q float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := decimal.NewFromFloat(q).Mul(decimal.NewFromInt(int64(len(sorted) - 1)))
	lo := pos.Floor()
	hi := pos.Ceil()
	if lo.Equal(hi) {
		return sorted[lo.IntPart()]
	}
	frac := pos.Sub(lo)
	a, b := sorted[lo.IntPart()], sorted[hi.IntPart()]
	return a.Mul(decimal.NewFromInt(1).Sub(frac)).Add(b.Mul(frac))
}

package scenario

import (
	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/model"
)

// Result is the evaluation of one grid cell.
type Result struct {
	Return1Pct decimal.Decimal
	Return2Pct decimal.Decimal

	// Outcomes holds one entry per strategy, in model.Decisions order.
	Outcomes []model.StrategyOutcome

	Best      model.Decision
	BestTotal decimal.Decimal

	// BreakevenMovingCost is the moving cost at which the best move strategy
	// stops beating the best stay strategy. Zero when staying already wins
	// with free moving.
	BreakevenMovingCost decimal.Decimal
}

// Outcome returns the outcome of strategy d.
func (r *Result) Outcome(d model.Decision) (model.StrategyOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Decision == d {
			return o, true
		}
	}
	return model.StrategyOutcome{}, false
}

// Grid is the full sweep. Rows follow Return1, columns follow Return2.
type Grid struct {
	Return1 []decimal.Decimal
	Return2 []decimal.Decimal
	Cells   [][]Result
}

func (g *Grid) Rows() int { return len(g.Return1) }
func (g *Grid) Cols() int { return len(g.Return2) }

func (g *Grid) At(row, col int) *Result {
	return &g.Cells[row][col]
}

// Each visits every cell in row-major order.
func (g *Grid) Each(fn func(row, col int, r *Result)) {
	for i := range g.Cells {
		for j := range g.Cells[i] {
			fn(i, j, &g.Cells[i][j])
		}
	}
}

package scenario

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/strategy"
	"ipo-exit-planner/internal/tax"
)

type Engine struct {
	logger     *zap.Logger
	tax        *tax.Calculator
	strategies []strategy.Strategy
}

func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:     logger,
		tax:        tax.NewCalculator(logger),
		strategies: strategy.All(),
	}
}

// Evaluate computes every strategy for one cell and selects the best.
func (e *Engine) Evaluate(in model.ScenarioInput) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	res := e.evaluate(in)
	return &res, nil
}

// Run sweeps the grid of return1 x return2 around base. Both axes are
// validated before any cell is computed.
func (e *Engine) Run(base model.ScenarioInput, axis1, axis2 Axis) (*Grid, error) {
	r1, err := axis1.Values()
	if err != nil {
		return nil, fmt.Errorf("period 1 axis: %w", err)
	}
	r2, err := axis2.Values()
	if err != nil {
		return nil, fmt.Errorf("period 2 axis: %w", err)
	}
	if len(r1) == 0 || len(r2) == 0 {
		return nil, errors.New("empty grid")
	}
	// Only the returns vary per cell and the axes are already checked.
	if err := base.WithReturns(r1[0], r2[0]).Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		Return1: r1,
		Return2: r2,
		Cells:   make([][]Result, len(r1)),
	}
	clamped := 0
	for i, a := range r1 {
		row := make([]Result, len(r2))
		for j, b := range r2 {
			row[j] = e.evaluate(base.WithReturns(a, b))
			for _, o := range row[j].Outcomes {
				if o.LossClamped {
					clamped++
				}
			}
		}
		g.Cells[i] = row
	}

	e.logger.Debug("grid evaluated",
		zap.Int("rows", len(r1)),
		zap.Int("cols", len(r2)),
		zap.Int("clamped_outcomes", clamped))
	return g, nil
}

func (e *Engine) evaluate(in model.ScenarioInput) Result {
	ctx := strategy.Context{Input: in, Tax: e.tax}

	res := Result{
		Return1Pct: in.Return1Pct,
		Return2Pct: in.Return2Pct,
		Outcomes:   make([]model.StrategyOutcome, 0, len(e.strategies)),
	}
	for idx, s := range e.strategies {
		o := s.Evaluate(ctx)
		res.Outcomes = append(res.Outcomes, o)
		// Strict comparison keeps the earlier strategy on ties.
		if idx == 0 || o.Total.GreaterThan(res.BestTotal) {
			res.Best = o.Decision
			res.BestTotal = o.Total
		}
	}
	res.BreakevenMovingCost = breakeven(res.Outcomes)

	e.logger.Debug("cell evaluated",
		zap.String("return1_pct", in.Return1Pct.String()),
		zap.String("return2_pct", in.Return2Pct.String()),
		zap.String("best", string(res.Best)),
		zap.String("total", res.BestTotal.StringFixed(2)))
	return res
}

func breakeven(outcomes []model.StrategyOutcome) decimal.Decimal {
	var bestMove, bestStay decimal.Decimal
	var haveMove, haveStay bool
	for _, o := range outcomes {
		if o.Decision.Moves() {
			v := o.TotalBeforeMoving()
			if !haveMove || v.GreaterThan(bestMove) {
				bestMove, haveMove = v, true
			}
			continue
		}
		if !haveStay || o.Total.GreaterThan(bestStay) {
			bestStay, haveStay = o.Total, true
		}
	}
	if !haveMove || !haveStay {
		return decimal.Zero
	}
	diff := bestMove.Sub(bestStay)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

package models

import "github.com/shopspring/decimal"

// Money amounts and rates are decimals, serialized as JSON strings.

// OutcomeInfo is one strategy's result for a cell
type OutcomeInfo struct {
	Strategy     string          `json:"strategy"`
	Jurisdiction string          `json:"jurisdiction"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	Interest     decimal.Decimal `json:"interest"`
	TaxableGain  decimal.Decimal `json:"taxable_gain"`
	FederalTax   decimal.Decimal `json:"federal_tax"`
	StateTax     decimal.Decimal `json:"state_tax"`
	MovingCost   decimal.Decimal `json:"moving_cost"`
	Total        decimal.Decimal `json:"total"`
	LossClamped  bool            `json:"loss_clamped,omitempty"` // loss taxed as zero
}

// CellResult is one evaluated (return1, return2) pair
type CellResult struct {
	Return1Pct          decimal.Decimal `json:"return1_pct"`
	Return2Pct          decimal.Decimal `json:"return2_pct"`
	Best                string          `json:"best"`
	BestTotal           decimal.Decimal `json:"best_total"`
	BreakevenMovingCost decimal.Decimal `json:"breakeven_moving_cost"`
	Outcomes            []OutcomeInfo   `json:"outcomes,omitempty"`
}

// ScenarioResponse represents the response from POST /api/v1/scenario
type ScenarioResponse struct {
	RunID       string `json:"run_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	CellResult
}

// GridResponse represents the response from POST /api/v1/grid.
// Best and BestTotal are indexed [return1][return2].
type GridResponse struct {
	RunID       string              `json:"run_id"`
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	Return1     []decimal.Decimal   `json:"return1"`
	Return2     []decimal.Decimal   `json:"return2"`
	Best        [][]string          `json:"best"`
	BestTotal   [][]decimal.Decimal `json:"best_total"`
	Summary     GridSummary         `json:"summary"`
	Cells       []CellResult        `json:"cells,omitempty"`
}

// GridSummary contains aggregated grid results
type GridSummary struct {
	Cells        int             `json:"cells"`
	Counts       map[string]int  `json:"counts"`
	MinBest      decimal.Decimal `json:"min_best"`
	P05Best      decimal.Decimal `json:"p05_best"`
	MeanBest     decimal.Decimal `json:"mean_best"`
	P95Best      decimal.Decimal `json:"p95_best"`
	MaxBest      decimal.Decimal `json:"max_best"`
	MoveShare    float64         `json:"move_share"`
	MaxBreakeven decimal.Decimal `json:"max_breakeven_moving_cost"`
}

// RankResponse represents the response from ranking destinations
type RankResponse struct {
	RunID    string          `json:"run_id"`
	Origin   string          `json:"origin"`
	BestStay decimal.Decimal `json:"best_stay"`
	Rankings []Ranking       `json:"rankings"`
}

// Ranking represents one ranked destination
type Ranking struct {
	Rank                int             `json:"rank"`
	Destination         string          `json:"destination"`
	Name                string          `json:"name"`
	Best                string          `json:"best"`
	BestTotal           decimal.Decimal `json:"best_total"`
	GainVsStay          decimal.Decimal `json:"gain_vs_stay"`
	BreakevenMovingCost decimal.Decimal `json:"breakeven_moving_cost"`
}

// JurisdictionInfo represents one entry of the jurisdiction table
type JurisdictionInfo struct {
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Source               string          `json:"source"` // "builtin" or the preset file name
	FederalShortTermRate decimal.Decimal `json:"federal_short_term_rate"`
	FederalLongTermRate  decimal.Decimal `json:"federal_long_term_rate"`
	WithholdingRate      decimal.Decimal `json:"withholding_rate"`
	TopStateRate         decimal.Decimal `json:"top_state_rate"`
	Brackets             []BracketInfo   `json:"brackets"`
}

// BracketInfo is one progressive bracket
type BracketInfo struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

// StrategyInfo represents information about a strategy
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Moves       bool   `json:"moves"`
	Term        string `json:"term"`     // "short-term" or "long-term"
	Priority    int    `json:"priority"` // lower wins ties
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

package models

// ScenarioParams are the inputs shared by every evaluation endpoint.
// Interest rate defaults to 4 (% per year) when omitted; origin and
// destination default to the server's configured pair.
type ScenarioParams struct {
	NumShares    float64  `json:"num_shares" form:"num_shares" binding:"required,gt=0"`
	IPOPrice     float64  `json:"ipo_price" form:"ipo_price" binding:"required,gt=0"`
	MovingCosts  float64  `json:"moving_costs,omitempty" form:"moving_costs" binding:"gte=0"`
	InterestRate *float64 `json:"interest_rate,omitempty" form:"interest_rate" binding:"omitempty,gte=0"`
	Origin       string   `json:"origin,omitempty" form:"origin"`
	Destination  string   `json:"destination,omitempty" form:"destination"`
}

// ScenarioRequest represents the request body for POST /api/v1/scenario
type ScenarioRequest struct {
	ScenarioParams
	Return1Pct *float64 `json:"return1_pct" binding:"required,gte=-100"`
	Return2Pct *float64 `json:"return2_pct" binding:"required,gte=-100"`
}

// GridRequest represents the request body for POST /api/v1/grid
type GridRequest struct {
	ScenarioParams
	MinReturn *float64 `json:"min_return,omitempty"` // default: -30
	MaxReturn *float64 `json:"max_return,omitempty"` // default: 100
	Step      *float64 `json:"step,omitempty"`       // default: 10
	Details   bool     `json:"details,omitempty"`    // include every cell's outcomes
}

// RankRequest represents the query for GET /api/v1/rank
type RankRequest struct {
	ScenarioParams
	Return1Pct *float64 `form:"return1_pct" binding:"required,gte=-100"`
	Return2Pct *float64 `form:"return2_pct" binding:"required,gte=-100"`
	Limit      int      `form:"limit,omitempty" binding:"gte=0"` // 0 = all
}

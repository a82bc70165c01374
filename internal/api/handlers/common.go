package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/api/middleware"
	"ipo-exit-planner/internal/api/models"
	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/scenario"
)

const defaultInterestRate = 4.0

func respondError(c *gin.Context, status int, code string, err error, details map[string]interface{}) {
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
			Details: details,
		},
	})
}

// newRunID tags the request with a fresh run id for logs and the response.
func newRunID(c *gin.Context) string {
	id := uuid.NewString()
	c.Set(middleware.RunIDKey, id)
	c.Header("X-Run-ID", id)
	return id
}

// buildInput resolves p against the catalog for one pair of returns.
func buildInput(cat *Catalog, p models.ScenarioParams, return1, return2 float64) (model.ScenarioInput, error) {
	originCode := p.Origin
	if originCode == "" {
		originCode = cat.Origin
	}
	destCode := p.Destination
	if destCode == "" {
		destCode = cat.Destination
	}
	origin, err := cat.Table.Get(originCode)
	if err != nil {
		return model.ScenarioInput{}, fmt.Errorf("origin: %w", err)
	}
	dest, err := cat.Table.Get(destCode)
	if err != nil {
		return model.ScenarioInput{}, fmt.Errorf("destination: %w", err)
	}

	interest := defaultInterestRate
	if p.InterestRate != nil {
		interest = *p.InterestRate
	}

	in := model.ScenarioInput{Origin: origin, Destination: dest}
	for _, f := range []struct {
		name string
		v    float64
		dst  *decimal.Decimal
	}{
		{"num_shares", p.NumShares, &in.NumShares},
		{"ipo_price", p.IPOPrice, &in.IPOPrice},
		{"return1_pct", return1, &in.Return1Pct},
		{"return2_pct", return2, &in.Return2Pct},
		{"moving_costs", p.MovingCosts, &in.MovingCost},
		{"interest_rate", interest, &in.InterestRatePct},
	} {
		if *f.dst, err = model.FiniteDecimal(f.name, f.v); err != nil {
			return model.ScenarioInput{}, err
		}
	}
	if err := in.Validate(); err != nil {
		return model.ScenarioInput{}, err
	}
	return in, nil
}

func cents(x decimal.Decimal) decimal.Decimal {
	return x.Round(2)
}

func cellResult(r *scenario.Result, withOutcomes bool) models.CellResult {
	out := models.CellResult{
		Return1Pct:          r.Return1Pct,
		Return2Pct:          r.Return2Pct,
		Best:                string(r.Best),
		BestTotal:           cents(r.BestTotal),
		BreakevenMovingCost: cents(r.BreakevenMovingCost),
	}
	if !withOutcomes {
		return out
	}
	out.Outcomes = make([]models.OutcomeInfo, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		out.Outcomes = append(out.Outcomes, models.OutcomeInfo{
			Strategy:     string(o.Decision),
			Jurisdiction: o.Jurisdiction,
			Proceeds:     cents(o.Proceeds),
			Interest:     cents(o.Interest),
			TaxableGain:  cents(o.TaxableGain),
			FederalTax:   cents(o.FederalTax),
			StateTax:     cents(o.StateTax),
			MovingCost:   cents(o.MovingCost),
			Total:        cents(o.Total),
			LossClamped:  o.LossClamped,
		})
	}
	return out
}

func invalidInput(c *gin.Context, err error, cat *Catalog) {
	respondError(c, http.StatusBadRequest, "INVALID_INPUT", err, map[string]interface{}{
		"known_jurisdictions": cat.Table.Codes(),
	})
}

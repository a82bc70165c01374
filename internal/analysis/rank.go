package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/scenario"
)

type RankedDestination struct {
	Destination model.JurisdictionProfile
	Result      *scenario.Result
}

// Gain is how much the best strategy for this destination beats staying put
// with the best stay strategy.
func (r RankedDestination) Gain(stay decimal.Decimal) decimal.Decimal {
	return r.Result.BestTotal.Sub(stay)
}

// RankDestinations evaluates base once per candidate destination and sorts
// descending by best total. Ties keep the candidates' order. The origin is
// skipped.
func RankDestinations(e *scenario.Engine, base model.ScenarioInput, candidates []model.JurisdictionProfile) ([]RankedDestination, error) {
	out := make([]RankedDestination, 0, len(candidates))
	for _, c := range candidates {
		if c.Code == base.Origin.Code {
			continue
		}
		in := base
		in.Destination = c
		res, err := e.Evaluate(in)
		if err != nil {
			return nil, err
		}
		out = append(out, RankedDestination{Destination: c, Result: res})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.BestTotal.GreaterThan(out[j].Result.BestTotal)
	})
	return out, nil
}

// BestStay is the best total achievable without moving, read from any
// ranked entry (stay outcomes do not depend on the destination).
func BestStay(ranked []RankedDestination) decimal.Decimal {
	if len(ranked) == 0 {
		return decimal.Zero
	}
	best := decimal.Zero
	first := true
	for _, o := range ranked[0].Result.Outcomes {
		if o.Decision.Moves() {
			continue
		}
		if first || o.Total.GreaterThan(best) {
			best, first = o.Total, false
		}
	}
	return best
}

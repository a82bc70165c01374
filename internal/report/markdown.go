package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/analysis"
	"ipo-exit-planner/internal/model"
	"ipo-exit-planner/internal/scenario"
	"ipo-exit-planner/internal/tax"
)

const currency = money.USD

var maxCents = decimal.NewFromInt(math.MaxInt64)

// Money formats a dollar amount for humans, e.g. "$1,234.57". Amounts whose
// cents overflow int64 are printed without grouping.
func Money(x decimal.Decimal) string {
	cents := x.Shift(2).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		if x.IsNegative() {
			return "-$" + x.Abs().StringFixed(2)
		}
		return "$" + x.StringFixed(2)
	}
	return money.New(cents.IntPart(), currency).Display()
}

func percent(frac decimal.Decimal) string {
	return frac.Shift(2).StringFixed(2) + "%"
}

var decisionText = map[model.Decision]string{
	model.DecisionSell6MStay:  "Sell at 6 months, stay",
	model.DecisionSell6MMove:  "Sell at 6 months, move",
	model.DecisionHold12MStay: "Hold to 12 months, stay",
	model.DecisionHold12MMove: "Hold to 12 months, move",
}

// Describe is the human label of a strategy.
func Describe(d model.Decision) string {
	if s, ok := decisionText[d]; ok {
		return s
	}
	return string(d)
}

// ScenarioMarkdown renders one evaluated cell.
func ScenarioMarkdown(in model.ScenarioInput, res *scenario.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# IPO exit: %s%% then %s%%\n\n", res.Return1Pct, res.Return2Pct)

	b.WriteString("| Input | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Shares granted | %s |\n", in.NumShares)
	fmt.Fprintf(&b, "| Shares after withholding | %s |\n", in.SharesAfterWithholding().StringFixed(2))
	fmt.Fprintf(&b, "| IPO price | %s |\n", Money(in.IPOPrice))
	fmt.Fprintf(&b, "| Price at 6 months | %s |\n", Money(in.PriceAt6M()))
	fmt.Fprintf(&b, "| Price at 12 months | %s |\n", Money(in.PriceAt12M()))
	fmt.Fprintf(&b, "| Interest rate | %s%% |\n", in.InterestRatePct)
	fmt.Fprintf(&b, "| Moving costs | %s |\n", Money(in.MovingCost))
	fmt.Fprintf(&b, "| Origin / destination | %s / %s |\n\n", in.Origin.Code, in.Destination.Code)

	b.WriteString("| Strategy | Where | Proceeds | Interest | Federal tax | State tax | Moving | Marginal rate | Total |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, o := range res.Outcomes {
		name := Describe(o.Decision)
		if o.Decision == res.Best {
			name = "**" + name + "**"
		}
		where := in.Origin
		if o.Decision.Moves() {
			where = in.Destination
		}
		term := tax.ShortTerm
		if o.Decision.HoldsLongTerm() {
			term = tax.LongTerm
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			name,
			o.Jurisdiction,
			Money(o.Proceeds),
			Money(o.Interest),
			Money(o.FederalTax),
			Money(o.StateTax),
			Money(o.MovingCost),
			percent(tax.MarginalRate(o.TaxableGain, term, where)),
			Money(o.Total),
		)
	}

	fmt.Fprintf(&b, "\n**Recommendation:** %s (`%s`) for %s.\n", Describe(res.Best), res.Best, Money(res.BestTotal))
	if res.BreakevenMovingCost.IsPositive() {
		fmt.Fprintf(&b, "\nMoving pays off while it costs less than %s.\n", Money(res.BreakevenMovingCost))
	} else {
		b.WriteString("\nMoving does not pay off even when free.\n")
	}
	for _, o := range res.Outcomes {
		if o.LossClamped {
			b.WriteString("\n> Losses are not taxed and not carried forward; at least one strategy sells at a loss.\n")
			break
		}
	}
	return b.String()
}

// RankMarkdown renders destinations ranked by best total.
func RankMarkdown(in model.ScenarioInput, ranked []analysis.RankedDestination) string {
	var b strings.Builder
	stay := analysis.BestStay(ranked)

	fmt.Fprintf(&b, "# Destinations from %s: %s%% then %s%%\n\n", in.Origin.Code, in.Return1Pct, in.Return2Pct)
	fmt.Fprintf(&b, "Best without moving: %s\n\n", Money(stay))
	b.WriteString("| Rank | Destination | Best strategy | Total | vs. staying | Breakeven moving cost |\n")
	b.WriteString("|---:|---|---|---:|---:|---:|\n")
	for i, r := range ranked {
		name := r.Destination.Code
		if r.Destination.Name != "" {
			name = fmt.Sprintf("%s (%s)", r.Destination.Name, r.Destination.Code)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			i+1,
			name,
			Describe(r.Result.Best),
			Money(r.Result.BestTotal),
			Money(r.Gain(stay)),
			Money(r.Result.BreakevenMovingCost),
		)
	}
	return b.String()
}

// JurisdictionsMarkdown renders the jurisdiction table.
func JurisdictionsMarkdown(profiles []model.JurisdictionProfile) string {
	var b strings.Builder
	b.WriteString("# Jurisdictions\n\n")
	b.WriteString("| Code | Name | Brackets | Top state rate | Federal ST | Federal LT | Withholding |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|\n")
	for _, p := range profiles {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s |\n",
			p.Code,
			p.Name,
			len(p.Brackets),
			percent(p.TopRate()),
			percent(p.FederalShortTermRate),
			percent(p.FederalLongTermRate),
			percent(p.WithholdingRate),
		)
	}
	return b.String()
}

package data

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"ipo-exit-planner/internal/model"
)

// Federal defaults shared by every built-in jurisdiction: top ordinary rate
// for short-term gains, top long-term rate, supplemental withholding.
var (
	FederalShortTermRate = decimal.RequireFromString("0.37")
	FederalLongTermRate  = decimal.RequireFromString("0.20")
	WithholdingRate      = decimal.RequireFromString("0.22")
)

const (
	DefaultOrigin      = "CA"
	DefaultDestination = "WA"
)

// brackets builds a schedule from threshold/rate string pairs.
func brackets(pairs ...string) []model.TaxBracket {
	if len(pairs)%2 != 0 {
		panic("brackets: odd number of values")
	}
	out := make([]model.TaxBracket, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.TaxBracket{
			Threshold: decimal.RequireFromString(pairs[i]),
			Rate:      decimal.RequireFromString(pairs[i+1]),
		})
	}
	return out
}

func profile(code, name string, b []model.TaxBracket) model.JurisdictionProfile {
	return model.JurisdictionProfile{
		Code:                 code,
		Name:                 name,
		Brackets:             b,
		FederalShortTermRate: FederalShortTermRate,
		FederalLongTermRate:  FederalLongTermRate,
		WithholdingRate:      WithholdingRate,
	}
}

// DefaultJurisdictions is the built-in table, single filer, 2024 schedules.
// The leading 0% bracket stands in for the state standard deduction, so
// thresholds are in gross-gain dollars.
func DefaultJurisdictions() []model.JurisdictionProfile {
	return []model.JurisdictionProfile{
		profile("CA", "California", brackets(
			"0", "0",
			"5540", "0.01",
			"16296", "0.02",
			"31039", "0.04",
			"45785", "0.06",
			"61406", "0.08",
			"76146", "0.093",
			"366199", "0.103",
			"438327", "0.113",
			"726854", "0.123",
			"1005540", "0.133",
		)),
		profile("NY", "New York", brackets(
			"0", "0",
			"8000", "0.04",
			"16500", "0.045",
			"19700", "0.0525",
			"21900", "0.055",
			"88650", "0.06",
			"223400", "0.0685",
			"1085550", "0.0965",
			"5008000", "0.103",
			"25008000", "0.109",
		)),
		profile("OR", "Oregon", brackets(
			"0", "0",
			"2745", "0.0475",
			"7045", "0.0675",
			"13495", "0.0875",
			"127745", "0.099",
		)),
		profile("WA", "Washington", nil),
		profile("TX", "Texas", nil),
		profile("NV", "Nevada", nil),
		profile("FL", "Florida", nil),
	}
}

// Table indexes jurisdictions by code (case-insensitive).
type Table struct {
	byCode map[string]model.JurisdictionProfile
}

func NewTable(profiles []model.JurisdictionProfile) (*Table, error) {
	t := &Table{byCode: make(map[string]model.JurisdictionProfile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		key := normalize(p.Code)
		if _, dup := t.byCode[key]; dup {
			return nil, fmt.Errorf("duplicate jurisdiction %q", p.Code)
		}
		p.Code = key
		t.byCode[key] = p
	}
	return t, nil
}

// DefaultTable wraps DefaultJurisdictions.
func DefaultTable() *Table {
	t, err := NewTable(DefaultJurisdictions())
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Get(code string) (model.JurisdictionProfile, error) {
	p, ok := t.byCode[normalize(code)]
	if !ok {
		return model.JurisdictionProfile{}, fmt.Errorf("unknown jurisdiction %q (known: %s)", code, strings.Join(t.Codes(), ", "))
	}
	return p, nil
}

func (t *Table) Has(code string) bool {
	_, ok := t.byCode[normalize(code)]
	return ok
}

// Codes returns every code in sorted order.
func (t *Table) Codes() []string {
	out := make([]string, 0, len(t.byCode))
	for k := range t.byCode {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// All returns every profile sorted by code.
func (t *Table) All() []model.JurisdictionProfile {
	out := make([]model.JurisdictionProfile, 0, len(t.byCode))
	for _, k := range t.Codes() {
		out = append(out, t.byCode[k])
	}
	return out
}

// Len is the number of jurisdictions in the table.
func (t *Table) Len() int { return len(t.byCode) }

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

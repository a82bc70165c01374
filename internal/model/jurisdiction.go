package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxBracket is one step of a progressive schedule.
// A bracket spans [Threshold, next Threshold); the last bracket is open-ended.
// Units:
// - Threshold: $ of taxable income
// - Rate: marginal fraction 0..1
type TaxBracket struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// JurisdictionProfile bundles the state schedule with the federal rates that
// apply to a taxpayer resident there.
type JurisdictionProfile struct {
	Code string
	Name string

	// Brackets is the state income tax schedule. It applies to both short- and
	// long-term gains. An empty schedule means no state income tax.
	Brackets []TaxBracket

	FederalShortTermRate decimal.Decimal
	FederalLongTermRate  decimal.Decimal

	// WithholdingRate is the share of vested shares withheld for ordinary
	// income tax at the IPO.
	WithholdingRate decimal.Decimal
}

func (j JurisdictionProfile) Validate() error {
	if strings.TrimSpace(j.Code) == "" {
		return errors.New("jurisdiction code is required")
	}
	if err := checkRate("federal short-term rate", j.FederalShortTermRate); err != nil {
		return fmt.Errorf("jurisdiction %s: %w", j.Code, err)
	}
	if err := checkRate("federal long-term rate", j.FederalLongTermRate); err != nil {
		return fmt.Errorf("jurisdiction %s: %w", j.Code, err)
	}
	if err := checkRate("withholding rate", j.WithholdingRate); err != nil {
		return fmt.Errorf("jurisdiction %s: %w", j.Code, err)
	}
	if err := ValidateBrackets(j.Brackets); err != nil {
		return fmt.Errorf("jurisdiction %s: %w", j.Code, err)
	}
	return nil
}

// ValidateBrackets checks that a schedule starts at 0, that thresholds are
// strictly increasing and that every rate is in [0, 1].
func ValidateBrackets(brackets []TaxBracket) error {
	for i, b := range brackets {
		if i == 0 && !b.Threshold.IsZero() {
			return fmt.Errorf("first bracket must start at 0, got %s", b.Threshold)
		}
		if i > 0 && !b.Threshold.GreaterThan(brackets[i-1].Threshold) {
			return fmt.Errorf("bracket %d threshold %s must be greater than %s", i, b.Threshold, brackets[i-1].Threshold)
		}
		if err := checkRate(fmt.Sprintf("bracket %d rate", i), b.Rate); err != nil {
			return err
		}
	}
	return nil
}

// TopRate returns the marginal rate of the open-ended bracket, or zero when
// the schedule is empty.
func (j JurisdictionProfile) TopRate() decimal.Decimal {
	if len(j.Brackets) == 0 {
		return decimal.Zero
	}
	return j.Brackets[len(j.Brackets)-1].Rate
}

func checkRate(name string, r decimal.Decimal) error {
	if r.IsNegative() || r.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be in [0, 1], got %s", name, r)
	}
	return nil
}

package scenario

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAxisPoints bounds a single axis so a typo in --return-step cannot
// explode the grid.
const MaxAxisPoints = 1001

// Axis is an inclusive range of return percentages walked in fixed steps.
// Max is included when it lies on the step lattice.
type Axis struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Step decimal.Decimal
}

// DefaultAxis spans -30% to +100% in 10% steps.
func DefaultAxis() Axis {
	return Axis{
		Min:  decimal.NewFromInt(-30),
		Max:  decimal.NewFromInt(100),
		Step: decimal.NewFromInt(10),
	}
}

func (a Axis) Validate() error {
	if !a.Step.IsPositive() {
		return errors.New("return step must be > 0")
	}
	if a.Min.GreaterThan(a.Max) {
		return fmt.Errorf("min return %s%% must be <= max return %s%%", a.Min, a.Max)
	}
	if a.Min.LessThan(decimal.NewFromInt(-100)) {
		return fmt.Errorf("min return must be >= -100%%, got %s%%", a.Min)
	}
	if steps := a.steps(); steps.GreaterThan(decimal.NewFromInt(MaxAxisPoints - 1)) {
		return fmt.Errorf("axis has %s points, limit is %d", steps.Add(decimal.NewFromInt(1)), MaxAxisPoints)
	}
	return nil
}

// steps is the number of whole steps from Min to Max.
func (a Axis) steps() decimal.Decimal {
	return a.Max.Sub(a.Min).Div(a.Step).Floor()
}

// Len is the number of points on the axis, or 0 if it does not validate.
func (a Axis) Len() int {
	if a.Validate() != nil {
		return 0
	}
	return int(a.steps().IntPart()) + 1
}

// Values lists the axis points from Min upwards.
func (a Axis) Values() ([]decimal.Decimal, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	n := a.Len()
	out := make([]decimal.Decimal, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, a.Min.Add(a.Step.Mul(decimal.NewFromInt(int64(i)))))
	}
	return out, nil
}

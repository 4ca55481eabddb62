package transform

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

var maxRatePercent = decimal.NewFromInt(25)

// SetInflation changes the inflation rate applied to desired spending.
type SetInflation struct {
	Rate decimal.Decimal // percent, e.g. 3.5
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Set inflation to %s%%", si.Rate.StringFixed(1))
}

func (si *SetInflation) Validate(base *domain.Plan) error {
	if si.Rate.IsNegative() || si.Rate.GreaterThan(maxRatePercent) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("inflation rate must be between 0 and 25, got %s", si.Rate.String()), nil)
	}
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base plan cannot be nil", nil)
	}
	return nil
}

func (si *SetInflation) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.InflationRate = si.Rate
	return modified, nil
}

// SetGrowth changes the investment growth rate on remaining savings.
type SetGrowth struct {
	Rate decimal.Decimal // percent
}

func (sg *SetGrowth) Name() string {
	return "set_growth"
}

func (sg *SetGrowth) Description() string {
	return fmt.Sprintf("Set investment growth to %s%%", sg.Rate.StringFixed(1))
}

func (sg *SetGrowth) Validate(base *domain.Plan) error {
	if sg.Rate.IsNegative() || sg.Rate.GreaterThan(maxRatePercent) {
		return NewTransformError(sg.Name(), "validate", fmt.Sprintf("growth rate must be between 0 and 25, got %s", sg.Rate.String()), nil)
	}
	if base == nil {
		return NewTransformError(sg.Name(), "validate", "base plan cannot be nil", nil)
	}
	return nil
}

func (sg *SetGrowth) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.InvestmentGrowthRate = sg.Rate
	return modified, nil
}

// ShiftRates moves inflation and growth by fixed amounts of percentage points.
// Results are floored at zero.
type ShiftRates struct {
	InflationDelta decimal.Decimal
	GrowthDelta    decimal.Decimal
}

func (sr *ShiftRates) Name() string {
	return "shift_rates"
}

func (sr *ShiftRates) Description() string {
	return fmt.Sprintf("Shift inflation by %s pts and growth by %s pts", signed(sr.InflationDelta), signed(sr.GrowthDelta))
}

func (sr *ShiftRates) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base plan cannot be nil", nil)
	}
	return nil
}

func (sr *ShiftRates) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.InflationRate = decimal.Max(decimal.Zero, modified.InflationRate.Add(sr.InflationDelta))
	modified.InvestmentGrowthRate = decimal.Max(decimal.Zero, modified.InvestmentGrowthRate.Add(sr.GrowthDelta))
	return modified, nil
}

func signed(v decimal.Decimal) string {
	if v.IsNegative() {
		return v.StringFixed(1)
	}
	return "+" + v.StringFixed(1)
}

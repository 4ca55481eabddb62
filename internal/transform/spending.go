package transform

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustSpending changes desired monthly income, either by a percentage or
// to an absolute monthly amount.
type AdjustSpending struct {
	Who     Who
	Percent *decimal.Decimal // -10 means spend 10% less
	Monthly *decimal.Decimal // absolute monthly amount in today's money
}

func (as *AdjustSpending) Name() string {
	return "adjust_spending"
}

func (as *AdjustSpending) Description() string {
	if as.Monthly != nil {
		return fmt.Sprintf("Set %s monthly spending to %s", as.Who, as.Monthly.StringFixed(0))
	}
	if as.Percent != nil {
		return fmt.Sprintf("Change %s monthly spending by %s%%", as.Who, signed(*as.Percent))
	}
	return "Adjust spending"
}

func (as *AdjustSpending) Validate(base *domain.Plan) error {
	if (as.Percent == nil) == (as.Monthly == nil) {
		return NewTransformError(as.Name(), "validate", "exactly one of percent or monthly is required", nil)
	}
	if as.Percent != nil && as.Percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("percent must be above -100, got %s", as.Percent.String()), nil)
	}
	if as.Monthly != nil && as.Monthly.IsNegative() {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("monthly amount cannot be negative, got %s", as.Monthly.String()), nil)
	}
	return checkWho(as.Name(), as.Who, base)
}

func (as *AdjustSpending) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()

	adjust := func(current decimal.Decimal) decimal.Decimal {
		if as.Monthly != nil {
			return *as.Monthly
		}
		factor := decimal.NewFromInt(1).Add(as.Percent.Div(decimal.NewFromInt(100)))
		return current.Mul(factor)
	}

	if as.Who.includesSelf() {
		modified.Self.DesiredMonthlyIncome = adjust(modified.Self.DesiredMonthlyIncome)
	}
	if as.Who.includesPartner() && modified.Partner != nil {
		modified.Partner.DesiredMonthlyIncome = adjust(modified.Partner.DesiredMonthlyIncome)
	}

	return modified, nil
}

// ScaleSavings changes the starting lump sum by a percentage.
type ScaleSavings struct {
	Who     Who
	Percent decimal.Decimal
}

func (ss *ScaleSavings) Name() string {
	return "scale_savings"
}

func (ss *ScaleSavings) Description() string {
	return fmt.Sprintf("Change %s savings by %s%%", ss.Who, signed(ss.Percent))
}

func (ss *ScaleSavings) Validate(base *domain.Plan) error {
	if ss.Percent.LessThan(decimal.NewFromInt(-100)) {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("percent cannot be below -100, got %s", ss.Percent.String()), nil)
	}
	return checkWho(ss.Name(), ss.Who, base)
}

func (ss *ScaleSavings) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	factor := decimal.NewFromInt(1).Add(ss.Percent.Div(decimal.NewFromInt(100)))

	if ss.Who.includesSelf() {
		modified.Self.LumpSumSavings = modified.Self.LumpSumSavings.Mul(factor)
	}
	if ss.Who.includesPartner() && modified.Partner != nil {
		modified.Partner.LumpSumSavings = modified.Partner.LumpSumSavings.Mul(factor)
	}
	return modified, nil
}

package output

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
)

// Assumption is one labelled input echoed in reports
type Assumption struct {
	Label string
	Value string
}

// PlanAssumptions lists the plan inputs a report restates.
func PlanAssumptions(plan *domain.Plan) []Assumption {
	if plan == nil {
		return nil
	}
	assumptions := []Assumption{
		{"Current Age", fmt.Sprintf("%d years", plan.Self.CurrentAge)},
		{"Life Expectancy", fmt.Sprintf("%d years", plan.Self.LifeExpectancy)},
		{"Monthly Income Needed", FormatWholeCurrency(plan.Self.DesiredMonthlyIncome)},
		{"Inflation Rate", FormatRate(plan.InflationRate)},
		{"Investment Growth", FormatRate(plan.InvestmentGrowthRate)},
		{"Initial Savings", FormatWholeCurrency(plan.Self.LumpSumSavings)},
	}
	if p := plan.Partner; p != nil {
		assumptions = append(assumptions,
			Assumption{"Partner Age", fmt.Sprintf("%d years", p.CurrentAge)},
			Assumption{"Partner Life Expectancy", fmt.Sprintf("%d years", p.LifeExpectancy)},
			Assumption{"Partner Monthly Income Needed", FormatWholeCurrency(p.DesiredMonthlyIncome)},
			Assumption{"Partner Savings", FormatWholeCurrency(p.LumpSumSavings)},
		)
	}
	return assumptions
}

// ImportantNotes are the modelling caveats printed at the end of detailed reports.
var ImportantNotes = []string{
	"Inflation is applied only to your monthly expenses, not to income sources or one-time payments",
	"Income sources and one-time payments are fixed in today's purchasing power",
	"This analysis assumes a consistent investment growth rate",
	"Actual results may vary based on market conditions and personal circumstances",
	"Consider consulting with a financial advisor for personalized advice",
}

// KeyFinding returns the headline sentence for a result and whether it is a warning.
func KeyFinding(result *domain.ScenarioResult) (string, bool) {
	if result == nil {
		return "", false
	}
	if result.MoneyRunsOutAge != nil {
		return fmt.Sprintf("Your funds are projected to last until age %d.", *result.MoneyRunsOutAge), !result.IsSuccessful()
	}
	return "Your funds are projected to last throughout your entire retirement.", false
}

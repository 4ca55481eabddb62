package compare

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single plan run with its key metrics
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description"`
	Result       *domain.ScenarioResult `json:"-"`

	// Key Metrics
	MoneyRunsOutAge  *int            `json:"moneyRunsOutAge"`
	MoneyRunsOutYear *int            `json:"moneyRunsOutYear"`
	LifeExpectancy   int             `json:"lifeExpectancy"`
	RunwayYears      int             `json:"runwayYears"`
	FinalBalance     decimal.Decimal `json:"finalBalance"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalGrowth      decimal.Decimal `json:"totalGrowth"`
	Successful       bool            `json:"successful"`

	// Comparison to Base
	RunwayYearsDiff     int             `json:"runwayYearsDiff"`
	FinalBalanceDiff    decimal.Decimal `json:"finalBalanceDiff"`
	FinalBalancePctDiff decimal.Decimal `json:"finalBalancePctDiff"`
	ExpensesDiff        decimal.Decimal `json:"expensesDiff"`
}

// ComparisonSet represents a collection of plan comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from projection results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection result
func (mc *MetricsCalculator) CalculateMetrics(name, description string, result *domain.ScenarioResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:     name,
		Description:      description,
		Result:           result,
		MoneyRunsOutAge:  result.MoneyRunsOutAge,
		MoneyRunsOutYear: result.MoneyRunsOutYear,
		LifeExpectancy:   result.LifeExpectancy,
		RunwayYears:      result.RunwayYears(),
		FinalBalance:     result.FinalSavings,
		TotalExpenses:    result.Summary.TotalExpenses,
		TotalIncome:      result.Summary.TotalIncomeReceived,
		TotalGrowth:      result.Summary.TotalGrowth,
		Successful:       result.IsSuccessful(),
	}
}

// CalculateComparison computes deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.RunwayYearsDiff = scenario.RunwayYears - base.RunwayYears
	scenario.FinalBalanceDiff = scenario.FinalBalance.Sub(base.FinalBalance)
	scenario.ExpensesDiff = scenario.TotalExpenses.Sub(base.TotalExpenses)

	if !base.FinalBalance.IsZero() {
		scenario.FinalBalancePctDiff = scenario.FinalBalanceDiff.
			Div(base.FinalBalance.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil {
		return recommendations
	}

	base := compSet.BaseResult
	if !base.Successful {
		recommendations = append(recommendations,
			fmt.Sprintf("Shortfall: savings run out at age %d, %d years before life expectancy",
				*base.MoneyRunsOutAge, base.LifeExpectancy-*base.MoneyRunsOutAge))
	}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestBalance := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalBalance.GreaterThan(bestBalance.FinalBalance) {
			bestBalance = alt
		}
	}

	if bestBalance != base {
		diff := bestBalance.FinalBalance.Sub(base.FinalBalance)
		recommendations = append(recommendations,
			"Best Final Balance: "+bestBalance.ScenarioName+" ends with $"+diff.StringFixed(0)+
				" more than the base plan")
	}

	longest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.RunwayYears > longest.RunwayYears {
			longest = alt
		}
	}

	if longest != base {
		recommendations = append(recommendations,
			"Longest Runway: "+longest.ScenarioName+" extends savings by "+
				fmt.Sprintf("%d years", longest.RunwayYears-base.RunwayYears))
	}

	for _, alt := range compSet.AlternativeResults {
		if base.Successful && !alt.Successful {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: under %s savings run out at age %d", alt.ScenarioName, *alt.MoneyRunsOutAge))
		}
	}

	return recommendations
}

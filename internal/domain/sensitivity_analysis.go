package domain

import (
	"github.com/shopspring/decimal"
)

// Risk levels reported by sensitivity analysis
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Names of the plan inputs a sensitivity sweep can vary
const (
	ParamInflationRate        = "inflation_rate"
	ParamGrowthRate           = "growth_rate"
	ParamDesiredMonthlyIncome = "desired_monthly_income"
	ParamLumpSum              = "lump_sum"
	ParamLifeExpectancy       = "life_expectancy"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "currency", "years"
	Description string          `yaml:"description" json:"description"`
}

// ParameterSensitivityAnalysis is the outcome of a one-dimensional sweep
type ParameterSensitivityAnalysis struct {
	PlanName   string               `json:"planName"`
	Parameter  SensitivityParameter `json:"parameter"`
	BaseResult SensitivityMetrics   `json:"baseResult"`
	Results    []SensitivityResult  `json:"results"`
	Summary    SensitivitySummary   `json:"summary"`
}

// SensitivityResult is one point of a sweep
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameterValues"`
	KeyMetrics      SensitivityMetrics         `json:"keyMetrics"`
}

// SensitivityMetrics are the outcome figures tracked per sweep point
type SensitivityMetrics struct {
	MoneyRunsOutAge       *int            `json:"moneyRunsOutAge"`
	RunwayYears           int             `json:"runwayYears"`
	FinalBalance          decimal.Decimal `json:"finalBalance"`
	Successful            bool            `json:"successful"`
	RunwayYearsChange     int             `json:"runwayYearsChange"`
	FinalBalanceChange    decimal.Decimal `json:"finalBalanceChange"`
	FinalBalanceChangePct decimal.Decimal `json:"finalBalanceChangePct"`
}

// SensitivitySummary provides the overall verdict of a sweep
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	DepletedPoints         int                        `json:"depletedPoints"`
	TotalPoints            int                        `json:"totalPoints"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"`
}

// SensitivityMatrix represents a 2D parameter sweep
type SensitivityMatrix struct {
	Parameter1    SensitivityParameter  `json:"parameter1"`
	Parameter2    SensitivityParameter  `json:"parameter2"`
	MatrixResults [][]SensitivityResult `json:"matrixResults"`
	Summary       SensitivitySummary    `json:"summary"`
}

// CalculateSensitivityScore measures how far a point moved from the base run.
// Runway years dominate; balance change contributes per 10% moved.
func (sm *SensitivityMetrics) CalculateSensitivityScore() decimal.Decimal {
	runway := decimal.NewFromInt(int64(sm.RunwayYearsChange)).Abs()
	balance := sm.FinalBalanceChangePct.Abs().Div(decimal.NewFromInt(10))
	return runway.Mul(decimal.NewFromFloat(0.7)).Add(balance.Mul(decimal.NewFromFloat(0.3)))
}

// DetermineRiskLevel grades the sweep by the share of points that run dry
// before life expectancy.
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	if ss.TotalPoints == 0 || ss.DepletedPoints == 0 {
		return RiskLow
	}
	share := decimal.NewFromInt(int64(ss.DepletedPoints)).Div(decimal.NewFromInt(int64(ss.TotalPoints)))
	switch {
	case share.LessThanOrEqual(decimal.NewFromFloat(0.25)):
		return RiskMedium
	case share.LessThanOrEqual(decimal.NewFromFloat(0.5)):
		return RiskHigh
	default:
		return RiskCritical
	}
}

// GenerateRecommendations generates recommendations based on sensitivity analysis
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	switch ss.DetermineRiskLevel() {
	case RiskLow:
		recommendations = append(recommendations, "Savings last through life expectancy across the whole range")
	case RiskMedium:
		recommendations = append(recommendations, "Plan holds for most values; monitor this assumption yearly")
	case RiskHigh:
		recommendations = append(recommendations, "Plan depends heavily on this assumption")
		recommendations = append(recommendations, "Stress test with the pessimistic end of the range")
	case RiskCritical:
		recommendations = append(recommendations, "⚠️ Savings run out for most values in the range")
		recommendations = append(recommendations, "Reduce spending or add income before relying on this plan")
	}

	switch ss.MostSensitiveParameter {
	case ParamInflationRate:
		recommendations = append(recommendations, "Consider inflation-protected investments")
	case ParamGrowthRate:
		recommendations = append(recommendations, "Review asset allocation and expected returns")
	case ParamDesiredMonthlyIncome:
		recommendations = append(recommendations, "Spending level is the main lever; build a flexible budget")
	case ParamLumpSum:
		recommendations = append(recommendations, "Additional savings before retirement extend the runway most")
	case ParamLifeExpectancy:
		recommendations = append(recommendations, "Plan for longevity; consider an annuity for late-life income")
	}

	return recommendations
}

// Common sensitivity parameters, in percent for rates
var (
	InflationRateParam = SensitivityParameter{
		Name:        ParamInflationRate,
		MinValue:    decimal.NewFromFloat(1.0),
		MaxValue:    decimal.NewFromFloat(5.0),
		Steps:       5,
		BaseValue:   decimal.NewFromFloat(3.0),
		Unit:        "percent",
		Description: "Annual inflation applied to desired spending",
	}

	GrowthRateParam = SensitivityParameter{
		Name:        ParamGrowthRate,
		MinValue:    decimal.NewFromFloat(2.0),
		MaxValue:    decimal.NewFromFloat(8.0),
		Steps:       7,
		BaseValue:   decimal.NewFromFloat(5.0),
		Unit:        "percent",
		Description: "Annual investment growth on remaining savings",
	}

	DesiredMonthlyIncomeParam = SensitivityParameter{
		Name:        ParamDesiredMonthlyIncome,
		MinValue:    decimal.NewFromInt(2000),
		MaxValue:    decimal.NewFromInt(5000),
		Steps:       7,
		BaseValue:   decimal.NewFromInt(3500),
		Unit:        "currency",
		Description: "Monthly spending need in today's money",
	}

	LumpSumParam = SensitivityParameter{
		Name:        ParamLumpSum,
		MinValue:    decimal.NewFromInt(250000),
		MaxValue:    decimal.NewFromInt(1000000),
		Steps:       4,
		BaseValue:   decimal.NewFromInt(500000),
		Unit:        "currency",
		Description: "Savings available at the start of the projection",
	}

	LifeExpectancyParam = SensitivityParameter{
		Name:        ParamLifeExpectancy,
		MinValue:    decimal.NewFromInt(80),
		MaxValue:    decimal.NewFromInt(100),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(90),
		Unit:        "years",
		Description: "Age to which savings must last",
	}
)

// GetCommonParameters returns a list of common sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		InflationRateParam,
		GrowthRateParam,
		DesiredMonthlyIncomeParam,
		LumpSumParam,
		LifeExpectancyParam,
	}
}

// GetParameterByName looks up one of the common parameters
func GetParameterByName(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}

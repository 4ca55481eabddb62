package calculation

import (
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{
		calculationEngine: NewCalculationEngine(),
	}
}

// NewSensitivityAnalyzerWithEngine creates an analyzer sharing an existing engine
func NewSensitivityAnalyzerWithEngine(engine *CalculationEngine) *SensitivityAnalyzer {
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeSingleParameter sweeps one plan input across its range and reports
// how the runway responds.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(plan *domain.Plan, parameter domain.SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	if err := validateParameter(parameter); err != nil {
		return nil, err
	}

	base := sa.metricsFor(sa.calculationEngine.RunPlan(plan), nil)

	values := sa.generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(values))

	for _, value := range values {
		modified, err := ApplySensitivityValue(plan, parameter.Name, value)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s=%s: %w", parameter.Name, value.String(), err)
		}

		metrics := sa.metricsFor(sa.calculationEngine.RunPlan(modified), &base)
		results = append(results, domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{parameter.Name: value},
			KeyMetrics:      metrics,
		})
	}

	summary := sa.calculateSensitivitySummary(results, parameter.Name)

	return &domain.ParameterSensitivityAnalysis{
		PlanName:   plan.Name,
		Parameter:  parameter,
		BaseResult: base,
		Results:    results,
		Summary:    summary,
	}, nil
}

// AnalyzeParameterMatrix performs a 2D parameter matrix analysis
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(plan *domain.Plan, param1, param2 domain.SensitivityParameter) (*domain.SensitivityMatrix, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	if param1.Name == param2.Name {
		return nil, fmt.Errorf("matrix parameters must differ, got %s twice", param1.Name)
	}
	for _, p := range []domain.SensitivityParameter{param1, param2} {
		if err := validateParameter(p); err != nil {
			return nil, err
		}
	}

	base := sa.metricsFor(sa.calculationEngine.RunPlan(plan), nil)

	values1 := sa.generateParameterValues(param1)
	values2 := sa.generateParameterValues(param2)

	matrixResults := make([][]domain.SensitivityResult, len(values1))
	var flat []domain.SensitivityResult

	for i, value1 := range values1 {
		matrixResults[i] = make([]domain.SensitivityResult, len(values2))

		for j, value2 := range values2 {
			modified, err := ApplySensitivityValue(plan, param1.Name, value1)
			if err == nil {
				modified, err = ApplySensitivityValue(modified, param2.Name, value2)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to apply %s=%s, %s=%s: %w",
					param1.Name, value1.String(), param2.Name, value2.String(), err)
			}

			result := domain.SensitivityResult{
				ParameterValues: map[string]decimal.Decimal{
					param1.Name: value1,
					param2.Name: value2,
				},
				KeyMetrics: sa.metricsFor(sa.calculationEngine.RunPlan(modified), &base),
			}
			matrixResults[i][j] = result
			flat = append(flat, result)
		}
	}

	summary := domain.SensitivitySummary{
		SensitivityScores: map[string]decimal.Decimal{
			param1.Name: axisSpread(matrixResults, true),
			param2.Name: axisSpread(matrixResults, false),
		},
		TotalPoints: len(flat),
	}
	for _, r := range flat {
		if !r.KeyMetrics.Successful {
			summary.DepletedPoints++
		}
	}
	summary.MostSensitiveParameter = mostSensitive(summary.SensitivityScores)
	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()

	return &domain.SensitivityMatrix{
		Parameter1:    param1,
		Parameter2:    param2,
		MatrixResults: matrixResults,
		Summary:       summary,
	}, nil
}

// generateParameterValues generates values for a parameter sweep
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}

	return values
}

// ApplySensitivityValue returns a copy of plan with the named input replaced.
// Rates are percents. Life expectancy moves the partner by the same delta.
func ApplySensitivityValue(plan *domain.Plan, name string, value decimal.Decimal) (*domain.Plan, error) {
	modified := plan.DeepCopy()

	switch name {
	case domain.ParamInflationRate:
		modified.InflationRate = value
	case domain.ParamGrowthRate:
		modified.InvestmentGrowthRate = value
	case domain.ParamDesiredMonthlyIncome:
		modified.Self.DesiredMonthlyIncome = value
	case domain.ParamLumpSum:
		modified.Self.LumpSumSavings = value
	case domain.ParamLifeExpectancy:
		le := int(value.IntPart())
		if modified.Partner != nil {
			modified.Partner.LifeExpectancy += le - modified.Self.LifeExpectancy
		}
		modified.Self.LifeExpectancy = le
	default:
		return nil, fmt.Errorf("unknown sensitivity parameter %q", name)
	}

	return modified, nil
}

func validateParameter(p domain.SensitivityParameter) error {
	if p.Name == "" {
		return fmt.Errorf("sensitivity parameter name is required")
	}
	if p.MaxValue.LessThan(p.MinValue) {
		return fmt.Errorf("parameter %s: max value %s is below min value %s", p.Name, p.MaxValue.String(), p.MinValue.String())
	}
	return nil
}

// metricsFor extracts the tracked figures from a run, with deltas against base when given
func (sa *SensitivityAnalyzer) metricsFor(result *domain.ScenarioResult, base *domain.SensitivityMetrics) domain.SensitivityMetrics {
	m := domain.SensitivityMetrics{
		MoneyRunsOutAge: result.MoneyRunsOutAge,
		RunwayYears:     result.RunwayYears(),
		FinalBalance:    result.Summary.FinalBalance,
		Successful:      result.IsSuccessful(),
	}
	if base == nil {
		return m
	}

	m.RunwayYearsChange = m.RunwayYears - base.RunwayYears
	m.FinalBalanceChange = m.FinalBalance.Sub(base.FinalBalance)
	if !base.FinalBalance.IsZero() {
		m.FinalBalanceChangePct = m.FinalBalanceChange.Div(base.FinalBalance).Mul(hundred)
	}
	return m
}

// calculateSensitivitySummary calculates overall sensitivity summary
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(results []domain.SensitivityResult, paramName string) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{
		SensitivityScores: map[string]decimal.Decimal{},
		TotalPoints:       len(results),
	}
	if len(results) == 0 {
		summary.RiskLevel = summary.DetermineRiskLevel()
		return summary
	}

	maxScore := decimal.Zero
	for _, r := range results {
		if !r.KeyMetrics.Successful {
			summary.DepletedPoints++
		}
		if score := r.KeyMetrics.CalculateSensitivityScore(); score.GreaterThan(maxScore) {
			maxScore = score
		}
	}
	summary.SensitivityScores[paramName] = maxScore
	summary.MostSensitiveParameter = mostSensitive(summary.SensitivityScores)
	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()

	return summary
}

// axisSpread averages the runway range seen when moving along one axis of the matrix
func axisSpread(matrix [][]domain.SensitivityResult, rows bool) decimal.Decimal {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return decimal.Zero
	}

	outer, inner := len(matrix[0]), len(matrix)
	if !rows {
		outer, inner = len(matrix), len(matrix[0])
	}

	total := 0
	for o := 0; o < outer; o++ {
		lo, hi := 0, 0
		for i := 0; i < inner; i++ {
			var cell domain.SensitivityResult
			if rows {
				cell = matrix[i][o]
			} else {
				cell = matrix[o][i]
			}
			years := cell.KeyMetrics.RunwayYears
			if i == 0 || years < lo {
				lo = years
			}
			if i == 0 || years > hi {
				hi = years
			}
		}
		total += hi - lo
	}
	return decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(outer)))
}

func mostSensitive(scores map[string]decimal.Decimal) string {
	name := ""
	best := decimal.Zero
	for param, score := range scores {
		if score.GreaterThan(best) || (score.Equal(best) && name != "" && param < name) {
			name = param
			best = score
		}
	}
	return name
}

package calculation

import (
	"testing"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityAnalyzer_GenerateParameterValues(t *testing.T) {
	sa := NewSensitivityAnalyzer()

	values := sa.generateParameterValues(domain.SensitivityParameter{
		Name: domain.ParamGrowthRate, MinValue: d(2), MaxValue: d(8), Steps: 4,
	})

	require.Len(t, values, 4)
	assert.True(t, values[0].Equal(d(2)))
	assert.True(t, values[1].Equal(d(4)))
	assert.True(t, values[3].Equal(d(8)))

	single := sa.generateParameterValues(domain.SensitivityParameter{BaseValue: d(5), Steps: 1})
	assert.Equal(t, []decimal.Decimal{d(5)}, single)
}

func TestSensitivityAnalyzer_SpendingSweep(t *testing.T) {
	plan := scenarioA()
	plan.Self.DesiredMonthlyIncome = d(1000)

	analysis, err := NewSensitivityAnalyzer().AnalyzeSingleParameter(plan, domain.SensitivityParameter{
		Name: domain.ParamDesiredMonthlyIncome, MinValue: d(1000), MaxValue: d(4000), Steps: 4,
	})
	require.NoError(t, err)

	require.Len(t, analysis.Results, 4)
	assert.True(t, analysis.BaseResult.Successful)
	assert.True(t, analysis.Results[0].KeyMetrics.Successful)
	assert.Equal(t, 0, analysis.Results[0].KeyMetrics.RunwayYearsChange)
	assert.False(t, analysis.Results[3].KeyMetrics.Successful)
	assert.Negative(t, analysis.Results[3].KeyMetrics.RunwayYearsChange)

	for i := 1; i < len(analysis.Results); i++ {
		assert.LessOrEqual(t, analysis.Results[i].KeyMetrics.RunwayYears, analysis.Results[i-1].KeyMetrics.RunwayYears)
	}

	assert.Equal(t, domain.ParamDesiredMonthlyIncome, analysis.Summary.MostSensitiveParameter)
	assert.Equal(t, 4, analysis.Summary.TotalPoints)
	assert.Positive(t, analysis.Summary.DepletedPoints)
	assert.NotEqual(t, domain.RiskLow, analysis.Summary.RiskLevel)
	assert.NotEmpty(t, analysis.Summary.Recommendations)
}

func TestSensitivityAnalyzer_UnknownParameter(t *testing.T) {
	_, err := NewSensitivityAnalyzer().AnalyzeSingleParameter(scenarioA(), domain.SensitivityParameter{
		Name: "tax_rate", MinValue: d(1), MaxValue: d(2), Steps: 2,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sensitivity parameter")
}

func TestSensitivityAnalyzer_InvalidRange(t *testing.T) {
	_, err := NewSensitivityAnalyzer().AnalyzeSingleParameter(scenarioA(), domain.SensitivityParameter{
		Name: domain.ParamGrowthRate, MinValue: d(5), MaxValue: d(1), Steps: 2,
	})
	assert.Error(t, err)

	_, err = NewSensitivityAnalyzer().AnalyzeSingleParameter(nil, domain.GrowthRateParam)
	assert.Error(t, err)
}

func TestApplySensitivityValue(t *testing.T) {
	plan := scenarioA()
	plan.Partner = &domain.PartnerPlan{Person: domain.Person{CurrentAge: 44, LifeExpectancy: 88}}

	modified, err := ApplySensitivityValue(plan, domain.ParamLifeExpectancy, d(95))
	require.NoError(t, err)

	assert.Equal(t, 95, modified.Self.LifeExpectancy)
	assert.Equal(t, 93, modified.Partner.LifeExpectancy)
	assert.Equal(t, 90, plan.Self.LifeExpectancy, "original plan untouched")

	modified, err = ApplySensitivityValue(plan, domain.ParamInflationRate, d(4.5))
	require.NoError(t, err)
	assert.True(t, modified.InflationRate.Equal(d(4.5)))
}

func TestSensitivityAnalyzer_Matrix(t *testing.T) {
	plan := scenarioA()
	plan.Self.DesiredMonthlyIncome = d(1500)

	matrix, err := NewSensitivityAnalyzer().AnalyzeParameterMatrix(plan,
		domain.SensitivityParameter{Name: domain.ParamGrowthRate, MinValue: d(3), MaxValue: d(7), Steps: 3},
		domain.SensitivityParameter{Name: domain.ParamInflationRate, MinValue: d(2), MaxValue: d(4), Steps: 2},
	)
	require.NoError(t, err)

	require.Len(t, matrix.MatrixResults, 3)
	require.Len(t, matrix.MatrixResults[0], 2)
	assert.Equal(t, 6, matrix.Summary.TotalPoints)
	assert.Contains(t, matrix.Summary.SensitivityScores, domain.ParamGrowthRate)
	assert.Contains(t, matrix.Summary.SensitivityScores, domain.ParamInflationRate)
	assert.NotEmpty(t, matrix.Summary.RiskLevel)

	cell := matrix.MatrixResults[2][0]
	assert.True(t, cell.ParameterValues[domain.ParamGrowthRate].Equal(d(7)))
	assert.True(t, cell.ParameterValues[domain.ParamInflationRate].Equal(d(2)))
}

func TestSensitivityAnalyzer_MatrixMoreColumnsThanRows(t *testing.T) {
	plan := scenarioA()

	var matrix *domain.SensitivityMatrix
	require.NotPanics(t, func() {
		var err error
		matrix, err = NewSensitivityAnalyzer().AnalyzeParameterMatrix(plan,
			domain.SensitivityParameter{Name: domain.ParamGrowthRate, MinValue: d(2), MaxValue: d(8), Steps: 2},
			domain.SensitivityParameter{Name: domain.ParamInflationRate, MinValue: d(1), MaxValue: d(5), Steps: 3},
		)
		require.NoError(t, err)
	})

	require.Len(t, matrix.MatrixResults, 2)
	require.Len(t, matrix.MatrixResults[0], 3)
	assert.Equal(t, 6, matrix.Summary.TotalPoints)
}

func TestAxisSpread(t *testing.T) {
	cell := func(years int) domain.SensitivityResult {
		return domain.SensitivityResult{KeyMetrics: domain.SensitivityMetrics{RunwayYears: years}}
	}
	// 2 rows x 3 columns
	matrix := [][]domain.SensitivityResult{
		{cell(10), cell(12), cell(20)},
		{cell(14), cell(18), cell(26)},
	}

	// down each column: 4, 6, 6
	assert.True(t, axisSpread(matrix, true).Equal(d(16).Div(d(3))), axisSpread(matrix, true).String())
	// across each row: 10, 12
	assert.True(t, axisSpread(matrix, false).Equal(d(11)), axisSpread(matrix, false).String())
	assert.True(t, axisSpread(nil, true).IsZero())
}

func TestSensitivityAnalyzer_MatrixSameParameter(t *testing.T) {
	_, err := NewSensitivityAnalyzer().AnalyzeParameterMatrix(scenarioA(), domain.GrowthRateParam, domain.GrowthRateParam)
	assert.Error(t, err)
}

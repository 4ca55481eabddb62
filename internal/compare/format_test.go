package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *ComparisonSet {
	runsOut := 70
	runsOutYear := 2050
	return &ComparisonSet{
		BaseScenarioName: "Base Plan",
		ConfigPath:       "plan.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:   "Base Plan",
			LifeExpectancy: 90,
			RunwayYears:    45,
			FinalBalance:   decimal.NewFromInt(250000),
			TotalExpenses:  decimal.NewFromInt(1500000),
			Successful:     true,
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:        "lavish",
				Description:         "Spend 20% more each month",
				MoneyRunsOutAge:     &runsOut,
				MoneyRunsOutYear:    &runsOutYear,
				LifeExpectancy:      90,
				RunwayYears:         25,
				FinalBalance:        decimal.NewFromInt(-1200),
				TotalExpenses:       decimal.NewFromInt(1800000),
				RunwayYearsDiff:     -20,
				FinalBalanceDiff:    decimal.NewFromInt(-251200),
				FinalBalancePctDiff: decimal.NewFromFloat(-100.48),
				ExpensesDiff:        decimal.NewFromInt(300000),
			},
		},
		Recommendations: []string{"Warning: under lavish savings run out at age 70"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())

	assert.Contains(t, out, "RETIREMENT RUNWAY COMPARISON")
	assert.Contains(t, out, "Base Plan: Base Plan")
	assert.Contains(t, out, "Plan File: plan.yaml")
	assert.Contains(t, out, "Base Plan (base)")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "age 70")
	assert.Contains(t, out, "$250.0K")
	assert.Contains(t, out, "Runway:           -20 years")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(sampleSet())
	assert.Equal(t, "Base: Base Plan (45 years) | lavish: -20y", out)
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	tf := &TableFormatter{}
	tests := []struct {
		in   int64
		want string
	}{
		{999, "999"},
		{1500, "1.5K"},
		{2500000, "2.50M"},
		{-4200, "-4.2K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tf.formatDecimal(decimal.NewFromInt(tt.in)))
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"Base Plan", "base", "", "", "45", "250000.00"}, records[1][:6])
	assert.Equal(t, "70", records[2][2])
	assert.Equal(t, "2050", records[2][3])
	assert.Equal(t, "false", records[2][9])
	assert.Equal(t, "-20", records[2][10])
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleSet())
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "Base Plan", decoded["baseScenarioName"])
		alts := decoded["alternativeResults"].([]any)
		require.Len(t, alts, 1)
		assert.EqualValues(t, 70, alts[0].(map[string]any)["moneyRunsOutAge"])
		assert.Equal(t, []any{"lavish"}, decoded["ranking"])
		assert.Equal(t, pretty, strings.Contains(out, "\n"))
	}
}

func TestRankAlternatives(t *testing.T) {
	alts := []ComparisonResult{
		{ScenarioName: "short", RunwayYears: 20, FinalBalance: decimal.NewFromInt(-5)},
		{ScenarioName: "rich", RunwayYears: 45, FinalBalance: decimal.NewFromInt(900000)},
		{ScenarioName: "lean", RunwayYears: 45, FinalBalance: decimal.NewFromInt(1000)},
	}
	assert.Equal(t, []string{"rich", "lean", "short"}, rankAlternatives(alts))
	assert.Equal(t, "short", alts[0].ScenarioName, "input order untouched")
}

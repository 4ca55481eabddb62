package output

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
)

func TestNewSensitivityFormatter(t *testing.T) {
	assert.Equal(t, "console", NewSensitivityFormatter("").Name())
	assert.Equal(t, "console", NewSensitivityFormatter("table").Name())
	assert.Equal(t, "csv", NewSensitivityFormatter("CSV").Name())
	assert.Equal(t, "json", NewSensitivityFormatter("json").Name())
}

func TestSensitivityFormattersSingleParameter(t *testing.T) {
	analysis, err := calculation.NewSensitivityAnalyzer().AnalyzeSingleParameter(samplePlan(), domain.GrowthRateParam)
	require.NoError(t, err)

	console, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.Contains(t, console, "SENSITIVITY ANALYSIS: GROWTH RATE")
	assert.Contains(t, console, "Plan: Sample")
	assert.Contains(t, console, "Range: 2.0% to 8.0% (7 steps)")
	assert.Contains(t, console, "Risk Level:")

	csvOut, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	assert.Equal(t, "growth_rate,Runway Years,Money Runs Out Age,Final Balance,Runway Change,Final Balance Change,Successful", lines[0])
	assert.Len(t, lines, len(analysis.Results)+1)

	jsonOut, err := SensitivityJSONFormatter{}.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &decoded))
	assert.Equal(t, "Sample", decoded["planName"])
}

func TestSensitivityFormattersMatrix(t *testing.T) {
	matrix, err := calculation.NewSensitivityAnalyzer().AnalyzeParameterMatrix(samplePlan(), domain.InflationRateParam, domain.GrowthRateParam)
	require.NoError(t, err)

	console, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(matrix)
	require.NoError(t, err)
	assert.Contains(t, console, "SENSITIVITY MATRIX: INFLATION RATE × GROWTH RATE")

	csvOut, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(matrix)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "inflation_rate,growth_rate,"))
	assert.Len(t, lines, 1+domain.InflationRateParam.Steps*domain.GrowthRateParam.Steps)
}

func TestSensitivityFormattersRejectUnknownType(t *testing.T) {
	for _, f := range []SensitivityFormatter{SensitivityConsoleFormatter{}, SensitivityCSVFormatter{}, SensitivityJSONFormatter{}} {
		_, err := f.FormatSensitivityAnalysis("nope")
		assert.Error(t, err, f.Name())
	}
}

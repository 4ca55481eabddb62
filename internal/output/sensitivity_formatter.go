package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/runway/internal/domain"
)

// SensitivityFormatter renders sweep results. The analysis is either a
// *domain.ParameterSensitivityAnalysis or a *domain.SensitivityMatrix.
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis interface{}) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatSingleAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func (scf SensitivityConsoleFormatter) formatSingleAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Results) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	param := analysis.Parameter

	fmt.Fprintf(buf, "SENSITIVITY ANALYSIS: %s\n", parameterTitle(param.Name))
	fmt.Fprintln(buf, "=================================================================")
	if analysis.PlanName != "" {
		fmt.Fprintf(buf, "Plan: %s\n", analysis.PlanName)
	}
	fmt.Fprintf(buf, "Range: %s to %s (%d steps)\n",
		formatParameterValue(param, param.MinValue),
		formatParameterValue(param, param.MaxValue),
		param.Steps)
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintf(buf, "Base Case: runway %d years, money lasts %s, final balance %s\n",
		analysis.BaseResult.RunwayYears,
		runsOutLabel(analysis.BaseResult.MoneyRunsOutAge),
		FormatWholeCurrency(analysis.BaseResult.FinalBalance))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-14s %8s %12s %16s %14s %10s\n", "Value", "Runway", "Runs Out", "Final Balance", "Change", "Status")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	for _, r := range analysis.Results {
		m := r.KeyMetrics
		status := "OK"
		if !m.Successful {
			status = "SHORT"
		}
		fmt.Fprintf(buf, "%-14s %8d %12s %16s %14s %10s\n",
			formatParameterValue(param, r.ParameterValues[param.Name]),
			m.RunwayYears,
			runsOutLabel(m.MoneyRunsOutAge),
			FormatWholeCurrency(m.FinalBalance),
			signedYears(m.RunwayYearsChange),
			status)
	}
	fmt.Fprintln(buf)

	scf.writeSummary(buf, analysis.Summary)
	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.MatrixResults) == 0 {
		return "", fmt.Errorf("no results in matrix")
	}
	p1, p2 := matrix.Parameter1, matrix.Parameter2

	fmt.Fprintf(buf, "SENSITIVITY MATRIX: %s × %s\n", parameterTitle(p1.Name), parameterTitle(p2.Name))
	fmt.Fprintln(buf, "=================================================================")
	fmt.Fprintln(buf, "Cells show runway years (* = savings run out before life expectancy)")
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-14s", "")
	for _, r := range matrix.MatrixResults[0] {
		fmt.Fprintf(buf, " %12s", formatParameterValue(p2, r.ParameterValues[p2.Name]))
	}
	fmt.Fprintln(buf)

	for _, row := range matrix.MatrixResults {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(buf, "%-14s", formatParameterValue(p1, row[0].ParameterValues[p1.Name]))
		for _, cell := range row {
			mark := ""
			if !cell.KeyMetrics.Successful {
				mark = "*"
			}
			fmt.Fprintf(buf, " %12s", strconv.Itoa(cell.KeyMetrics.RunwayYears)+mark)
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintln(buf)

	scf.writeSummary(buf, matrix.Summary)
	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) writeSummary(buf *bytes.Buffer, summary domain.SensitivitySummary) {
	fmt.Fprintf(buf, "Risk Level: %s (%d of %d points run short)\n", summary.RiskLevel, summary.DepletedPoints, summary.TotalPoints)
	if summary.MostSensitiveParameter != "" {
		fmt.Fprintf(buf, "Most Sensitive: %s\n", parameterTitle(summary.MostSensitiveParameter))
	}
	if len(summary.Recommendations) > 0 {
		fmt.Fprintln(buf, "Recommendations:")
		for _, rec := range summary.Recommendations {
			fmt.Fprintf(buf, "  • %s\n", rec)
		}
	}
}

// SensitivityCSVFormatter writes one row per sweep point
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		_ = w.Write([]string{a.Parameter.Name, "Runway Years", "Money Runs Out Age", "Final Balance", "Runway Change", "Final Balance Change", "Successful"})
		for _, r := range a.Results {
			_ = w.Write(append([]string{r.ParameterValues[a.Parameter.Name].String()}, metricsRecord(r.KeyMetrics)...))
		}
	case *domain.SensitivityMatrix:
		_ = w.Write([]string{a.Parameter1.Name, a.Parameter2.Name, "Runway Years", "Money Runs Out Age", "Final Balance", "Runway Change", "Final Balance Change", "Successful"})
		for _, row := range a.MatrixResults {
			for _, r := range row {
				_ = w.Write(append([]string{
					r.ParameterValues[a.Parameter1.Name].String(),
					r.ParameterValues[a.Parameter2.Name].String(),
				}, metricsRecord(r.KeyMetrics)...))
			}
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func metricsRecord(m domain.SensitivityMetrics) []string {
	runsOut := ""
	if m.MoneyRunsOutAge != nil {
		runsOut = strconv.Itoa(*m.MoneyRunsOutAge)
	}
	return []string{
		strconv.Itoa(m.RunwayYears),
		runsOut,
		m.FinalBalance.StringFixed(2),
		strconv.Itoa(m.RunwayYearsChange),
		m.FinalBalanceChange.StringFixed(2),
		strconv.FormatBool(m.Successful),
	}
}

// SensitivityJSONFormatter formats sensitivity analysis as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter returns the formatter for a format name, falling back to console.
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}

func parameterTitle(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

func formatParameterValue(param domain.SensitivityParameter, value decimal.Decimal) string {
	switch param.Unit {
	case "percent":
		return value.StringFixed(1) + "%"
	case "currency":
		return FormatWholeCurrency(value)
	case "years":
		return value.StringFixed(0)
	default:
		return value.String()
	}
}

func runsOutLabel(age *int) string {
	if age == nil {
		return "never"
	}
	return fmt.Sprintf("age %d", *age)
}

func signedYears(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%dy", n)
	}
	return fmt.Sprintf("%dy", n)
}

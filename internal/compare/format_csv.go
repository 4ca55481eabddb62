package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Runs Out Age",
		"Runs Out Year",
		"Runway Years",
		"Final Balance",
		"Total Expenses",
		"Total Income",
		"Total Growth",
		"Successful",
		"Runway Diff",
		"Final Balance Diff",
		"Final Balance % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		optionalInt(result.MoneyRunsOutAge),
		optionalInt(result.MoneyRunsOutYear),
		strconv.Itoa(result.RunwayYears),
		result.FinalBalance.StringFixed(2),
		result.TotalExpenses.StringFixed(2),
		result.TotalIncome.StringFixed(2),
		result.TotalGrowth.StringFixed(2),
		strconv.FormatBool(result.Successful),
		strconv.Itoa(result.RunwayYearsDiff),
		result.FinalBalanceDiff.StringFixed(2),
		result.FinalBalancePctDiff.StringFixed(2),
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

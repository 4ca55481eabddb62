package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/runway/internal/domain"
)

// CSVHeader is the column order of the year-by-year export.
var CSVHeader = []string{
	"Age",
	"Year",
	"Starting Balance",
	"Annual Income",
	"One-Time Payment",
	"Desired Expense",
	"Net Expense",
	"Growth",
	"Ending Balance",
}

// CSVExporter writes one row per simulated year.
type CSVExporter struct{}

func (c CSVExporter) Name() string { return "csv" }

func (c CSVExporter) Format(analysis *domain.Analysis) ([]byte, error) {
	if analysis == nil || analysis.Result == nil {
		return nil, fmt.Errorf("analysis has no result")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, row := range analysis.Result.YearlyData {
		record := []string{
			strconv.Itoa(row.Age),
			strconv.Itoa(row.Year),
			row.StartingSavings.StringFixed(2),
			row.TotalIncome.StringFixed(2),
			row.OneTimePayment.StringFixed(2),
			row.DesiredIncome.StringFixed(2),
			row.NetExpense.StringFixed(2),
			row.GrowthAmount.StringFixed(2),
			row.ClampedEndingSavings().StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
)

// ConsoleFormatter renders the summary, inputs and year-by-year ledger as plain text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(analysis *domain.Analysis) ([]byte, error) {
	if analysis == nil || analysis.Result == nil {
		return nil, fmt.Errorf("analysis has no result")
	}
	result := analysis.Result
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "RETIREMENT RUNWAY ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	if analysis.Name != "" {
		fmt.Fprintf(&buf, "Plan: %s\n", analysis.Name)
	}
	if !analysis.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated on %s\n", analysis.GeneratedAt.Format("January 2, 2006"))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "EXECUTIVE SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	s := result.Summary
	fmt.Fprintf(&buf, "  Initial Savings:     %s\n", FormatWholeCurrency(s.InitialSavings))
	fmt.Fprintf(&buf, "  Total Income:        %s\n", FormatWholeCurrency(s.TotalIncomeReceived))
	fmt.Fprintf(&buf, "  One-Time Payments:   %s\n", FormatWholeCurrency(s.TotalOneTimePayments))
	fmt.Fprintf(&buf, "  Total Expenses:      %s\n", FormatWholeCurrency(s.TotalExpenses))
	fmt.Fprintf(&buf, "  Investment Growth:   %s\n", FormatWholeCurrency(s.TotalGrowth))
	fmt.Fprintf(&buf, "  Final Balance:       %s\n", FormatWholeCurrency(s.FinalBalance))
	fmt.Fprintf(&buf, "  Years Simulated:     %d\n", s.TotalYears)
	fmt.Fprintf(&buf, "  Avg Annual Expense:  %s\n", FormatWholeCurrency(s.AverageAnnualExpense))
	fmt.Fprintln(&buf)

	finding, warning := KeyFinding(result)
	marker := "✓"
	if warning {
		marker = "⚠"
	}
	fmt.Fprintf(&buf, "KEY FINDING: %s %s\n", marker, finding)
	if warning {
		fmt.Fprintf(&buf, "  That is %d years before life expectancy (%d).\n", result.YearsShort(), result.LifeExpectancy)
	}
	fmt.Fprintln(&buf)

	if assumptions := PlanAssumptions(analysis.Plan); len(assumptions) > 0 {
		fmt.Fprintln(&buf, "ASSUMPTIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, a := range assumptions {
			fmt.Fprintf(&buf, "  %-30s %s\n", a.Label+":", a.Value)
		}
		fmt.Fprintln(&buf)
	}

	if analysis.Plan != nil {
		c.writeStreams(&buf, analysis.Plan.AllIncomeStreams())
		c.writePayments(&buf, analysis.Plan.AllOneTimePayments())
	}

	fmt.Fprintln(&buf, "YEAR-BY-YEAR PROJECTIONS")
	fmt.Fprintln(&buf, strings.Repeat("-", 120))
	fmt.Fprintf(&buf, "%4s %5s %14s %12s %12s %12s %12s %12s %14s\n",
		"Age", "Year", "Start", "Income", "One-Time", "Expense", "Net Expense", "Growth", "End")
	for _, row := range result.YearlyData {
		oneTime := "-"
		if row.OneTimePayment.IsPositive() {
			oneTime = FormatWholeCurrency(row.OneTimePayment)
		}
		flag := ""
		if !row.EndingSavings.IsPositive() {
			flag = " ◀"
		}
		fmt.Fprintf(&buf, "%4d %5d %14s %12s %12s %12s %12s %12s %14s%s\n",
			row.Age,
			row.Year,
			FormatWholeCurrency(row.StartingSavings),
			FormatWholeCurrency(row.TotalIncome),
			oneTime,
			FormatWholeCurrency(row.DesiredIncome),
			FormatWholeCurrency(row.NetExpense),
			FormatWholeCurrency(row.GrowthAmount),
			FormatWholeCurrency(row.ClampedEndingSavings()),
			flag)
	}
	fmt.Fprintln(&buf)

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeStreams(buf *bytes.Buffer, streams []domain.IncomeStream) {
	if len(streams) == 0 {
		return
	}
	fmt.Fprintln(buf, "INCOME SOURCES")
	fmt.Fprintln(buf, strings.Repeat("-", 70))
	fmt.Fprintf(buf, "  %-24s %-8s %9s %12s %12s\n", "Source", "Owner", "Start Age", "Monthly", "Annual")
	for _, s := range streams {
		fmt.Fprintf(buf, "  %-24s %-8s %9d %12s %12s\n",
			s.Name, s.Owner.String(), s.StartAge,
			FormatWholeCurrency(s.MonthlyAmount), FormatWholeCurrency(s.AnnualAmount()))
	}
	fmt.Fprintln(buf)
}

func (c ConsoleFormatter) writePayments(buf *bytes.Buffer, payments []domain.OneTimePayment) {
	if len(payments) == 0 {
		return
	}
	fmt.Fprintln(buf, "ONE-TIME PAYMENTS")
	fmt.Fprintln(buf, strings.Repeat("-", 70))
	fmt.Fprintf(buf, "  %-24s %-8s %9s %12s\n", "Payment", "Owner", "Age", "Amount")
	for _, p := range payments {
		fmt.Fprintf(buf, "  %-24s %-8s %9d %12s\n", p.Name, p.Owner.String(), p.Age, FormatWholeCurrency(p.Amount))
	}
	fmt.Fprintln(buf)
}

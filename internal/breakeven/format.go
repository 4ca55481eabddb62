package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Target:          %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Converged)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	sb.WriteString(fmt.Sprintf("Search Bracket:  %s to %s\n", tf.formatValue(result.Target, result.Lower), tf.formatValue(result.Target, result.Upper)))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN VALUE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %s\n", tf.label(result.Target)+":", tf.formatValue(result.Target, result.Value)))
	sb.WriteString(fmt.Sprintf("%-20s %s\n", "Current Plan:", tf.formatValue(result.Target, result.CurrentValue)))
	sb.WriteString(fmt.Sprintf("%-20s %s%s\n", "Difference:", tf.deltaSymbol(result.Difference), tf.formatValue(result.Target, result.Difference.Abs())))
	if result.Headroom() {
		sb.WriteString("The current plan is on the safe side of the break-even point.\n")
	} else {
		sb.WriteString("The current plan is on the wrong side of the break-even point.\n")
	}
	sb.WriteString("\n")

	if p := result.Projection; p != nil {
		sb.WriteString("PROJECTION AT BREAK-EVEN\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Final Balance:   $%s\n", tf.formatShort(p.FinalSavings)))
		sb.WriteString(fmt.Sprintf("Runway:          %d years\n", p.RunwayYears()))
		sb.WriteString(fmt.Sprintf("Total Spent:     $%s\n", tf.formatShort(p.Summary.TotalExpenses)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMulti formats the results of solving all targets
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-16s %18s %18s %18s\n", "Target", "Break-Even", "Current", "Difference"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range result.Results {
		sb.WriteString(fmt.Sprintf("%-16s %18s %18s %18s\n",
			r.Target,
			tf.formatValue(r.Target, r.Value),
			tf.formatValue(r.Target, r.CurrentValue),
			tf.deltaSymbol(r.Difference)+tf.formatValue(r.Target, r.Difference.Abs())))
	}
	for _, target := range AllTargets() {
		if _, ok := result.Unsolved[target]; ok {
			sb.WriteString(fmt.Sprintf("%-16s %18s\n", target, "no solution"))
		}
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single result
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON output for a multi-target run
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(converged bool) string {
	if converged {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) label(t Target) string {
	switch t {
	case TargetMaxSpending:
		return "Max Monthly Spend"
	case TargetMinSavings:
		return "Min Savings"
	default:
		return "Min Growth Rate"
	}
}

func (tf *TableFormatter) formatValue(t Target, d decimal.Decimal) string {
	if t == TargetMinGrowth {
		return d.StringFixed(2) + "%"
	}
	return "$" + d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

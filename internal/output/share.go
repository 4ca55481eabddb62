package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/runway/internal/domain"
)

// ShareSummary renders the short plain-text summary meant for pasting into a message.
func ShareSummary(analysis *domain.Analysis) string {
	result := analysis.Result
	lastsUntil := result.LifeExpectancy
	if result.MoneyRunsOutAge != nil {
		lastsUntil = *result.MoneyRunsOutAge
	}

	var sb strings.Builder
	sb.WriteString("My Retirement Analysis Results:\n")
	fmt.Fprintf(&sb, "• Money lasts until age: %d\n", lastsUntil)
	fmt.Fprintf(&sb, "• Initial savings: %s\n", FormatWholeCurrency(result.Summary.InitialSavings))
	fmt.Fprintf(&sb, "• Final balance: %s\n", FormatWholeCurrency(result.Summary.FinalBalance))
	sb.WriteString("• Generated with Retirement Runway Calculator\n")
	return sb.String()
}

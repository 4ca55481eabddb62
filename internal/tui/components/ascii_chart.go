package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// BalanceChart draws remaining savings per age as a column chart.
// Years that end at or below zero are marked on the baseline.
type BalanceChart struct {
	Title  string
	Ages   []int
	Values []decimal.Decimal
	Width  int // plot columns, excluding the axis
	Height int
}

func NewBalanceChart(title string) *BalanceChart {
	return &BalanceChart{Title: title, Width: 60, Height: 10}
}

// AddPoint appends one year's ending balance
func (c *BalanceChart) AddPoint(age int, value decimal.Decimal) *BalanceChart {
	c.Ages = append(c.Ages, age)
	c.Values = append(c.Values, value)
	return c
}

func (c *BalanceChart) WithSize(width, height int) *BalanceChart {
	c.Width = width
	c.Height = height
	return c
}

// columns samples the series down to at most Width columns, keeping the
// lowest balance of each bucket so a depletion is never hidden.
func (c *BalanceChart) columns() ([]int, []float64) {
	n := len(c.Values)
	if n == 0 {
		return nil, nil
	}
	cols := n
	if c.Width > 0 && cols > c.Width {
		cols = c.Width
	}
	ages := make([]int, cols)
	vals := make([]float64, cols)
	for i := 0; i < cols; i++ {
		lo := i * n / cols
		hi := (i + 1) * n / cols
		if hi <= lo {
			hi = lo + 1
		}
		minVal := c.Values[lo].InexactFloat64()
		for _, v := range c.Values[lo+1 : hi] {
			if f := v.InexactFloat64(); f < minVal {
				minVal = f
			}
		}
		ages[i] = c.Ages[lo]
		vals[i] = minVal
	}
	return ages, vals
}

// Render returns the chart or a placeholder when there is no data
func (c *BalanceChart) Render() string {
	ages, vals := c.columns()
	if len(vals) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	height := c.Height
	if height < 2 {
		height = 2
	}

	peak := 0.0
	for _, v := range vals {
		if v > peak {
			peak = v
		}
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title))
		b.WriteString("\n")
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(9).Align(lipgloss.Right)
	bar := lipgloss.NewStyle().Foreground(tuistyles.ColorChartLine1)
	depleted := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)

	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = formatChartValue(peak)
		}
		b.WriteString(axis.Render(label))
		b.WriteString(" │")
		threshold := peak * float64(row-1) / float64(height)
		for _, v := range vals {
			switch {
			case v <= 0 && row == 1:
				b.WriteString(depleted.Render("×"))
			case peak > 0 && v > threshold:
				b.WriteString(bar.Render("█"))
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render("$0"))
	b.WriteString(" └")
	b.WriteString(strings.Repeat("─", len(vals)))
	b.WriteString("\n")

	first, last := ages[0], ages[len(ages)-1]
	gap := len(vals) - len(fmt.Sprint(first)) - len(fmt.Sprint(last))
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", 11))
	b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(
		fmt.Sprintf("%d%s%d", first, strings.Repeat(" ", gap), last)))
	return b.String()
}

// formatChartValue formats a value for the Y axis
func formatChartValue(value float64) string {
	switch {
	case value >= 1000000 || value <= -1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case value >= 1000 || value <= -1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

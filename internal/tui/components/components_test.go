package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestParameterSliderClampsAndSteps(t *testing.T) {
	s := NewParameterSlider("age", "Current Age", d(150), d(18), d(100), d(1))
	assert.Equal(t, "100", s.Value.String())

	assert.False(t, s.Increment())
	assert.True(t, s.Decrement())
	assert.Equal(t, 99, s.IntValue())

	s.SetValue(d(0))
	assert.Equal(t, "18", s.Value.String())
	assert.Equal(t, 0.0, s.Fraction())
}

func TestParameterSliderDecimalSteps(t *testing.T) {
	s := NewParameterSlider("rate", "Inflation", decimal.NewFromFloat(2.9), d(0), d(10), decimal.NewFromFloat(0.1))
	s.Increment()
	// no float drift
	assert.Equal(t, "3", s.Value.String())
	assert.InDelta(t, 0.3, s.Fraction(), 1e-9)
}

func TestParameterSliderRender(t *testing.T) {
	s := NewParameterSlider("savings", "Savings", d(250000), d(0), d(500000), d(10000)).
		WithFormat(func(v decimal.Decimal) string { return "$" + v.String() }).
		WithDescription("Liquid savings").
		WithWidth(20)

	out := s.Render()
	assert.Contains(t, out, "Savings")
	assert.Contains(t, out, "$250000")
	assert.Contains(t, out, "$0 ─ $500000")
	assert.NotContains(t, out, "Liquid savings")

	s.SetFocused(true)
	assert.Contains(t, s.Render(), "Liquid savings")
	assert.Contains(t, s.RenderCompact(), "Savings:")
	assert.Equal(t, 20, s.Width)
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Final Balance", "$12,345").WithCaption("▲ +$1,000 vs saved").WithTone(TonePositive)
	out := card.Render()
	assert.Contains(t, out, "Final Balance")
	assert.Contains(t, out, "$12,345")
	assert.Contains(t, out, "vs saved")
	assert.Contains(t, card.RenderCompact(), "Final Balance:")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	grid := MetricGrid(cards, 2)
	for _, v := range []string{"A", "B", "C"} {
		assert.Contains(t, grid, v)
	}
}

func TestBalanceChart(t *testing.T) {
	empty := NewBalanceChart("Savings")
	assert.Contains(t, empty.Render(), "No data")

	c := NewBalanceChart("Savings").WithSize(10, 4)
	for age := 60; age < 80; age++ {
		c.AddPoint(age, d(int64(100000-(age-60)*10000)))
	}
	ages, vals := c.columns()
	assert.Len(t, vals, 10)
	assert.Equal(t, 60, ages[0])
	// each bucket keeps its lowest balance
	assert.Equal(t, 90000.0, vals[0])
	assert.Equal(t, -90000.0, vals[9])

	out := c.Render()
	assert.Contains(t, out, "Savings")
	assert.Contains(t, out, "×")
	assert.Contains(t, out, "60")
	assert.Contains(t, out, "78")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$1.5M", formatChartValue(1500000))
	assert.Equal(t, "$250K", formatChartValue(250000))
	assert.Equal(t, "$900", formatChartValue(900))
}

func TestTemplateCard(t *testing.T) {
	card := NewTemplateCard("frugal").
		WithDescription("Cut spending by 15%").
		WithCategory("Spending").
		AddHighlight("runs out at age 88 (+3 years)")

	out := card.Render()
	assert.Contains(t, out, "[ ] frugal")
	assert.Contains(t, out, "runs out at age 88")

	card.SetChecked(true).SetSelected(true)
	assert.True(t, strings.Contains(card.Render(), "[x] frugal"))
}

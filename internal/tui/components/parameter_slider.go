package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// ValueFormatter renders a slider value for display
type ValueFormatter func(decimal.Decimal) string

// ParameterSlider displays an adjustable plan input with a visual track.
// Values are decimals so money and rates never pass through floats.
type ParameterSlider struct {
	Key         string // plan field the slider edits
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Format      ValueFormatter
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider; the value is clamped into [min, max].
func NewParameterSlider(key, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	s := &ParameterSlider{
		Key:    key,
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: func(d decimal.Decimal) string { return d.String() },
		Width:  30,
	}
	s.SetValue(value)
	return s
}

// WithFormat sets the value formatter
func (p *ParameterSlider) WithFormat(format ValueFormatter) *ParameterSlider {
	p.Format = format
	return p
}

func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves one step up, stopping at Max. It reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement moves one step down, stopping at Min.
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue clamps value into range and reports whether the value changed.
func (p *ParameterSlider) SetValue(value decimal.Decimal) bool {
	if value.LessThan(p.Min) {
		value = p.Min
	}
	if value.GreaterThan(p.Max) {
		value = p.Max
	}
	changed := !value.Equal(p.Value)
	p.Value = value
	return changed
}

// IntValue returns the value truncated to an int, for age sliders.
func (p *ParameterSlider) IntValue() int {
	return int(p.Value.IntPart())
}

// Fraction returns how far along the range the value sits, in [0, 1].
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// Render returns the label, value, track and range lines.
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(p.Format(p.Value)))
	b.WriteString("\n")
	b.WriteString(p.renderTrack())

	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	b.WriteString(" ")
	b.WriteString(muted.Render(p.Format(p.Min) + " ─ " + p.Format(p.Max)))

	if p.IsFocused && p.Description != "" {
		b.WriteString("\n")
		b.WriteString(muted.Italic(true).Render(p.Description))
	}
	return b.String()
}

// RenderCompact returns a single line: label, value and a short track.
func (p *ParameterSlider) RenderCompact() string {
	label := tuistyles.ParameterLabelStyle.Render(p.Label + ":")
	value := tuistyles.ParameterValueStyle.Render(p.Format(p.Value))
	saved := p.Width
	p.Width = 10
	track := p.renderTrack()
	p.Width = saved
	return label + " " + value + " " + track
}

func (p *ParameterSlider) renderTrack() string {
	width := p.Width
	if width < 2 {
		width = 2
	}
	thumb := int(p.Fraction()*float64(width-1) + 0.5)

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if thumb > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", thumb)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := width - thumb - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}

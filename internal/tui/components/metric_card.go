package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// Tone colours a metric value
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
)

// MetricCard displays one headline figure of a projection
type MetricCard struct {
	Label   string
	Value   string
	Caption string
	Tone    Tone
	Width   int
}

func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 24}
}

// WithCaption adds a line under the value, e.g. the change against the saved plan
func (m *MetricCard) WithCaption(caption string) *MetricCard {
	m.Caption = caption
	return m
}

func (m *MetricCard) WithTone(tone Tone) *MetricCard {
	m.Tone = tone
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) valueStyle() lipgloss.Style {
	switch m.Tone {
	case TonePositive:
		return tuistyles.MetricPositiveStyle
	case ToneNegative:
		return tuistyles.MetricNegativeStyle
	default:
		return tuistyles.MetricValueStyle
	}
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.valueStyle().Render(m.Value)
	if m.Caption != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Caption)
	}

	border := tuistyles.ColorBorder
	if m.Tone == ToneNegative {
		border = tuistyles.ColorDanger
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns "label: value" without a border
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.valueStyle().Render(m.Value)
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := start + columns
		if end > len(cards) {
			end = len(cards)
		}
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

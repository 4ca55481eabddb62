package scenes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/rgehrsitz/runway/internal/tui/components"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// ResultsModel shows the latest projection: metric cards, a balance chart
// and a scrollable year table.
type ResultsModel struct {
	result   *domain.ScenarioResult
	baseline *domain.ScenarioResult // projection of the plan as loaded or last saved
	table    table.Model
	width    int
	height   int
}

var resultColumns = []table.Column{
	{Title: "Age", Width: 4},
	{Title: "Year", Width: 5},
	{Title: "Start", Width: 12},
	{Title: "Income", Width: 10},
	{Title: "One-Time", Width: 10},
	{Title: "Expense", Width: 10},
	{Title: "Growth", Width: 10},
	{Title: "End", Width: 12},
}

func NewResultsModel() *ResultsModel {
	t := table.New(
		table.WithColumns(resultColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorForeground).
		Background(tuistyles.ColorSecondary)
	styles.Cell = tuistyles.TableCellStyle.Padding(0, 1)
	t.SetStyles(styles)

	return &ResultsModel{table: t}
}

// SetResult shows a new projection
func (m *ResultsModel) SetResult(result *domain.ScenarioResult) {
	m.result = result
	if result == nil {
		m.table.SetRows(nil)
		return
	}
	m.table.SetRows(yearRows(result.YearlyData))
}

// SetBaseline sets the projection the metric captions compare against
func (m *ResultsModel) SetBaseline(result *domain.ScenarioResult) {
	m.baseline = result
}

func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if h := height - 28; h > 5 {
		m.table.SetHeight(h)
	}
}

// Rows returns the table rows, one per simulated year
func (m *ResultsModel) Rows() []table.Row {
	return m.table.Rows()
}

func yearRows(records []domain.YearRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		oneTime := "-"
		if r.OneTimePayment.IsPositive() {
			oneTime = tuistyles.FormatCurrency(r.OneTimePayment)
		}
		end := tuistyles.FormatCurrency(r.ClampedEndingSavings())
		if !r.EndingSavings.IsPositive() {
			end += " ◀"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(r.Age),
			strconv.Itoa(r.Year),
			tuistyles.FormatCurrency(r.StartingSavings),
			tuistyles.FormatCurrency(r.TotalIncome),
			oneTime,
			tuistyles.FormatCurrency(r.DesiredIncome),
			tuistyles.FormatCurrency(r.GrowthAmount),
			end,
		})
	}
	return rows
}

// Update scrolls the year table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return "No results to display.\n\nLoad or edit a plan first."
	}

	finding, warning := output.KeyFinding(m.result)
	findingStyle := tuistyles.MetricPositiveStyle
	if warning {
		findingStyle = tuistyles.MetricNegativeStyle
	}

	chart := components.NewBalanceChart("Remaining Savings by Age").WithSize(60, 8)
	for _, r := range m.result.YearlyData {
		chart.AddPoint(r.Age, r.EndingSavings)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("Projection Results"),
		findingStyle.Render(finding),
		"",
		components.MetricGrid(m.metricCards(), 4),
		"",
		chart.Render(),
		"",
		m.table.View(),
		tuistyles.HelpDescStyle.Render("↑/↓ scroll years • 2 edit plan • 4 compare"),
	)
}

func (m *ResultsModel) metricCards() []*components.MetricCard {
	r := m.result

	lasts := components.NewMetricCard("Money Lasts Until", "Life expectancy").WithTone(components.TonePositive)
	if r.MoneyRunsOutAge != nil {
		lasts = components.NewMetricCard("Money Lasts Until", fmt.Sprintf("Age %d", *r.MoneyRunsOutAge))
		if r.IsSuccessful() {
			lasts.WithTone(components.TonePositive)
		} else {
			lasts.WithTone(components.ToneNegative).WithCaption(fmt.Sprintf("%d years short", r.YearsShort()))
		}
	}

	final := components.NewMetricCard("Final Balance", tuistyles.FormatCurrency(r.Summary.FinalBalance))
	if r.Summary.FinalBalance.IsNegative() {
		final.WithTone(components.ToneNegative)
	}

	runway := components.NewMetricCard("Runway", fmt.Sprintf("%d years", r.RunwayYears()))
	avg := components.NewMetricCard("Avg Annual Expense", tuistyles.FormatCurrency(r.Summary.AverageAnnualExpense))

	if b := m.baseline; b != nil && b != r {
		if diff := r.RunwayYears() - b.RunwayYears(); diff != 0 {
			runway.WithCaption(trendCaption(diff > 0, fmt.Sprintf("%+d years vs saved", diff)))
		}
		if diff := r.Summary.FinalBalance.Sub(b.Summary.FinalBalance); !diff.IsZero() {
			final.WithCaption(trendCaption(diff.IsPositive(), signedCurrency(diff)+" vs saved"))
		}
	}

	return []*components.MetricCard{lasts, final, runway, avg}
}

func trendCaption(positive bool, text string) string {
	return tuistyles.MetricTrendStyle(positive).Render(tuistyles.TrendIndicator(positive) + " " + text)
}

func signedCurrency(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + tuistyles.FormatCurrency(d)
	}
	return tuistyles.FormatCurrency(d)
}

package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	plan     *domain.Plan
	result   *domain.ScenarioResult
	planPath string
	width    int
	height   int
}

func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetPlan updates the plan and its latest projection
func (m *HomeModel) SetPlan(plan *domain.Plan, result *domain.ScenarioResult, path string) {
	m.plan = plan
	m.result = result
	m.planPath = path
}

func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene; navigation is handled by the parent
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("Retirement Runway Calculator"))
	content.WriteString("\n\n")

	if m.plan == nil {
		content.WriteString(tuistyles.SubtitleStyle.Render("Loading plan..."))
		return tuistyles.BorderStyle.Render(content.String())
	}

	content.WriteString(m.renderPlanOverview())
	content.WriteString("\n")
	content.WriteString(m.renderFinding())
	content.WriteString("\n\n")
	content.WriteString(m.renderQuickActions())

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *HomeModel) renderPlanOverview() string {
	section := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary)
	label := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	value := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	var b strings.Builder
	b.WriteString(section.Render("Plan Overview"))
	b.WriteString("\n")

	line := func(l, v string) {
		b.WriteString(label.Render(fmt.Sprintf("  %-22s", l)))
		b.WriteString(value.Render(v))
		b.WriteString("\n")
	}
	if m.planPath != "" {
		line("File", m.planPath)
	} else {
		line("File", "(defaults, not saved)")
	}
	line("You", fmt.Sprintf("age %d, planning to %d", m.plan.Self.CurrentAge, m.plan.Self.LifeExpectancy))
	if p := m.plan.Partner; p != nil {
		line("Partner", fmt.Sprintf("age %d, planning to %d", p.CurrentAge, p.LifeExpectancy))
	}
	if m.result != nil {
		line("Savings", tuistyles.FormatCurrency(m.result.Summary.InitialSavings))
	}
	line("Income sources", fmt.Sprintf("%d", len(m.plan.AllIncomeStreams())))
	line("One-time payments", fmt.Sprintf("%d", len(m.plan.AllOneTimePayments())))
	line("Inflation / growth", output.FormatRate(m.plan.InflationRate)+" / "+output.FormatRate(m.plan.InvestmentGrowthRate))
	return b.String()
}

func (m *HomeModel) renderFinding() string {
	if m.result == nil {
		return ""
	}
	finding, warning := output.KeyFinding(m.result)
	if warning {
		return tuistyles.MetricNegativeStyle.Render("⚠ " + finding)
	}
	return tuistyles.MetricPositiveStyle.Render("✓ " + finding)
}

func (m *HomeModel) renderQuickActions() string {
	section := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary)

	var b strings.Builder
	b.WriteString(section.Render("Quick Actions"))
	b.WriteString("\n")
	actions := []struct{ key, desc string }{
		{"2", "Adjust plan inputs"},
		{"3", "View year-by-year results"},
		{"4", "Compare what-if templates"},
		{"5", "Find break-even values"},
		{"ctrl+s", "Save the plan"},
		{"?", "Show help"},
	}
	for _, a := range actions {
		b.WriteString("  ")
		b.WriteString(tuistyles.HelpKeyStyle.Render(fmt.Sprintf("%-7s", a.key)))
		b.WriteString(tuistyles.HelpDescStyle.Render(a.desc))
		b.WriteString("\n")
	}
	return b.String()
}

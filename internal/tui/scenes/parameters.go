package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/output"
	"github.com/rgehrsitz/runway/internal/tui/components"
	"github.com/rgehrsitz/runway/internal/tui/tuimsg"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// Slider keys, one per editable plan field
const (
	FieldCurrentAge     = "current_age"
	FieldSavings        = "lump_sum_savings"
	FieldMonthlyIncome  = "desired_monthly_income"
	FieldLifeExpectancy = "life_expectancy"
	FieldInflation      = "inflation_rate"
	FieldGrowth         = "investment_growth_rate"
)

const (
	tabSelf    = "You"
	tabPartner = "Partner"
)

var (
	keyUp      = key.NewBinding(key.WithKeys("up", "k"))
	keyDown    = key.NewBinding(key.WithKeys("down", "j"))
	keyLeft    = key.NewBinding(key.WithKeys("left", "h"))
	keyRight   = key.NewBinding(key.WithKeys("right", "l"))
	keyBigLeft = key.NewBinding(key.WithKeys("shift+left", "H"))
	keyBigRt   = key.NewBinding(key.WithKeys("shift+right", "L"))
	keyTab     = key.NewBinding(key.WithKeys("tab"))
	keyBackTab = key.NewBinding(key.WithKeys("shift+tab"))
	keyReset   = key.NewBinding(key.WithKeys("r"))
)

// ParametersModel edits the plan inputs with sliders. Every change emits a
// PlanChangedMsg carrying a fresh copy of the plan.
type ParametersModel struct {
	plan          *domain.Plan
	original      *domain.Plan
	tabs          []string
	selectedTab   int
	sliders       []*components.ParameterSlider
	focusedSlider int
	width         int
	height        int
	modified      bool
}

func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

// SetPlan loads a plan for editing and remembers it for reset
func (m *ParametersModel) SetPlan(plan *domain.Plan) {
	if plan == nil {
		return
	}
	m.original = plan.DeepCopy()
	m.plan = plan.DeepCopy()
	m.modified = false
	m.tabs = []string{tabSelf}
	if m.plan.HasPartner() {
		m.tabs = append(m.tabs, tabPartner)
	}
	if m.selectedTab >= len(m.tabs) {
		m.selectedTab = 0
	}
	m.buildSliders()
}

// Plan returns the plan as currently edited
func (m *ParametersModel) Plan() *domain.Plan {
	return m.plan
}

func (m *ParametersModel) Modified() bool {
	return m.modified
}

// MarkSaved makes the current plan the reset point
func (m *ParametersModel) MarkSaved() {
	if m.plan != nil {
		m.original = m.plan.DeepCopy()
	}
	m.modified = false
}

func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Sliders exposes the sliders of the selected tab
func (m *ParametersModel) Sliders() []*components.ParameterSlider {
	return m.sliders
}

func (m *ParametersModel) FocusedSlider() *components.ParameterSlider {
	if m.focusedSlider < len(m.sliders) {
		return m.sliders[m.focusedSlider]
	}
	return nil
}

func (m *ParametersModel) person() *domain.Person {
	if m.tabs[m.selectedTab] == tabPartner {
		return &m.plan.Partner.Person
	}
	return &m.plan.Self
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func years(d decimal.Decimal) string { return d.StringFixed(0) + " years" }

func rate(d decimal.Decimal) string { return d.StringFixed(1) + "%" }

// buildSliders creates the sliders for the selected tab. Rates are shared
// by the household and appear on the first tab only.
func (m *ParametersModel) buildSliders() {
	p := m.person()
	focused := m.focusedSlider

	m.sliders = []*components.ParameterSlider{
		components.NewParameterSlider(FieldCurrentAge, "Current Age",
			dec(int64(p.CurrentAge)), dec(18), dec(100), dec(1)).
			WithFormat(years).
			WithDescription("Age today; the projection starts here"),
		components.NewParameterSlider(FieldSavings, "Savings",
			p.LumpSumSavings, decimal.Zero, dec(5000000), dec(10000)).
			WithFormat(output.FormatWholeCurrency).
			WithDescription("Liquid savings available now"),
		components.NewParameterSlider(FieldMonthlyIncome, "Monthly Income Needed",
			p.DesiredMonthlyIncome, decimal.Zero, dec(20000), dec(100)).
			WithFormat(output.FormatWholeCurrency).
			WithDescription("Spending need in today's money, grown by inflation"),
		components.NewParameterSlider(FieldLifeExpectancy, "Life Expectancy",
			dec(int64(p.LifeExpectancy)), dec(50), dec(120), dec(1)).
			WithFormat(years).
			WithDescription("Age to which savings must last"),
	}
	if m.selectedTab == 0 {
		m.sliders = append(m.sliders,
			components.NewParameterSlider(FieldInflation, "Inflation Rate",
				m.plan.InflationRate, decimal.Zero, dec(10), decimal.NewFromFloat(0.1)).
				WithFormat(rate).
				WithDescription("Applied to spending only"),
			components.NewParameterSlider(FieldGrowth, "Investment Growth",
				m.plan.InvestmentGrowthRate, decimal.Zero, dec(15), decimal.NewFromFloat(0.1)).
				WithFormat(rate).
				WithDescription("Annual return on the remaining balance"),
		)
	}
	for _, s := range m.sliders {
		s.WithWidth(40)
	}

	if focused >= len(m.sliders) {
		focused = len(m.sliders) - 1
	}
	m.focusedSlider = focused
	m.sliders[focused].SetFocused(true)
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(keyMsg)
	}
	return m, nil
}

func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if m.plan == nil || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, keyUp):
		m.moveFocus(-1)
	case key.Matches(msg, keyDown):
		m.moveFocus(1)
	case key.Matches(msg, keyLeft):
		return m, m.adjust(-1)
	case key.Matches(msg, keyRight):
		return m, m.adjust(1)
	case key.Matches(msg, keyBigLeft):
		return m, m.adjust(-10)
	case key.Matches(msg, keyBigRt):
		return m, m.adjust(10)
	case key.Matches(msg, keyTab):
		m.switchTab(1)
	case key.Matches(msg, keyBackTab):
		m.switchTab(-1)
	case key.Matches(msg, keyReset):
		if m.modified {
			m.plan = m.original.DeepCopy()
			m.modified = false
			m.buildSliders()
			return m, m.planChanged()
		}
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[next].SetFocused(true)
}

func (m *ParametersModel) switchTab(delta int) {
	next := m.selectedTab + delta
	if next < 0 || next >= len(m.tabs) {
		return
	}
	m.selectedTab = next
	m.buildSliders()
}

// adjust moves the focused slider by steps and writes the value back
func (m *ParametersModel) adjust(steps int) tea.Cmd {
	s := m.sliders[m.focusedSlider]
	changed := s.SetValue(s.Value.Add(s.Step.Mul(dec(int64(steps)))))
	if !changed {
		return nil
	}
	m.applySlider(s)
	m.modified = true
	return m.planChanged()
}

// applySlider writes one slider back into the plan, keeping life
// expectancy at or above current age.
func (m *ParametersModel) applySlider(s *components.ParameterSlider) {
	p := m.person()
	switch s.Key {
	case FieldCurrentAge:
		p.CurrentAge = s.IntValue()
		if p.LifeExpectancy < p.CurrentAge {
			p.LifeExpectancy = p.CurrentAge
			m.syncSlider(FieldLifeExpectancy, dec(int64(p.LifeExpectancy)))
		}
	case FieldSavings:
		p.LumpSumSavings = s.Value
	case FieldMonthlyIncome:
		p.DesiredMonthlyIncome = s.Value
	case FieldLifeExpectancy:
		p.LifeExpectancy = s.IntValue()
		if p.LifeExpectancy < p.CurrentAge {
			p.LifeExpectancy = p.CurrentAge
			s.SetValue(dec(int64(p.LifeExpectancy)))
		}
	case FieldInflation:
		m.plan.InflationRate = s.Value
	case FieldGrowth:
		m.plan.InvestmentGrowthRate = s.Value
	}
}

func (m *ParametersModel) syncSlider(field string, value decimal.Decimal) {
	for _, s := range m.sliders {
		if s.Key == field {
			s.SetValue(value)
		}
	}
}

func (m *ParametersModel) planChanged() tea.Cmd {
	plan := m.plan.DeepCopy()
	return func() tea.Msg {
		return tuimsg.PlanChangedMsg{Plan: plan}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if m.plan == nil {
		return "No plan loaded.\n\nPress 1 to return home."
	}

	sections := []string{
		m.renderTabs(),
		"",
		m.renderSliders(),
	}
	if m.modified {
		sections = append(sections, "", tuistyles.InfoStyle.Bold(true).Render("⚠ Modified - ctrl+s to save, r to reset"))
	}
	sections = append(sections, "", tuistyles.HelpDescStyle.Render(
		"↑/↓ select • ←/→ adjust • shift+←/→ ×10 • tab switch person • r reset • ctrl+s save"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ParametersModel) renderTabs() string {
	title := tuistyles.TitleStyle.Render("Edit Plan")
	normal := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Padding(0, 1)
	selected := lipgloss.NewStyle().
		Foreground(tuistyles.ColorAccent).
		Background(tuistyles.ColorBorder).
		Bold(true).
		Padding(0, 1)

	var tabs []string
	for i, name := range m.tabs {
		if i == m.selectedTab {
			tabs = append(tabs, selected.Render(name))
		} else {
			tabs = append(tabs, normal.Render(name))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *ParametersModel) renderSliders() string {
	rendered := make([]string, 0, len(m.sliders))
	for _, s := range m.sliders {
		rendered = append(rendered, s.Render())
	}
	return tuistyles.BorderStyle.Width(72).Render(strings.Join(rendered, "\n\n"))
}

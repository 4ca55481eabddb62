package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/runway/internal/breakeven"
	"github.com/rgehrsitz/runway/internal/tui/tuimsg"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

var keySolveAll = key.NewBinding(key.WithKeys("a"))

// BreakEvenModel searches for the spending, savings and growth values at
// which the current plan exactly lasts.
type BreakEvenModel struct {
	targets  []breakeven.Target
	cursor   int
	results  map[breakeven.Target]*breakeven.Result
	unsolved map[breakeven.Target]string
	solving  bool
	width    int
	height   int
}

func NewBreakEvenModel() *BreakEvenModel {
	m := &BreakEvenModel{targets: breakeven.AllTargets()}
	m.Invalidate()
	return m
}

// SetResults stores finished searches; targets without a solution carry a reason
func (m *BreakEvenModel) SetResults(results []breakeven.Result, unsolved map[breakeven.Target]string) {
	m.solving = false
	for i := range results {
		r := results[i]
		m.results[r.Target] = &r
		delete(m.unsolved, r.Target)
	}
	for t, reason := range unsolved {
		m.unsolved[t] = reason
		delete(m.results, t)
	}
}

// Invalidate drops results computed for an older version of the plan
func (m *BreakEvenModel) Invalidate() {
	m.results = map[breakeven.Target]*breakeven.Result{}
	m.unsolved = map[breakeven.Target]string{}
	m.solving = false
}

func (m *BreakEvenModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *BreakEvenModel) Solving() bool {
	return m.solving
}

// Result returns the stored result for a target, if solved
func (m *BreakEvenModel) Result(t breakeven.Target) (*breakeven.Result, bool) {
	r, ok := m.results[t]
	return r, ok
}

// Update handles messages for the break-even scene
func (m *BreakEvenModel) Update(msg tea.Msg) (*BreakEvenModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(m.targets)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keyRun):
		return m, m.request(m.targets[m.cursor])
	case key.Matches(keyMsg, keySolveAll):
		return m, m.request(m.targets...)
	}
	return m, nil
}

func (m *BreakEvenModel) request(targets ...breakeven.Target) tea.Cmd {
	if m.solving {
		return nil
	}
	m.solving = true
	return func() tea.Msg {
		return tuimsg.BreakEvenRequestedMsg{Targets: targets}
	}
}

// View renders the break-even scene
func (m *BreakEvenModel) View() string {
	sections := []string{
		tuistyles.TitleStyle.Render("Break-Even Search"),
		tuistyles.SubtitleStyle.Render("Values at which savings exactly last to life expectancy"),
		"",
		m.renderTable(),
	}

	if m.solving {
		sections = append(sections, "", tuistyles.InfoStyle.Render("Searching..."))
	} else if detail := m.renderDetail(); detail != "" {
		sections = append(sections, "", detail)
	}

	sections = append(sections, "", tuistyles.HelpDescStyle.Render("↑/↓ select • enter solve • a solve all"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BreakEvenModel) renderTable() string {
	header := fmt.Sprintf("  %-22s %16s %16s  %s", "Target", "Break-Even", "Current", "Status")
	lines := []string{tuistyles.TableHeaderStyle.Render(header)}

	for i, t := range m.targets {
		value, current, status := "-", "-", tuistyles.HelpDescStyle.Render("not solved")
		if r, ok := m.results[t]; ok {
			value = targetValue(t, r.Value)
			current = targetValue(t, r.CurrentValue)
			if r.Headroom() {
				status = tuistyles.MetricPositiveStyle.Render("✓ safe side")
			} else {
				status = tuistyles.MetricNegativeStyle.Render("⚠ short")
			}
		} else if reason, ok := m.unsolved[t]; ok {
			status = tuistyles.MetricNegativeStyle.Render("no solution: " + reason)
		}

		row := fmt.Sprintf("%-22s %16s %16s  ", targetLabel(t), value, current)
		if i == m.cursor {
			lines = append(lines, tuistyles.SelectedItemStyle.Render("▸ "+row)+status)
		} else {
			lines = append(lines, tuistyles.UnselectedItemStyle.Render("  "+row)+status)
		}
	}
	return strings.Join(lines, "\n")
}

// renderDetail shows the projection at the break-even value of the selected target
func (m *BreakEvenModel) renderDetail() string {
	r, ok := m.results[m.targets[m.cursor]]
	if !ok || r.Projection == nil {
		return ""
	}
	p := r.Projection
	lines := []string{
		tuistyles.MetricLabelStyle.Render("At the break-even value"),
		fmt.Sprintf("  Runway:        %d years", p.RunwayYears()),
		fmt.Sprintf("  Final balance: %s", tuistyles.FormatCurrency(p.FinalSavings)),
		fmt.Sprintf("  Total spent:   %s", tuistyles.FormatCurrency(p.Summary.TotalExpenses)),
		fmt.Sprintf("  Search:        %d iterations, %s", r.Iterations, r.ConvergenceInfo),
	}
	return tuistyles.BorderStyle.Render(strings.Join(lines, "\n"))
}

func targetLabel(t breakeven.Target) string {
	switch t {
	case breakeven.TargetMaxSpending:
		return "Max monthly spending"
	case breakeven.TargetMinSavings:
		return "Min savings"
	case breakeven.TargetMinGrowth:
		return "Min growth rate"
	default:
		return string(t)
	}
}

func targetValue(t breakeven.Target, v decimal.Decimal) string {
	switch t {
	case breakeven.TargetMaxSpending:
		return tuistyles.FormatCurrency(v) + "/mo"
	case breakeven.TargetMinGrowth:
		return v.StringFixed(2) + "%"
	default:
		return tuistyles.FormatCurrency(v)
	}
}

package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/transform"
	"github.com/rgehrsitz/runway/internal/tui/components"
	"github.com/rgehrsitz/runway/internal/tui/tuimsg"
	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

var (
	keyToggle    = key.NewBinding(key.WithKeys(" ", "space", "x"))
	keyRun       = key.NewBinding(key.WithKeys("enter"))
	keySelectAll = key.NewBinding(key.WithKeys("a"))
)

// CompareModel picks what-if templates and shows how each changes the runway
type CompareModel struct {
	templates []transform.Template
	checked   map[string]bool
	cursor    int
	set       *compare.ComparisonSet
	comparing bool
	width     int
	height    int
}

// NewCompareModel lists the templates of the given registry
func NewCompareModel(registry *transform.TemplateRegistry) *CompareModel {
	m := &CompareModel{checked: map[string]bool{}}
	for _, name := range registry.List() {
		if t, ok := registry.Get(name); ok {
			m.templates = append(m.templates, t)
		}
	}
	return m
}

// SetResults stores a finished comparison
func (m *CompareModel) SetResults(set *compare.ComparisonSet) {
	m.set = set
	m.comparing = false
}

// Invalidate drops results computed for an older version of the plan
func (m *CompareModel) Invalidate() {
	m.set = nil
}

func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the checked template names in list order
func (m *CompareModel) Selected() []string {
	var names []string
	for _, t := range m.templates {
		if m.checked[t.Name] {
			names = append(names, t.Name)
		}
	}
	return names
}

func (m *CompareModel) Comparing() bool {
	return m.comparing
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.templates) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keyDown):
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keyToggle):
		name := m.templates[m.cursor].Name
		m.checked[name] = !m.checked[name]
	case key.Matches(keyMsg, keySelectAll):
		all := len(m.Selected()) != len(m.templates)
		for _, t := range m.templates {
			m.checked[t.Name] = all
		}
	case key.Matches(keyMsg, keyRun):
		selected := m.Selected()
		if len(selected) == 0 || m.comparing {
			return m, nil
		}
		m.comparing = true
		return m, func() tea.Msg {
			return tuimsg.CompareRequestedMsg{Templates: selected}
		}
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	sections := []string{tuistyles.TitleStyle.Render("Compare What-If Templates"), ""}

	outcomes := m.outcomes()
	for i, t := range m.templates {
		card := components.NewTemplateCard(t.Name).
			WithDescription(t.Description).
			WithCategory(t.Category).
			SetChecked(m.checked[t.Name]).
			SetSelected(i == m.cursor)
		for _, line := range outcomes[t.Name] {
			card.AddHighlight(line)
		}
		sections = append(sections, card.Render())
	}

	switch {
	case m.comparing:
		sections = append(sections, "", tuistyles.InfoStyle.Render("Comparing..."))
	case m.set != nil:
		sections = append(sections, "", m.renderBase())
		if len(m.set.Recommendations) > 0 {
			sections = append(sections, "", tuistyles.TitleStyle.Render("Recommendations"))
			for _, rec := range m.set.Recommendations {
				sections = append(sections, "  • "+rec)
			}
		}
	}

	sections = append(sections, "", tuistyles.HelpDescStyle.Render("↑/↓ move • space toggle • a all • enter compare"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *CompareModel) renderBase() string {
	base := m.set.BaseResult
	return tuistyles.MetricLabelStyle.Render("Base plan: ") +
		tuistyles.MetricValueStyle.Render(fmt.Sprintf("%d years, final balance %s",
			base.RunwayYears, tuistyles.FormatCurrency(base.FinalBalance)))
}

// outcomes maps template names to the lines shown under their cards
func (m *CompareModel) outcomes() map[string][]string {
	out := map[string][]string{}
	if m.set == nil {
		return out
	}
	for _, alt := range m.set.AlternativeResults {
		lasts := "lasts to life expectancy"
		if alt.MoneyRunsOutAge != nil {
			lasts = fmt.Sprintf("runs out at age %d", *alt.MoneyRunsOutAge)
		}
		out[strings.ToLower(alt.ScenarioName)] = []string{
			fmt.Sprintf("%s (%+d years)", lasts, alt.RunwayYearsDiff),
			fmt.Sprintf("final balance %s", signedCurrency(alt.FinalBalanceDiff)),
		}
	}
	return out
}

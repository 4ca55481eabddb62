package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ Loading plan..."))
	}
	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render("Error: " + m.err.Error() + "\n\nPress any key to continue..."))
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneBreakEven:
		content = m.breakEvenModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4
	if contentHeight < 1 {
		contentHeight = 1
	}
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().MaxHeight(contentHeight).Render(content),
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("Retirement Runway")
	crumb := m.currentScene.String()
	if m.plan != nil && m.plan.Name != "" {
		crumb = m.plan.Name + " / " + crumb
	}
	if m.parametersModel.Modified() {
		crumb += " •"
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("1", "home"),
		formatShortcut("2", "plan"),
		formatShortcut("3", "results"),
		formatShortcut("4", "compare"),
		formatShortcut("5", "break-even"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	text := strings.Join(shortcuts, " • ")
	if m.status != "" {
		gap := m.width - lipgloss.Width(text) - lipgloss.Width(m.status) - 4
		if gap < 1 {
			gap = 1
		}
		text += strings.Repeat(" ", gap) + m.status
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(text)
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"NAVIGATION", [][2]string{
			{"1", "Home"},
			{"2", "Edit plan inputs"},
			{"3", "Year-by-year results"},
			{"4", "Compare what-if templates"},
			{"5", "Break-even search"},
			{"?", "This help"},
			{"esc", "Go back"},
			{"q / ctrl+c", "Quit"},
		}},
		{"EDITING", [][2]string{
			{"↑ / ↓", "Select an input"},
			{"← / →", "Adjust by one step"},
			{"shift+← / →", "Adjust by ten steps"},
			{"tab", "Switch between you and partner"},
			{"r", "Reset to the saved plan"},
			{"ctrl+s", "Save the plan to its file"},
		}},
		{"COMPARE", [][2]string{
			{"space", "Toggle a template"},
			{"a", "Toggle all"},
			{"enter", "Run the comparison"},
		}},
		{"BREAK-EVEN", [][2]string{
			{"enter", "Solve the selected target"},
			{"a", "Solve every target"},
		}},
	}

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Retirement Runway Calculator"))
	b.WriteString("\n\n")
	for _, s := range sections {
		b.WriteString(tuistyles.SubtitleStyle.Render(s.title))
		b.WriteString("\n")
		for _, k := range s.keys {
			b.WriteString("  ")
			b.WriteString(tuistyles.HelpKeyStyle.Render(padRight(k[0], 14)))
			b.WriteString(tuistyles.HelpDescStyle.Render(k[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(tuistyles.HelpDescStyle.Render("Income sources and one-time payments are fixed in today's money; only spending grows with inflation."))
	return tuistyles.BorderStyle.Render(b.String())
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

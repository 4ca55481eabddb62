package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/runway/internal/tui/tuistyles"
)

// TemplateCard shows one what-if template in the compare picker
type TemplateCard struct {
	Name        string
	Description string
	Category    string
	Highlights  []string // outcome lines once the comparison has run
	IsChecked   bool
	IsSelected  bool
	Width       int
}

func NewTemplateCard(name string) *TemplateCard {
	return &TemplateCard{Name: name, Width: 44}
}

func (t *TemplateCard) WithDescription(desc string) *TemplateCard {
	t.Description = desc
	return t
}

func (t *TemplateCard) WithCategory(category string) *TemplateCard {
	t.Category = category
	return t
}

func (t *TemplateCard) AddHighlight(line string) *TemplateCard {
	t.Highlights = append(t.Highlights, line)
	return t
}

func (t *TemplateCard) SetChecked(checked bool) *TemplateCard {
	t.IsChecked = checked
	return t
}

func (t *TemplateCard) SetSelected(selected bool) *TemplateCard {
	t.IsSelected = selected
	return t
}

// Render returns the bordered card
func (t *TemplateCard) Render() string {
	box := "[ ]"
	if t.IsChecked {
		box = "[x]"
	}

	var b strings.Builder
	nameStyle := tuistyles.UnselectedItemStyle.Bold(true)
	if t.IsSelected {
		nameStyle = tuistyles.SelectedItemStyle
	}
	b.WriteString(nameStyle.Render(box + " " + t.Name))
	if t.Category != "" {
		b.WriteString(" ")
		b.WriteString(tuistyles.SubtitleStyle.Render(t.Category))
	}
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(t.Description))
	}
	for _, h := range t.Highlights {
		b.WriteString("\n")
		b.WriteString(tuistyles.InfoStyle.Render("• " + h))
	}

	style := tuistyles.BorderStyle.Padding(0, 1).Width(t.Width)
	if t.IsSelected {
		style = tuistyles.ActiveBorderStyle.Padding(0, 1).Width(t.Width)
	}
	return style.Render(b.String())
}

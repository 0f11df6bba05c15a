package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var fieldLabels = [fieldCount]string{FieldAddressLabel, FieldUsernameLabel, FieldPasswordLabel}

// renderSettings renders the settings form
func (m *Model) renderSettings() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorTitle)).
		Bold(true).
		Padding(0, 1)

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, l := range fieldLabels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}
	labelStyle := lipgloss.NewStyle().Width(labelWidth + 1)
	activeLabel := labelStyle.Foreground(lipgloss.Color("6")) // Cyan

	for i, input := range m.inputs {
		style := labelStyle
		if i == m.focusIndex {
			style = activeLabel
		}
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	b.WriteString(helpStyle.Render(ActionSettings))
	b.WriteString("\n")

	if msg := m.renderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	return b.String()
}

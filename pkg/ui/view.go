package ui

import (
	"fmt"
	"strings"

	"github.com/xlttj/monswitch/pkg/switcher"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state
func (m *Model) View() string {
	switch m.uiState {
	case StateSwitch:
		return m.viewSwitch()
	case StateSettings:
		return m.renderSettings()
	}
	return "Unknown state"
}

// viewSwitch renders the two-button dialog
func (m *Model) viewSwitch() string {
	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true).
		Render("MonitorSwitcher - Switch display of shared monitor")
	b.WriteString(title)
	b.WriteString("\n\n")

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderButton(switcher.TargetWindows),
		"  ",
		m.renderButton(switcher.TargetUbuntu),
	)
	b.WriteString(buttons)
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	if m.busy {
		b.WriteString(fmt.Sprintf("%s Switching to %s...", m.spinner.View(), m.switching))
	} else {
		b.WriteString(helpStyle.Render(tooltip(m.focused)))
	}
	b.WriteString("\n\n")

	if msg := m.renderMessage(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	help := ActionSwitch
	switch {
	case m.busy:
		help = ActionBusy
	case m.width < NarrowWidth:
		help = ActionSwitchNarrow
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// renderButton draws one target as a bordered box; the focused one is highlighted
func (m *Model) renderButton(target switcher.Target) string {
	label, color := LabelWindows, ColorWindows
	if target == switcher.TargetUbuntu {
		label, color = LabelUbuntu, ColorUbuntu
	}

	style := lipgloss.NewStyle().
		Width(ButtonWidth).
		Height(ButtonHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Foreground(lipgloss.Color(color)).
		Bold(true)

	if target == m.focused {
		style = style.
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(ColorFocusBorder)).
			Foreground(lipgloss.Color(ColorSelectedFg)).
			Background(lipgloss.Color(color))
	}
	return style.Render(label)
}

func tooltip(target switcher.Target) string {
	if target == switcher.TargetUbuntu {
		return TooltipUbuntu
	}
	return TooltipWindows
}

// renderMessage formats the error or status line, error first
func (m *Model) renderMessage() string {
	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
		return errorStyle.Render(fmt.Sprintf("Error: %s", m.errorMsg))
	}
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStatus))
		return statusStyle.Render(m.statusMsg)
	}
	return ""
}

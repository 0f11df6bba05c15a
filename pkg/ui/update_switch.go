package ui

import (
	"github.com/xlttj/monswitch/pkg/switcher"

	tea "github.com/charmbracelet/bubbletea"
)

// updateSwitch handles keys in the two-button dialog
func (m *Model) updateSwitch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == ShortcutQuit {
		return m, tea.Quit
	}
	// Buttons are disabled while the previous switch is still running
	if m.busy {
		return m, nil
	}

	switch keyStr {
	case "left", "h":
		m.focused = switcher.TargetWindows
	case "right", "l":
		m.focused = switcher.TargetUbuntu
	case "tab", "shift+tab":
		m.focused = otherTarget(m.focused)
	case "enter", " ":
		return m.startSwitch(m.focused)
	case ShortcutWindows:
		return m.startSwitch(switcher.TargetWindows)
	case ShortcutUbuntu:
		return m.startSwitch(switcher.TargetUbuntu)
	case ShortcutSettings:
		return m.enterSettings()
	}
	return m, nil
}

func otherTarget(t switcher.Target) switcher.Target {
	if t == switcher.TargetWindows {
		return switcher.TargetUbuntu
	}
	return switcher.TargetWindows
}

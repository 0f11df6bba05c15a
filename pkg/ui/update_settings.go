package ui

import (
	"fmt"
	"strings"

	"github.com/xlttj/monswitch/pkg/config"
	"github.com/xlttj/monswitch/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// enterSettings switches to the settings form, prefilled from the store
func (m *Model) enterSettings() (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.errorMsg = "Settings store is not available"
		return m, nil
	}

	ls := m.store.Linux()
	m.inputs[FieldAddress].SetValue(ls.Address)
	m.inputs[FieldUsername].SetValue(ls.Username)
	m.inputs[FieldPassword].SetValue(ls.Password)

	m.uiState = StateSettings
	m.errorMsg = ""
	m.statusMsg = ""
	return m, m.focusField(FieldAddress)
}

// updateSettings handles keys in the settings form
func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveSettings()
		m.statusMsg = "Settings unchanged"
		return m, nil

	case ShortcutSave:
		return m.saveSettings()

	case "enter":
		if m.focusIndex == fieldCount-1 {
			return m.saveSettings()
		}
		return m, m.focusField(m.focusIndex + 1)

	case "tab", "down":
		return m, m.focusField((m.focusIndex + 1) % fieldCount)

	case "shift+tab", "up":
		return m, m.focusField((m.focusIndex + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// focusField moves input focus to index
func (m *Model) focusField(index int) tea.Cmd {
	m.focusIndex = index
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == index {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// saveSettings persists the form, then re-reads the store into the remote source
func (m *Model) saveSettings() (tea.Model, tea.Cmd) {
	ls := config.LinuxSettings{
		Address:  strings.TrimSpace(m.inputs[FieldAddress].Value()),
		Username: strings.TrimSpace(m.inputs[FieldUsername].Value()),
		Password: m.inputs[FieldPassword].Value(),
	}

	if err := m.store.SaveLinux(ls); err != nil {
		logging.LogError("Failed to save settings: %v", err)
		m.errorMsg = fmt.Sprintf("Failed to save settings: %v", err)
		return m, nil
	}

	saved := m.store.Linux()
	if m.switcher != nil {
		m.switcher.UpdateLinuxCredentials(saved)
	}

	m.leaveSettings()
	if saved.Complete() {
		m.statusMsg = fmt.Sprintf("Settings saved for %s@%s", saved.Username, saved.Address)
	} else {
		m.statusMsg = "Settings saved; address and username are needed to reach Ubuntu"
	}
	return m, nil
}

func (m *Model) leaveSettings() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.uiState = StateSwitch
	m.errorMsg = ""
}

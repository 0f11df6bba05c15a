package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/xlttj/monswitch/pkg/config"
	"github.com/xlttj/monswitch/pkg/logging"
	"github.com/xlttj/monswitch/pkg/switcher"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the state of the UI
type Model struct {
	uiState UIState

	// Core components
	store    config.SettingsStore
	switcher *switcher.Switcher
	width    int
	height   int

	// Central error message
	errorMsg string
	// Status/info message (non-error feedback)
	statusMsg string

	// Switch dialog state
	focused   switcher.Target
	busy      bool
	switching switcher.Target
	spinner   spinner.Model

	// Settings form state
	inputs     []textinput.Model
	focusIndex int
}

// NewModel creates the UI over a settings store and a switcher.
// store may be nil when it failed to open; initialError is then shown.
func NewModel(store config.SettingsStore, sw *switcher.Switcher, initialError string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle))

	m := &Model{
		uiState:  StateSwitch,
		store:    store,
		switcher: sw,
		errorMsg: initialError,
		width:    80, // Default width, will be updated on first WindowSizeMsg
		height:   24, // Default height, will be updated on first WindowSizeMsg
		focused:  switcher.TargetWindows,
		spinner:  sp,
		inputs:   newSettingsInputs(),
	}

	if store != nil && !store.Linux().Complete() {
		m.statusMsg = "Ubuntu desktop is not configured yet, press s to open settings"
	}
	return m
}

// newSettingsInputs builds the address, username and password inputs
func newSettingsInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = InputCharLimit
		ti.Width = InputWidth
		ti.Prompt = ""
		switch i {
		case FieldAddress:
			ti.Placeholder = "host or host:port"
		case FieldUsername:
			ti.Placeholder = "username"
		case FieldPassword:
			ti.Placeholder = "password"
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	return inputs
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global shortcuts that work in any state
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Delegate to state-specific handlers
		switch m.uiState {
		case StateSwitch:
			return m.updateSwitch(msg)
		case StateSettings:
			return m.updateSettings(msg)
		}

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case switchDoneMsg:
		m.busy = false
		// Failures are only logged; the dialog reports completion
		m.statusMsg = fmt.Sprintf("Shared monitor switched to %s (%s)", msg.target, msg.elapsed.Round(time.Millisecond))
		logging.LogDebug("UI: switch to %s completed", msg.target)
		return m, nil
	}

	return m, nil
}

// startSwitch runs the switch off the event loop and blocks further switches until done
func (m *Model) startSwitch(target switcher.Target) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.switching = target
	m.focused = target
	m.errorMsg = ""
	m.statusMsg = ""
	logging.LogDebug("UI: switch to %s requested", target)
	return m, tea.Batch(m.switchCmd(target), m.spinner.Tick)
}

// switchCmd performs the blocking close/open sequence
func (m *Model) switchCmd(target switcher.Target) tea.Cmd {
	sw := m.switcher
	return func() tea.Msg {
		start := time.Now()
		if sw != nil {
			sw.SwitchTo(context.Background(), target)
		}
		return switchDoneMsg{target: target, elapsed: time.Since(start)}
	}
}

// Busy reports whether a switch is in progress
func (m *Model) Busy() bool {
	return m.busy
}

// State returns the current view
func (m *Model) State() UIState {
	return m.uiState
}

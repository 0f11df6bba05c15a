package ui

import (
	"time"

	"github.com/xlttj/monswitch/pkg/switcher"
)

// UIState represents the different views/states of the UI
type UIState int

const (
	StateSwitch   UIState = iota // Two-button switch dialog
	StateSettings                // Remote desktop settings form
)

// Settings form field indexes
const (
	FieldAddress = iota
	FieldUsername
	FieldPassword
	fieldCount
)

// switchDoneMsg is sent when a switch command has run all its steps
type switchDoneMsg struct {
	target  switcher.Target
	elapsed time.Duration
}

package ui

// Button labels
const (
	LabelWindows = "Windows"
	LabelUbuntu  = "Ubuntu"
)

// Tooltips shown under the focused button
const (
	TooltipWindows = "Switch the display of your shared monitor to the Windows screen"
	TooltipUbuntu  = "Switch the display of your shared monitor to the Ubuntu screen"
)

// Action Lines / Key Hints
const (
	ActionSwitch       = "←/→: Select | enter: Switch | w: Windows | u: Ubuntu | s: Settings | q: Quit"
	ActionSwitchNarrow = "←/→ enter | w/u | s:Settings | q:Quit"
	ActionSettings     = "tab/↑/↓: Move | enter: Next/Save | ctrl+s: Save | esc: Cancel"
	ActionBusy         = "Switching... | q: Quit"
)

// Keyboard shortcuts
const (
	ShortcutQuit     = "q"
	ShortcutSettings = "s"
	ShortcutWindows  = "w"
	ShortcutUbuntu   = "u"
	ShortcutSave     = "ctrl+s"
)

// Settings form labels, in field order
const (
	FieldAddressLabel  = "Linux Desktop Address:"
	FieldUsernameLabel = "Linux Desktop Username:"
	FieldPasswordLabel = "Linux Desktop Password:"
)

// Numeric Constants for Layout
const (
	ButtonWidth    = 22
	ButtonHeight   = 5
	NarrowWidth    = 60
	InputCharLimit = 256
	InputWidth     = 32
)

// Lipgloss Colors
const (
	ColorBorder      = "240"
	ColorFocusBorder = "57"
	ColorSelectedFg  = "229"
	ColorTitle       = "14"  // Cyan for titles
	ColorHelp        = "245" // Grey for help text
	ColorError       = "9"   // Red for errors
	ColorStatus      = "10"  // Green for status
	ColorWindows     = "39"  // Blue
	ColorUbuntu      = "208" // Orange
)

package cmd

import (
	"fmt"
	"os"
)

// HandleHelpCommand displays help information for the application
func HandleHelpCommand() {
	showMainHelp()
}

// showMainHelp displays the main application help
func showMainHelp() {
	programName := os.Args[0]
	fmt.Printf(`monswitch - Shared monitor switcher

Hands one physical monitor between a local Windows machine and a remote
Linux desktop. Windows is driven with displayswitch.exe, the Linux desktop
with xset DPMS over SSH.

Usage:
  %s [command]

Available Commands:
  windows   Switch the shared monitor to Windows
  ubuntu    Switch the shared monitor to Ubuntu
  settings  Show or change the Linux desktop settings
  help      Show help information

Options:
  -h, --help  Show help information

Interactive Mode:
  Run without any command to start the interactive TUI where you can:
  - Use ←/→ and Enter, or w / u, to switch the monitor
  - Press s to edit the Linux desktop address, username and password

Environment:
  MONSWITCH_HOME  Directory for the settings database and log file
                  (default ~/.monswitch)

Examples:
  %s                                     Start interactive TUI
  %s ubuntu                              Switch to Ubuntu from a script
  %s settings set --address ubuntu.lan   Change the remote address

For more information about a specific command, use:
  %s <command> --help
`, programName, programName, programName, programName, programName)
}

// ShowMainHelpAndExit displays help and exits with code 0
func ShowMainHelpAndExit() {
	showMainHelp()
	os.Exit(0)
}

// wantsHelp reports whether args contain -h or --help
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

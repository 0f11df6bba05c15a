package main

import (
	"fmt"
	"os"

	"github.com/xlttj/monswitch/pkg/cmd"
	"github.com/xlttj/monswitch/pkg/config"
	"github.com/xlttj/monswitch/pkg/logging"
	"github.com/xlttj/monswitch/pkg/switcher"
	"github.com/xlttj/monswitch/pkg/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defer logging.Close()
	logging.LogDebug("monswitch started: %v", os.Args[1:])

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "windows":
			cmd.HandleSwitchCommand(switcher.TargetWindows)
			return
		case "ubuntu":
			cmd.HandleSwitchCommand(switcher.TargetUbuntu)
			return
		case "settings":
			cmd.HandleSettingsCommand()
			return
		case "help", "-h", "--help":
			cmd.ShowMainHelpAndExit()
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			cmd.HandleHelpCommand()
			os.Exit(1)
		}
	}

	// Default behavior - start TUI
	store, err := config.NewSettingsStore()
	initialError := ""
	var ls config.LinuxSettings
	if err != nil {
		initialError = fmt.Sprintf("Config load error: %v", err)
		logging.LogError("%s", initialError)
	} else {
		defer store.Close()
		ls = store.Linux()
	}

	model := ui.NewModel(store, switcher.NewFromSettings(ls), initialError)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

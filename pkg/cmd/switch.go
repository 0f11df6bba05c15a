package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/xlttj/monswitch/pkg/config"
	"github.com/xlttj/monswitch/pkg/logging"
	"github.com/xlttj/monswitch/pkg/switcher"
)

// HandleSwitchCommand switches the monitor without the TUI.
// Step failures are logged to stdout; the exit code stays 0 as in the dialog.
func HandleSwitchCommand(target switcher.Target) {
	switchCmd := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	verbose := switchCmd.Bool("v", false, "Verbose output")
	switchCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options]\n\n", os.Args[0], os.Args[1])
		fmt.Fprintf(os.Stderr, "Switch the shared monitor to %s using the stored settings.\n\n", target)
		fmt.Fprintf(os.Stderr, "Options:\n")
		switchCmd.PrintDefaults()
	}
	if err := switchCmd.Parse(os.Args[2:]); err != nil {
		fmt.Printf("Error parsing arguments: %v\n", err)
		os.Exit(1)
	}

	logging.SetEcho(os.Stdout)
	defer logging.SetEcho(nil)

	store, err := config.NewSettingsStore()
	if err != nil {
		fmt.Printf("Error opening settings store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	RunSwitch(context.Background(), switcher.NewFromSettings(store.Linux()), target, *verbose)
}

// RunSwitch performs one switch and reports progress to the log
func RunSwitch(ctx context.Context, sw *switcher.Switcher, target switcher.Target, verbose bool) {
	if verbose {
		logging.LogInfo("Switching shared monitor to %s", target)
	}
	sw.SwitchTo(ctx, target)
	if verbose {
		logging.LogInfo("Done")
	}
}

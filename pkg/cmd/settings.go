package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xlttj/monswitch/pkg/config"
	"github.com/xlttj/monswitch/pkg/logging"

	"golang.org/x/term"
)

// ErrUsage is returned for malformed settings subcommands
var ErrUsage = errors.New("invalid usage")

// Env carries the terminal a settings subcommand talks to
type Env struct {
	In  io.Reader
	Out io.Writer
	// ReadPassword prompts without echo; nil disables prompting
	ReadPassword func(prompt string) (string, error)
}

// DefaultEnv uses the process stdio and prompts only when stdin is a terminal
func DefaultEnv() Env {
	env := Env{In: os.Stdin, Out: os.Stdout}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		env.ReadPassword = func(prompt string) (string, error) {
			fmt.Fprint(os.Stdout, prompt)
			pw, err := term.ReadPassword(fd)
			fmt.Fprintln(os.Stdout)
			if err != nil {
				return "", err
			}
			return string(pw), nil
		}
	}
	return env
}

// HandleSettingsCommand handles the settings subcommand logic
func HandleSettingsCommand() {
	args := os.Args[2:]
	if len(args) == 0 || wantsHelp(args[:1]) {
		showSettingsHelp()
		os.Exit(0)
	}

	store, err := config.NewSettingsStore()
	if err != nil {
		fmt.Printf("Error opening settings store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := RunSettings(store, args, DefaultEnv()); err != nil {
		fmt.Printf("Error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			showSettingsHelp()
		}
		store.Close()
		os.Exit(1)
	}
}

// RunSettings dispatches a settings subcommand against store
func RunSettings(store config.SettingsStore, args []string, env Env) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing settings subcommand", ErrUsage)
	}

	switch args[0] {
	case "show":
		return settingsShow(store, env)
	case "set":
		return settingsSet(store, args[1:], env)
	case "export":
		return settingsExport(store, args[1:], env)
	case "import":
		return settingsImport(store, args[1:], env)
	case "clear":
		return settingsClear(store, args[1:], env)
	}
	return fmt.Errorf("%w: unknown settings subcommand %q", ErrUsage, args[0])
}

func settingsShow(store config.SettingsStore, env Env) error {
	ls := store.Linux()
	fmt.Fprintf(env.Out, "%-16s %s\n", config.KeyLinuxAddress, displayValue(ls.Address))
	fmt.Fprintf(env.Out, "%-16s %s\n", config.KeyLinuxUsername, displayValue(ls.Username))
	fmt.Fprintf(env.Out, "%-16s %s\n", config.KeyLinuxPassword, ls.MaskedPassword())
	if p, ok := store.(interface{ Path() string }); ok {
		fmt.Fprintf(env.Out, "\nDatabase: %s\n", p.Path())
	} else if dir, err := logging.DataDir(); err == nil {
		fmt.Fprintf(env.Out, "\nData directory: %s\n", dir)
	}
	return nil
}

func displayValue(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func settingsSet(store config.SettingsStore, args []string, env Env) error {
	setCmd := flag.NewFlagSet("settings set", flag.ContinueOnError)
	setCmd.SetOutput(env.Out)
	address := setCmd.String("address", "", "Linux desktop address (host or host:port)")
	username := setCmd.String("username", "", "Linux desktop SSH username")
	password := setCmd.String("password", "", "Linux desktop SSH password (prompted when omitted on a terminal)")

	if err := setCmd.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	given := map[string]bool{}
	setCmd.Visit(func(f *flag.Flag) { given[f.Name] = true })

	ls := store.Linux()
	if given["address"] {
		ls.Address = strings.TrimSpace(*address)
	}
	if given["username"] {
		ls.Username = strings.TrimSpace(*username)
	}
	if given["password"] {
		ls.Password = *password
	} else if env.ReadPassword != nil {
		pw, err := env.ReadPassword("Linux Desktop Password (empty keeps current): ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if pw != "" {
			ls.Password = pw
		}
	}

	if err := store.SaveLinux(ls); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "✅ Saved settings for %s@%s\n", displayValue(ls.Username), displayValue(ls.Address))
	return nil
}

func settingsExport(store config.SettingsStore, args []string, env Env) error {
	exportCmd := flag.NewFlagSet("settings export", flag.ContinueOnError)
	exportCmd.SetOutput(env.Out)
	outputFile := exportCmd.String("o", "", "Output file (defaults to stdout)")
	if err := exportCmd.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if *outputFile == "" {
		return config.Export(store, env.Out)
	}
	if err := config.ExportFile(store, *outputFile); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "📤 Exported settings to %s\n", *outputFile)
	return nil
}

func settingsImport(store config.SettingsStore, args []string, env Env) error {
	importCmd := flag.NewFlagSet("settings import", flag.ContinueOnError)
	importCmd.SetOutput(env.Out)
	inputFile := importCmd.String("f", "", "YAML file to import")
	if err := importCmd.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *inputFile == "" {
		return fmt.Errorf("%w: -f is required", ErrUsage)
	}

	ls, err := config.ImportFile(store, *inputFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "📥 Imported settings for %s@%s\n", displayValue(ls.Username), displayValue(ls.Address))
	return nil
}

func settingsClear(store config.SettingsStore, args []string, env Env) error {
	clearCmd := flag.NewFlagSet("settings clear", flag.ContinueOnError)
	clearCmd.SetOutput(env.Out)
	acceptAll := clearCmd.Bool("y", false, "Clear without prompting")
	if err := clearCmd.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	keys := []string{}
	for _, k := range store.Keys() {
		if strings.HasPrefix(k, config.LinuxPrefix) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		fmt.Fprintf(env.Out, "✅ No Linux desktop settings stored.\n")
		return nil
	}

	fmt.Fprintf(env.Out, "Found %d stored setting(s):\n", len(keys))
	for _, k := range keys {
		fmt.Fprintf(env.Out, "  - %s\n", k)
	}
	if !*acceptAll {
		fmt.Fprint(env.Out, "Delete these settings? [y/N]: ")
		reader := bufio.NewReader(env.In)
		resp, _ := reader.ReadString('\n')
		resp = strings.TrimSpace(strings.ToLower(resp))
		if resp != "y" && resp != "yes" {
			fmt.Fprintln(env.Out, "Aborted.")
			return nil
		}
	}

	n, err := store.Clear(config.LinuxPrefix)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "🧹 Removed %d setting(s).\n", n)
	return nil
}

// showSettingsHelp displays help for the settings command
func showSettingsHelp() {
	programName := os.Args[0]
	fmt.Fprintf(os.Stderr, `%s settings - Manage the Linux desktop settings

Usage:
  %s settings <subcommand> [options]

Subcommands:
  show                      Print stored settings (password masked)
  set [options]             Update settings
      --address string      Linux desktop address (host or host:port)
      --username string     SSH username
      --password string     SSH password (prompted when omitted on a terminal)
  export [-o file]          Write settings as YAML (defaults to stdout)
  import -f file            Read settings from a YAML file
  clear [-y]                Remove stored settings after confirmation

Examples:
  %s settings set --address ubuntu.lan --username me
  %s settings export -o monswitch.yaml
  %s settings import -f monswitch.yaml
`, programName, programName, programName, programName, programName)
}

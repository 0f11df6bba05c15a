package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/xlttj/monswitch/pkg/logging"
)

// CommandRunner runs a local program and returns its captured output
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes name with args and waits for it to exit
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// WindowsMonitorSource drives the local Windows display mode
type WindowsMonitorSource struct {
	name   string
	runner CommandRunner
}

// NewWindowsMonitorSource creates a local source using runner (nil means os/exec)
func NewWindowsMonitorSource(name string, runner CommandRunner) *WindowsMonitorSource {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &WindowsMonitorSource{name: name, runner: runner}
}

func (w *WindowsMonitorSource) Name() string {
	return w.name
}

// Open extends the desktop onto the shared monitor
func (w *WindowsMonitorSource) Open(ctx context.Context) error {
	return w.localCmd(ctx, WindowsOpenCommand)
}

// Close falls back to the internal display only
func (w *WindowsMonitorSource) Close(ctx context.Context) error {
	return w.localCmd(ctx, WindowsCloseCommand)
}

func (w *WindowsMonitorSource) localCmd(ctx context.Context, command string) error {
	logging.LogInfo("execute local command %s", command)

	fields := strings.Fields(command)
	stdout, stderr, err := w.runner.Run(ctx, fields[0], fields[1:]...)
	logLines("stdout", stdout)
	logLines("stderr", stderr)
	if err != nil {
		return fmt.Errorf("%s: local command %q failed: %w", w.name, command, err)
	}
	return nil
}

// logLines logs every non-empty line of output with a stream prefix
func logLines(stream, output string) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		logging.LogInfo("%s : %s", stream, line)
	}
}

package switcher

import (
	"context"
	"time"

	"github.com/xlttj/monswitch/pkg/config"
	"github.com/xlttj/monswitch/pkg/logging"
	"github.com/xlttj/monswitch/pkg/source"
)

// Target identifies which machine should own the shared monitor
type Target int

const (
	TargetWindows Target = iota
	TargetUbuntu
)

func (t Target) String() string {
	switch t {
	case TargetWindows:
		return "Windows"
	case TargetUbuntu:
		return "Ubuntu"
	}
	return "Unknown"
}

// Source names shown in logs
const (
	WindowsSourceName = "Windows Laptop"
	UbuntuSourceName  = "Ubuntu Desktop"
)

// CredentialSetter is implemented by sources that log in remotely
type CredentialSetter interface {
	SetCredentials(address, username, password string)
}

// Switcher hands the shared monitor between the local and remote source
type Switcher struct {
	windows source.MonitorSource
	ubuntu  source.MonitorSource
}

// New creates a switcher over two sources
func New(windows, ubuntu source.MonitorSource) *Switcher {
	return &Switcher{windows: windows, ubuntu: ubuntu}
}

// NewFromSettings builds the default local and SSH sources from stored settings
func NewFromSettings(ls config.LinuxSettings) *Switcher {
	return New(
		source.NewWindowsMonitorSource(WindowsSourceName, nil),
		source.NewLinuxMonitorSource(UbuntuSourceName, ls.Address, ls.Username, ls.Password),
	)
}

// ToWindows releases the remote display and extends the local desktop onto it
func (s *Switcher) ToWindows(ctx context.Context) {
	s.switchTo(ctx, TargetWindows, s.ubuntu, s.windows)
}

// ToUbuntu drops the local desktop to its internal display and wakes the remote one
func (s *Switcher) ToUbuntu(ctx context.Context) {
	s.switchTo(ctx, TargetUbuntu, s.windows, s.ubuntu)
}

// SwitchTo dispatches on target
func (s *Switcher) SwitchTo(ctx context.Context, target Target) {
	switch target {
	case TargetWindows:
		s.ToWindows(ctx)
	case TargetUbuntu:
		s.ToUbuntu(ctx)
	default:
		logging.LogError("Unknown switch target %d", int(target))
	}
}

// switchTo closes from and then opens to. A failing step is logged and the
// next one still runs; nothing is rolled back.
func (s *Switcher) switchTo(ctx context.Context, target Target, from, to source.MonitorSource) {
	start := time.Now()
	logging.LogDebug("Switching shared monitor to %s", target)

	if err := from.Close(ctx); err != nil {
		logging.LogError("close %s: %v", from.Name(), err)
	}
	if err := to.Open(ctx); err != nil {
		logging.LogError("open %s: %v", to.Name(), err)
	}

	logging.LogDebug("Switch to %s finished in %s", target, time.Since(start).Round(time.Millisecond))
}

// UpdateLinuxCredentials pushes freshly saved settings into the remote source
func (s *Switcher) UpdateLinuxCredentials(ls config.LinuxSettings) {
	setter, ok := s.ubuntu.(CredentialSetter)
	if !ok {
		logging.LogDebug("Source %s does not take credentials", s.ubuntu.Name())
		return
	}
	setter.SetCredentials(ls.Address, ls.Username, ls.Password)
	logging.LogDebug("Updated credentials for %s (%s@%s)", s.ubuntu.Name(), ls.Username, ls.Address)
}

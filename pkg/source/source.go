package source

import (
	"context"
	"errors"
)

// Sentinel error for a remote source without enough credentials to log in
var ErrMissingCredentials = errors.New("remote address and username must be configured")

// MonitorSource is one machine that can take over the shared monitor.
// Open hands the monitor to the machine, Close releases it.
type MonitorSource interface {
	Name() string
	Open(ctx context.Context) error
	Close(ctx context.Context) error
}

// Display-mode commands
const (
	WindowsOpenCommand  = "displayswitch.exe /extend"
	WindowsCloseCommand = "displayswitch.exe /internal"
	LinuxOpenCommand    = "xset -d :0 dpms force on"
	LinuxCloseCommand   = "xset -d :0 dpms force off"
)

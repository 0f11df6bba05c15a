package source

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/xlttj/monswitch/pkg/logging"
)

// Remote timeouts
const (
	DefaultSSHPort        = "22"
	DefaultDialTimeout    = 5 * time.Second
	DefaultCommandTimeout = 5 * time.Second
)

// LinuxMonitorSource drives the X11 display of a remote Linux desktop over SSH.
// A new connection is opened for every command.
type LinuxMonitorSource struct {
	name string

	mu       sync.RWMutex
	address  string
	username string
	password string

	DialTimeout    time.Duration
	CommandTimeout time.Duration
}

// NewLinuxMonitorSource creates a remote source with the given credentials
func NewLinuxMonitorSource(name, address, username, password string) *LinuxMonitorSource {
	return &LinuxMonitorSource{
		name:           name,
		address:        address,
		username:       username,
		password:       password,
		DialTimeout:    DefaultDialTimeout,
		CommandTimeout: DefaultCommandTimeout,
	}
}

func (l *LinuxMonitorSource) Name() string {
	return l.name
}

// SetCredentials replaces the login used by subsequent commands
func (l *LinuxMonitorSource) SetCredentials(address, username, password string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.address = address
	l.username = username
	l.password = password
}

// Address returns the configured remote address
func (l *LinuxMonitorSource) Address() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.address
}

// Open powers the remote display on
func (l *LinuxMonitorSource) Open(ctx context.Context) error {
	return l.sshCmd(ctx, LinuxOpenCommand)
}

// Close forces the remote display into DPMS off
func (l *LinuxMonitorSource) Close(ctx context.Context) error {
	return l.sshCmd(ctx, LinuxCloseCommand)
}

func (l *LinuxMonitorSource) sshCmd(ctx context.Context, command string) error {
	l.mu.RLock()
	address, username, password := strings.TrimSpace(l.address), strings.TrimSpace(l.username), l.password
	l.mu.RUnlock()

	if address == "" || username == "" {
		return fmt.Errorf("%s: %w", l.name, ErrMissingCredentials)
	}

	client, err := l.dial(ctx, address, username, password)
	if err != nil {
		return fmt.Errorf("%s: ssh connect to %s failed: %w", l.name, address, err)
	}
	defer client.Close()

	logging.LogInfo("execute remote command %s", command)

	stdout, stderr, err := l.run(ctx, client, command)
	logLines("stdout", stdout)
	logLines("stderr", stderr)
	if err != nil {
		return fmt.Errorf("%s: remote command %q failed: %w", l.name, command, err)
	}
	return nil
}

// dial connects and authenticates, bounding both by DialTimeout
func (l *LinuxMonitorSource) dial(ctx context.Context, address, username, password string) (*ssh.Client, error) {
	addr := hostPort(address)
	timeout := l.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	config := &ssh.ClientConfig{
		User: username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range questions {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))

	// A cancelled ctx aborts the handshake by closing the socket
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if !stop() {
		if err == nil {
			_ = clientConn.Close()
		}
		return nil, ctx.Err()
	}
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	// Handshake done; the command timeout takes over from here
	_ = conn.SetDeadline(time.Time{})
	logging.LogDebug("SSH connected to %s as %s", addr, username)
	return ssh.NewClient(clientConn, chans, reqs), nil
}

// run executes command in a new session and waits at most CommandTimeout
func (l *LinuxMonitorSource) run(ctx context.Context, client *ssh.Client, command string) (string, string, error) {
	timeout := l.CommandTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session, err := client.NewSession()
	if err != nil {
		return "", "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case err := <-done:
		return stdout.String(), stderr.String(), err
	case <-ctx.Done():
		// Closing the client unblocks session.Run
		_ = client.Close()
		<-done
		return stdout.String(), stderr.String(), fmt.Errorf("command timed out after %s: %w", timeout, ctx.Err())
	}
}

// hostPort appends the default SSH port when address has none
func hostPort(address string) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(strings.Trim(address, "[]"), DefaultSSHPort)
}

package source

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"
)

const (
	testUser     = "du"
	testPassword = "secret"
)

// serverBehavior controls how the test server answers exec requests
type serverBehavior struct {
	exitStatus uint32
	stderr     string
	delay      time.Duration
}

// testSSHServer accepts password logins and records exec requests
type testSSHServer struct {
	addr string
	serverBehavior

	mu       sync.Mutex
	commands []string
}

func startTestSSHServer(t *testing.T, behavior serverBehavior) *testSSHServer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate host key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("host signer: %v", err)
	}

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == testUser && string(pass) == testPassword {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", c.User())
		},
	}
	config.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	s := &testSSHServer{addr: ln.Addr().String(), serverBehavior: behavior}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.handle(conn, config)
		}
	}()
	return s
}

func (s *testSSHServer) handle(nConn net.Conn, config *ssh.ServerConfig) {
	defer nConn.Close()
	_, chans, reqs, err := ssh.NewServerConn(nConn, config)
	if err != nil {
		return
	}
	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			_ = newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		channel, requests, err := newChannel.Accept()
		if err != nil {
			return
		}
		go s.serveSession(channel, requests)
	}
}

func (s *testSSHServer) serveSession(channel ssh.Channel, requests <-chan *ssh.Request) {
	defer channel.Close()
	for req := range requests {
		if req.Type != "exec" {
			_ = req.Reply(false, nil)
			continue
		}
		var payload struct{ Command string }
		if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
			_ = req.Reply(false, nil)
			return
		}
		s.mu.Lock()
		s.commands = append(s.commands, payload.Command)
		s.mu.Unlock()
		_ = req.Reply(true, nil)

		if s.delay > 0 {
			time.Sleep(s.delay)
		}
		_, _ = io.WriteString(channel, "ok\n")
		if s.stderr != "" {
			_, _ = io.WriteString(channel.Stderr(), s.stderr)
		}
		status := struct{ Status uint32 }{s.exitStatus}
		_, _ = channel.SendRequest("exit-status", false, ssh.Marshal(&status))
		return
	}
}

func (s *testSSHServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func TestLinuxSourceRunsDPMSCommands(t *testing.T) {
	srv := startTestSSHServer(t, serverBehavior{})
	src := NewLinuxMonitorSource("Ubuntu Desktop", srv.addr, testUser, testPassword)

	if err := src.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := src.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	got := srv.Commands()
	want := []string{"xset -d :0 dpms force off", "xset -d :0 dpms force on"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("commands = %q, want %q", got, want)
	}
}

func TestLinuxSourceMissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		username string
	}{
		{"nothing", "", ""},
		{"no username", "ubuntu.lan", ""},
		{"blank address", "   ", "du"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewLinuxMonitorSource("Ubuntu Desktop", tt.address, tt.username, "pw")
			err := src.Open(context.Background())
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("expected ErrMissingCredentials, got %v", err)
			}
		})
	}
}

func TestLinuxSourceAuthFailure(t *testing.T) {
	srv := startTestSSHServer(t, serverBehavior{})
	src := NewLinuxMonitorSource("Ubuntu Desktop", srv.addr, testUser, "wrong")

	err := src.Open(context.Background())
	if err == nil {
		t.Fatal("expected authentication error")
	}
	if !strings.Contains(err.Error(), "ssh connect") {
		t.Errorf("unexpected error: %v", err)
	}
	if cmds := srv.Commands(); len(cmds) != 0 {
		t.Errorf("no command should run after failed auth, got %v", cmds)
	}
}

func TestLinuxSourceNonZeroExit(t *testing.T) {
	srv := startTestSSHServer(t, serverBehavior{
		exitStatus: 1,
		stderr:     "xset:  unable to open display \":0\"\n",
	})
	src := NewLinuxMonitorSource("Ubuntu Desktop", srv.addr, testUser, testPassword)

	err := src.Open(context.Background())
	var exitErr *ssh.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ssh.ExitError, got %v", err)
	}
	if exitErr.ExitStatus() != 1 {
		t.Errorf("exit status = %d, want 1", exitErr.ExitStatus())
	}
}

func TestLinuxSourceCommandTimeout(t *testing.T) {
	srv := startTestSSHServer(t, serverBehavior{delay: 2 * time.Second})
	src := NewLinuxMonitorSource("Ubuntu Desktop", srv.addr, testUser, testPassword)
	src.CommandTimeout = 100 * time.Millisecond

	start := time.Now()
	err := src.Close(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

// startSilentListener accepts TCP connections and never sends an SSH banner
func startSilentListener(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var mu sync.Mutex
	var conns []net.Conn
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	return ln.Addr().String()
}

func TestLinuxSourceHandshakeTimeout(t *testing.T) {
	addr := startSilentListener(t)
	src := NewLinuxMonitorSource("Ubuntu Desktop", addr, testUser, testPassword)
	src.DialTimeout = 300 * time.Millisecond

	start := time.Now()
	err := src.Open(context.Background())
	elapsed := time.Since(start)
	if err == nil {
		t.Fatal("expected handshake to time out")
	}
	if !strings.Contains(err.Error(), "ssh connect") {
		t.Errorf("unexpected error: %v", err)
	}
	if elapsed > time.Second {
		t.Errorf("handshake timeout took %s", elapsed)
	}
}

func TestLinuxSourceHandshakeCancelled(t *testing.T) {
	addr := startSilentListener(t)
	src := NewLinuxMonitorSource("Ubuntu Desktop", addr, testUser, testPassword)
	src.DialTimeout = 10 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := src.Close(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancelled handshake took %s", elapsed)
	}
}

func TestLinuxSourceSetCredentials(t *testing.T) {
	srv := startTestSSHServer(t, serverBehavior{})
	src := NewLinuxMonitorSource("Ubuntu Desktop", "", "", "")

	if err := src.Open(context.Background()); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials before settings, got %v", err)
	}

	src.SetCredentials(srv.addr, testUser, testPassword)
	if err := src.Open(context.Background()); err != nil {
		t.Fatalf("Open after SetCredentials: %v", err)
	}
	if src.Address() != srv.addr {
		t.Errorf("Address() = %q", src.Address())
	}
}

func TestHostPort(t *testing.T) {
	tests := map[string]string{
		"ubuntu.lan":      "ubuntu.lan:22",
		"ubuntu.lan:2222": "ubuntu.lan:2222",
		"10.0.0.5":        "10.0.0.5:22",
		"::1":             "[::1]:22",
		"[::1]":           "[::1]:22",
		"[::1]:2200":      "[::1]:2200",
	}
	for in, want := range tests {
		if got := hostPort(in); got != want {
			t.Errorf("hostPort(%q) = %q, want %q", in, got, want)
		}
	}
}

// Package expect drives the built wpactl binary through a pseudo
// terminal using go-expect, exercising the interactive shell end to end
// against a scripted control-socket daemon.
package expect

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
)

var (
	buildOnce sync.Once
	buildBin  string
	buildErr  error
)

// buildWpactl compiles the wpactl binary once per test run and returns
// its path. Tests are skipped entirely when no Go toolchain is on PATH.
func buildWpactl(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary tests in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available")
	}

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "wpactl-expect-*")
		if err != nil {
			buildErr = err
			return
		}
		buildBin = filepath.Join(dir, "wpactl")
		cmd := exec.Command("go", "build", "-o", buildBin, "github.com/avela/wpactl/cmd/wpactl")
		cmd.Dir = moduleRoot()
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("go build failed: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return buildBin
}

func moduleRoot() string {
	// tests/expect sits two levels below the module root.
	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		return "."
	}
	return root
}

// fakeDaemon answers the handful of commands the shell tests use.
type fakeDaemon struct {
	conn *net.UnixConn
	dir  string
}

// startFakeDaemon listens on <dir>/wlan0 like a real daemon control
// directory.
func startFakeDaemon(t *testing.T) *fakeDaemon {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "wlan0")
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", path, err)
	}

	d := &fakeDaemon{conn: conn, dir: dir}
	go d.serve()
	t.Cleanup(func() { conn.Close() })
	return d
}

func (d *fakeDaemon) serve() {
	buf := make([]byte, 4096)
	for {
		n, from, err := d.conn.ReadFromUnix(buf)
		if err != nil {
			return
		}
		var reply string
		switch cmd := string(buf[:n]); {
		case cmd == "PING":
			reply = "PONG\n"
		case cmd == "ATTACH", cmd == "DETACH":
			reply = "OK\n"
		case cmd == "STATUS":
			reply = "wpa_state=COMPLETED\nssid=homenet\n"
		case strings.HasPrefix(cmd, "GET_NETWORK"):
			reply = "FAIL\n"
		default:
			reply = "UNKNOWN COMMAND\n"
		}
		if _, err := d.conn.WriteToUnix([]byte(reply), from); err != nil {
			return
		}
	}
}

// ShellSession is a wpactl shell running on a pty.
type ShellSession struct {
	Console *expect.Console
	cmd     *exec.Cmd
}

// NewShellSession builds wpactl, starts a fake daemon, and launches
// "wpactl shell" wired to it.
func NewShellSession(t *testing.T) *ShellSession {
	t.Helper()

	bin := buildWpactl(t)
	daemon := startFakeDaemon(t)

	console, err := expect.NewConsole(expect.WithDefaultTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}

	cmd := exec.Command(bin, "shell", "--ctrl-dir", daemon.dir, "-i", "wlan0")
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"XDG_CONFIG_HOME="+t.TempDir(),
	)

	if err := cmd.Start(); err != nil {
		console.Close()
		t.Fatalf("failed to start wpactl shell: %v", err)
	}

	s := &ShellSession{Console: console, cmd: cmd}
	t.Cleanup(func() { s.Close() })
	return s
}

// SendLine sends text followed by a newline.
func (s *ShellSession) SendLine(text string) error {
	_, err := s.Console.SendLine(text)
	return err
}

// Expect waits for an exact string in the output.
func (s *ShellSession) Expect(str string) (string, error) {
	return s.Console.ExpectString(str)
}

// Wait blocks until the shell process exits.
func (s *ShellSession) Wait() error {
	return s.cmd.Wait()
}

// Close tears the session down, nudging the shell to quit first.
func (s *ShellSession) Close() error {
	_, _ = s.Console.SendLine("quit")

	done := make(chan struct{})
	go func() {
		_ = s.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = s.cmd.Process.Kill()
	}
	return s.Console.Close()
}

//go:build !windows

package transport

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// DefaultCtrlDir is where wpa_supplicant creates per-interface control
// sockets on most distributions.
const DefaultCtrlDir = "/var/run/wpa_supplicant"

// DefaultRequestTimeout bounds how long a request waits for its reply.
// Matches the reference control-interface client.
const DefaultRequestTimeout = 10 * time.Second

// DefaultCtrlPath returns the control socket path for the given
// interface name, or for wlan0 when iface is empty.
func DefaultCtrlPath(iface string) string {
	if iface == "" {
		iface = "wlan0"
	}
	return filepath.Join(DefaultCtrlDir, iface)
}

// UnixTransport is a Transport over a connected unix datagram socket
// pair: the daemon's control socket on one end and a client socket file
// created by Dial on the other. Not safe for concurrent use.
type UnixTransport struct {
	conn    *net.UnixConn
	local   string // client socket file, removed on Close
	timeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Dial opens a control connection to the daemon socket at ctrlPath.
// cliPath names the client-side socket file; when empty a unique name is
// chosen under the default temp directory. The client socket file is a
// side effect of the datagram socket family and is removed on Close.
func Dial(ctrlPath, cliPath string) (*UnixTransport, error) {
	return DialTimeout(ctrlPath, cliPath, DefaultRequestTimeout)
}

// DialTimeout is Dial with an explicit per-request reply timeout.
func DialTimeout(ctrlPath, cliPath string, timeout time.Duration) (*UnixTransport, error) {
	if cliPath == "" {
		cliPath = filepath.Join(os.TempDir(),
			fmt.Sprintf("wpactl_%d_%s", os.Getpid(), uuid.NewString()[:8]))
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	laddr := &net.UnixAddr{Name: cliPath, Net: "unixgram"}
	raddr := &net.UnixAddr{Name: ctrlPath, Net: "unixgram"}
	conn, err := net.DialUnix("unixgram", laddr, raddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial control socket %s: %w", ctrlPath, err)
	}

	return &UnixTransport{
		conn:    conn,
		local:   cliPath,
		timeout: timeout,
	}, nil
}

// LocalPath returns the client-side socket file path.
func (t *UnixTransport) LocalPath() string {
	return t.local
}

// isEvent reports whether a datagram is an unsolicited event rather than
// a command reply. Events carry a "<priority>" prefix; multi-interface
// daemons prefix with "IFNAME=".
func isEvent(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return b[0] == '<' || bytes.HasPrefix(b, []byte("IFNAME="))
}

// Request implements Transport. Event datagrams received while waiting
// for the reply are routed to onMessage; the reply itself terminates the
// wait. The reply is silently truncated to cap(reply) by the datagram
// read, which is the defined over-length behavior.
func (t *UnixTransport) Request(cmd []byte, reply []byte, onMessage MessageFunc) (int, Status) {
	if _, err := t.conn.Write(cmd); err != nil {
		return 0, StatusFailed
	}

	deadline := time.Now().Add(t.timeout)
	buf := make([]byte, len(reply))
	for {
		if err := t.conn.SetReadDeadline(deadline); err != nil {
			return 0, StatusFailed
		}
		n, err := t.conn.Read(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return 0, StatusTimeout
			}
			return 0, StatusFailed
		}
		if isEvent(buf[:n]) {
			if onMessage != nil {
				msg := make([]byte, n)
				copy(msg, buf[:n])
				onMessage(msg)
			}
			continue
		}
		return copy(reply, buf[:n]), StatusOK
	}
}

// Pending implements Transport using a zero-timeout poll(2) on the
// socket descriptor.
func (t *UnixTransport) Pending() Status {
	raw, err := t.conn.SyscallConn()
	if err != nil {
		return StatusFailed
	}

	st := StatusFailed
	ctlErr := raw.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		for {
			n, err := unix.Poll(fds, 0)
			if err == unix.EINTR {
				continue
			}
			switch {
			case err != nil:
				st = StatusFailed
			case n == 0:
				st = PendingNone
			default:
				st = PendingReady
			}
			return
		}
	})
	if ctlErr != nil {
		return StatusFailed
	}
	return st
}

// Recv implements Transport. It never blocks: with no datagram queued it
// fails immediately, which is how the daemon convention reports a recv
// without a prior pending check.
func (t *UnixTransport) Recv(reply []byte) (int, Status) {
	switch t.Pending() {
	case PendingReady:
	case PendingNone:
		return 0, StatusFailed
	default:
		return 0, StatusFailed
	}

	// A datagram is queued; the deadline only guards against it being
	// consumed between poll and read.
	if err := t.conn.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		return 0, StatusFailed
	}
	n, err := t.conn.Read(reply)
	if err != nil {
		return 0, StatusFailed
	}
	return n, StatusOK
}

// Close implements Transport. Safe to call more than once; the
// underlying socket and the client socket file are released on the first
// call only.
func (t *UnixTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
		if err := os.Remove(t.local); err != nil && !os.IsNotExist(err) && t.closeErr == nil {
			t.closeErr = err
		}
	})
	return t.closeErr
}

var _ Transport = (*UnixTransport)(nil)

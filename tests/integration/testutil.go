// Package integration provides end-to-end tests for wpactl against a
// scripted control-socket daemon speaking the real datagram protocol.
package integration

import (
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avela/wpactl/internal/ctrl"
)

// wpaDaemon imitates the daemon side of the control interface: one
// unixgram listener, canned replies, and event broadcast to attached
// clients.
type wpaDaemon struct {
	t    *testing.T
	conn *net.UnixConn
	path string

	mu       sync.Mutex
	attached map[string]*net.UnixAddr
	status   map[string]string
	scanRows []string
}

func startDaemon(t *testing.T) *wpaDaemon {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wlan0")
	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	require.NoError(t, err)

	d := &wpaDaemon{
		t:        t,
		conn:     conn,
		path:     path,
		attached: make(map[string]*net.UnixAddr),
		status: map[string]string{
			"wpa_state": "COMPLETED",
			"ssid":      "homenet",
			"bssid":     "aa:bb:cc:dd:ee:ff",
			"freq":      "5180",
		},
	}
	go d.serve()
	t.Cleanup(func() { conn.Close() })
	return d
}

func (d *wpaDaemon) serve() {
	buf := make([]byte, 16384)
	for {
		n, from, err := d.conn.ReadFromUnix(buf)
		if err != nil {
			return
		}
		d.reply(string(buf[:n]), from)
	}
}

func (d *wpaDaemon) reply(cmd string, from *net.UnixAddr) {
	send := func(s string) {
		_, _ = d.conn.WriteToUnix([]byte(s), from)
	}

	switch {
	case cmd == "PING":
		send("PONG\n")
	case cmd == "ATTACH":
		d.mu.Lock()
		d.attached[from.Name] = from
		d.mu.Unlock()
		send("OK\n")
	case cmd == "DETACH":
		d.mu.Lock()
		delete(d.attached, from.Name)
		d.mu.Unlock()
		send("OK\n")
	case cmd == "STATUS":
		var b strings.Builder
		d.mu.Lock()
		for k, v := range d.status {
			b.WriteString(k + "=" + v + "\n")
		}
		d.mu.Unlock()
		send(b.String())
	case cmd == "SCAN":
		// Real daemons emit the started event before the command reply
		// lands; both travel on the same socket.
		send("<2>CTRL-EVENT-SCAN-STARTED ")
		send("OK\n")
	case cmd == "SCAN_RESULTS":
		d.mu.Lock()
		rows := append([]string{"bssid / frequency / signal level / flags / ssid"}, d.scanRows...)
		d.mu.Unlock()
		send(strings.Join(rows, "\n") + "\n")
	default:
		send("UNKNOWN COMMAND\n")
	}
}

// broadcast pushes an unsolicited event to every attached client.
func (d *wpaDaemon) broadcast(event string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, addr := range d.attached {
		_, err := d.conn.WriteToUnix([]byte(event), addr)
		require.NoError(d.t, err)
	}
}

func (d *wpaDaemon) attachedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.attached)
}

func (d *wpaDaemon) setScanRows(rows ...string) {
	d.mu.Lock()
	d.scanRows = rows
	d.mu.Unlock()
}

// openConn dials the fake daemon through the public builder.
func openConn(t *testing.T, d *wpaDaemon) *ctrl.Conn {
	t.Helper()
	conn, err := ctrl.New().
		CtrlPath(d.path).
		CliPath(filepath.Join(t.TempDir(), "cli")).
		RequestTimeout(2 * time.Second).
		Open()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitPending polls the monitor until an event is queued or the deadline
// passes.
func waitPending(t *testing.T, mon *ctrl.Monitor, wait time.Duration) {
	t.Helper()
	deadline := time.Now().Add(wait)
	for {
		ok, err := mon.Pending()
		require.NoError(t, err)
		if ok {
			return
		}
		require.True(t, time.Now().Before(deadline), "no event became pending")
		time.Sleep(5 * time.Millisecond)
	}
}

package ctrl

import (
	"fmt"
	"unicode/utf8"

	"github.com/avela/wpactl/internal/transport"
)

// Monitor is an attached control connection: the same transport as the
// Conn it came from, registered with the daemon for unsolicited event
// delivery. Only a Monitor may poll and drain events.
type Monitor struct {
	t       transport.Transport
	bufSize int
}

// Request sends a command and returns the reply. onMessage, when
// non-nil, receives any event text the transport observes while the
// request waits; see MessageFunc for the reentrancy prohibition.
func (m *Monitor) Request(cmd string, onMessage MessageFunc) (string, error) {
	return request(m.t, m.bufSize, cmd, onMessage)
}

// Pending reports without blocking whether at least one event message is
// queued by the daemon for this connection.
func (m *Monitor) Pending() (bool, error) {
	if m.t == nil {
		return false, ErrClosed
	}
	switch st := m.t.Pending(); st {
	case transport.PendingNone:
		return false, nil
	case transport.PendingReady:
		return true, nil
	case transport.StatusFailed:
		return false, ErrFailed
	default:
		return false, &UnknownStatusError{Code: int(st)}
	}
}

// Recv drains exactly one queued event message. Calling Recv without a
// prior successful Pending()==true is a usage error reported as
// ErrFailed. The daemon owns the queue; this layer buffers nothing.
func (m *Monitor) Recv() (string, error) {
	if m.t == nil {
		return "", ErrClosed
	}
	reply := make([]byte, m.bufSize)
	n, st := m.t.Recv(reply)
	if err := statusErr(st); err != nil {
		return "", err
	}
	if n > len(reply) {
		n = len(reply)
	}
	body := reply[:n]
	if !utf8.Valid(body) {
		return "", &DecodeError{Op: "recv"}
	}
	return string(body), nil
}

// Detach unregisters from event delivery. On success ownership of the
// transport moves to the returned Conn and the receiver becomes inert;
// on failure the receiver is unchanged and remains attached.
func (m *Monitor) Detach() (*Conn, error) {
	if m.t == nil {
		return nil, ErrClosed
	}
	reply, err := request(m.t, m.bufSize, "DETACH", nil)
	if err != nil {
		return nil, fmt.Errorf("detach: %w", err)
	}
	if reply != attachOK {
		return nil, fmt.Errorf("detach rejected with %q: %w", reply, ErrFailed)
	}
	c := &Conn{t: m.t, bufSize: m.bufSize}
	m.t = nil
	return c, nil
}

// Close releases the transport. No-op after a successful Detach or a
// previous Close.
func (m *Monitor) Close() error {
	if m.t == nil {
		return nil
	}
	t := m.t
	m.t = nil
	return t.Close()
}

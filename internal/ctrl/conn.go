package ctrl

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/avela/wpactl/internal/transport"
)

// DefaultReplyBufSize is the fixed reply buffer capacity shared by
// request and recv. Replies longer than this are truncated by the
// transport.
const DefaultReplyBufSize = 10240

// attachOK is the exact confirmation the daemon sends for a successful
// ATTACH or DETACH, trailing newline included.
const attachOK = "OK\n"

// MessageFunc receives unsolicited event text observed while a request
// is waiting for its reply. It runs synchronously on the requesting
// goroutine, within the request call, and must not call back into the
// connection (no Request, Attach, Detach, Recv, or Close).
type MessageFunc func(msg string)

// callbackMu serializes requests that carry a message callback. The
// daemon-side control library multiplexes one callback slot for the
// whole process, so at most one request-with-callback may be in flight
// system-wide; concurrent callers on different connections queue here.
// A known throughput limitation.
var callbackMu sync.Mutex

// Conn is a detached control connection. It owns its transport until
// Close or a successful Attach.
type Conn struct {
	t       transport.Transport
	bufSize int
}

// Request sends a command and returns the daemon's reply text.
func (c *Conn) Request(cmd string) (string, error) {
	return request(c.t, c.bufSize, cmd, nil)
}

// Attach registers the connection for unsolicited event delivery. On
// success ownership of the transport moves to the returned Monitor and
// the receiver becomes inert. On failure the receiver is unchanged:
// still valid for requests and still the owner of the transport.
func (c *Conn) Attach() (*Monitor, error) {
	if c.t == nil {
		return nil, ErrClosed
	}
	reply, err := request(c.t, c.bufSize, "ATTACH", nil)
	if err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	if reply != attachOK {
		return nil, fmt.Errorf("attach rejected with %q: %w", reply, ErrFailed)
	}
	m := &Monitor{t: c.t, bufSize: c.bufSize}
	c.t = nil
	return m, nil
}

// Close releases the transport. It is a no-op on a connection whose
// ownership has already moved or that has already been closed, so the
// underlying close happens exactly once per open.
func (c *Conn) Close() error {
	if c.t == nil {
		return nil
	}
	t := c.t
	c.t = nil
	return t.Close()
}

// request is the shared request/reply engine for both states.
func request(t transport.Transport, bufSize int, cmd string, onMessage MessageFunc) (string, error) {
	if t == nil {
		return "", ErrClosed
	}
	if cmd == "" {
		return "", &InvalidCommandError{Reason: "empty command"}
	}
	if strings.IndexByte(cmd, 0) >= 0 {
		return "", &InvalidCommandError{Reason: "embedded NUL byte"}
	}

	var cb transport.MessageFunc
	if onMessage != nil {
		callbackMu.Lock()
		defer callbackMu.Unlock()
		cb = func(msg []byte) { onMessage(string(msg)) }
	}

	reply := make([]byte, bufSize)
	n, st := t.Request([]byte(cmd), reply, cb)
	if err := statusErr(st); err != nil {
		return "", err
	}
	if n > len(reply) {
		n = len(reply)
	}
	body := reply[:n]
	if !utf8.Valid(body) {
		return "", &DecodeError{Op: "request"}
	}
	return string(body), nil
}

// statusErr maps a daemon status code onto the package error taxonomy.
func statusErr(st transport.Status) error {
	switch st {
	case transport.StatusOK:
		return nil
	case transport.StatusFailed:
		return ErrFailed
	case transport.StatusTimeout:
		return ErrTimeout
	default:
		return &UnknownStatusError{Code: int(st)}
	}
}

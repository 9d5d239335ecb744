package ctrl

import (
	"fmt"
	"time"

	"github.com/avela/wpactl/internal/transport"
)

// DialFunc opens a transport for a control socket path pair. Injected in
// tests to substitute a mock transport.
type DialFunc func(ctrlPath, cliPath string) (transport.Transport, error)

// Builder accumulates connection parameters before Open. The zero value
// via New targets the default daemon socket with a daemon-assigned
// client path and the default reply buffer.
type Builder struct {
	ctrlPath string
	cliPath  string
	bufSize  int
	timeout  time.Duration
	dial     DialFunc
}

// New returns a Builder with defaults.
func New() *Builder {
	return &Builder{
		ctrlPath: transport.DefaultCtrlPath(""),
		bufSize:  DefaultReplyBufSize,
		timeout:  transport.DefaultRequestTimeout,
	}
}

// CtrlPath sets the daemon control socket path.
func (b *Builder) CtrlPath(p string) *Builder {
	if p != "" {
		b.ctrlPath = p
	}
	return b
}

// CliPath sets the client-side socket path. Empty leaves the choice to
// the transport.
func (b *Builder) CliPath(p string) *Builder {
	b.cliPath = p
	return b
}

// ReplyBufSize overrides the fixed reply buffer capacity.
func (b *Builder) ReplyBufSize(n int) *Builder {
	if n > 0 {
		b.bufSize = n
	}
	return b
}

// RequestTimeout overrides the transport's per-request reply timeout.
func (b *Builder) RequestTimeout(d time.Duration) *Builder {
	if d > 0 {
		b.timeout = d
	}
	return b
}

// Dial injects the transport constructor.
func (b *Builder) Dial(d DialFunc) *Builder {
	b.dial = d
	return b
}

// Open establishes the control connection and returns it detached. Any
// transport-level open failure is reported as ErrInterface.
func (b *Builder) Open() (*Conn, error) {
	dial := b.dial
	if dial == nil {
		timeout := b.timeout
		dial = func(ctrlPath, cliPath string) (transport.Transport, error) {
			return transport.DialTimeout(ctrlPath, cliPath, timeout)
		}
	}
	t, err := dial(b.ctrlPath, b.cliPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterface, err)
	}
	if t == nil {
		return nil, ErrInterface
	}
	return &Conn{t: t, bufSize: b.bufSize}, nil
}

// Package transport implements the daemon-facing side of the control
// interface: a unix datagram connection to a wpa_supplicant/hostapd
// control socket, exposed through the same narrow primitives the daemon
// defines (request, pending, recv, close).
//
// The package deliberately reports outcomes as raw daemon status codes
// rather than errors; the ctrl package owns the mapping to the public
// error taxonomy.
package transport

// Status is a daemon control-interface status code. The daemon convention
// is 0 for success, -1 for a generic failure and -2 for a request
// timeout; any other value is carried verbatim.
type Status int

const (
	StatusOK      Status = 0
	StatusFailed  Status = -1
	StatusTimeout Status = -2
)

// Pending results. StatusFailed doubles as the pending failure code.
const (
	PendingNone  Status = 0
	PendingReady Status = 1
)

// MessageFunc receives one unsolicited event datagram observed while a
// request is waiting for its reply. The slice is owned by the callee.
type MessageFunc func(msg []byte)

// Transport is the narrow surface the connection state machine depends
// on. Implementations are not safe for concurrent use; each value is
// privately owned by exactly one connection at a time.
type Transport interface {
	// Request sends cmd and blocks until the reply datagram arrives, a
	// transport failure occurs, or the transport's own timeout elapses.
	// The reply is written into reply (truncated to its capacity) and the
	// written length is returned. Unsolicited event datagrams arriving
	// while waiting are handed to onMessage when non-nil, otherwise
	// dropped.
	Request(cmd []byte, reply []byte, onMessage MessageFunc) (int, Status)

	// Pending reports without blocking whether an event datagram is
	// queued: PendingReady, PendingNone, or StatusFailed.
	Pending() Status

	// Recv drains exactly one queued event datagram into reply. Calling
	// Recv with nothing queued is a usage error reported as StatusFailed.
	Recv(reply []byte) (int, Status)

	// Close releases the connection. Callers must close exactly once per
	// successfully opened transport.
	Close() error
}

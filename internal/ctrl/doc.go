// Package ctrl provides the connection state machine for a
// wpa_supplicant/hostapd control channel.
//
// A connection is opened detached (Conn), able to issue synchronous
// requests. Attach registers it for unsolicited event delivery and
// returns a Monitor; Detach is the symmetric transition back. Ownership
// of the underlying transport moves with each successful transition and
// is never duplicated: whichever value is live closes the transport
// exactly once, and a moved-from value is inert (operations return
// ErrClosed, Close is a no-op).
//
// Failed transitions are transactional. If ATTACH or DETACH does not
// confirm with "OK\n", the caller keeps the original value, still valid
// for requests and still responsible for Close.
//
// All operations block the calling goroutine; there is no background
// machinery. A single connection value must not be used from multiple
// goroutines without external synchronization.
package ctrl

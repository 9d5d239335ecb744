// Package events parses unsolicited control-interface messages.
//
// The daemon prefixes each event with its log priority in angle
// brackets, e.g. "<2>CTRL-EVENT-CONNECTED - Connection to ... completed".
// Multi-interface daemons add an "IFNAME=<iface> " prefix ahead of the
// priority.
package events

import (
	"strconv"
	"strings"
	"time"
)

// Daemon log priorities.
const (
	PriorityMsgDump = 0
	PriorityDebug   = 1
	PriorityInfo    = 2
	PriorityWarning = 3
	PriorityError   = 4
)

// Well-known event names.
const (
	Connected       = "CTRL-EVENT-CONNECTED"
	Disconnected    = "CTRL-EVENT-DISCONNECTED"
	ScanStarted     = "CTRL-EVENT-SCAN-STARTED"
	ScanResults     = "CTRL-EVENT-SCAN-RESULTS"
	Terminating     = "CTRL-EVENT-TERMINATING"
	NetworkNotFound = "CTRL-EVENT-NETWORK-NOT-FOUND"
	AuthReject      = "CTRL-EVENT-AUTH-REJECT"
)

// Event is one parsed unsolicited message.
type Event struct {
	// Iface is set when the daemon multiplexes interfaces (IFNAME= prefix).
	Iface string

	// Priority is the daemon log level; PriorityInfo when the message
	// carried no prefix.
	Priority int

	// Name is the first token of the message body, e.g. CTRL-EVENT-CONNECTED.
	Name string

	// Payload is the rest of the body after the name.
	Payload string

	// Raw is the message as received.
	Raw string

	// ReceivedAt is when this process drained the event.
	ReceivedAt time.Time
}

// IsEvent reports whether a control-interface message is an unsolicited
// event rather than a command reply.
func IsEvent(s string) bool {
	return strings.HasPrefix(s, "<") || strings.HasPrefix(s, "IFNAME=")
}

// Parse splits a raw event message into its parts. It never fails: a
// message without the expected prefixes comes back with the whole text
// as Name/Payload and PriorityInfo.
func Parse(raw string) Event {
	ev := Event{
		Priority:   PriorityInfo,
		Raw:        raw,
		ReceivedAt: time.Now(),
	}

	body := raw
	if rest, ok := strings.CutPrefix(body, "IFNAME="); ok {
		if iface, tail, found := strings.Cut(rest, " "); found {
			ev.Iface = iface
			body = tail
		}
	}
	if strings.HasPrefix(body, "<") {
		if end := strings.IndexByte(body, '>'); end > 1 {
			if p, err := strconv.Atoi(body[1:end]); err == nil {
				ev.Priority = p
				body = body[end+1:]
			}
		}
	}

	body = strings.TrimRight(body, "\n")
	name, payload, _ := strings.Cut(body, " ")
	ev.Name = name
	ev.Payload = strings.TrimSpace(payload)
	return ev
}

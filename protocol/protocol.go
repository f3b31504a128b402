// Package protocol is the JSON wire format spoken by the vision sidecar:
// every WebSocket message is an envelope {"t": type, "p": payload}.
package protocol

import "encoding/json"

// Version is the protocol version announced in Hello and Welcome
const Version = 1

// Message types
const (
	MsgHello     = "hello"     // sidecar -> game, first message
	MsgWelcome   = "welcome"   // game -> sidecar, reply to hello
	MsgLandmarks = "landmarks" // sidecar -> game, one detector frame with hands
	MsgNone      = "none"      // sidecar -> game, frame without hands
	MsgError     = "error"     // game -> sidecar, rejected message
)

// Envelope wraps every message
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

// Hello opens a sidecar session
type Hello struct {
	V    int    `json:"v"`
	Name string `json:"name,omitempty"` // detector name, for logs
}

// Welcome acknowledges a Hello
type Welcome struct {
	V      int  `json:"v"`
	TickHz int  `json:"tickHz"`
	Mirror bool `json:"mirror"` // the game mirrors x itself; sidecars send raw camera coordinates
}

// Landmarks is one detector frame
type Landmarks struct {
	Seq   int64  `json:"seq,omitempty"`
	Hands []Hand `json:"hands"`
}

// Empty is the payload of MsgNone
type Empty struct {
	Seq int64 `json:"seq,omitempty"`
}

// Error reports a rejected message back to the sidecar
type Error struct {
	Reason string `json:"reason"`
}

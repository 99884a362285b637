// Package packet builds the raw link-layer frames a scan sends and
// receives (ARP requests/replies, TCP SYN/RST, and the self-addressed
// heartbeat), and defines the abstract Reader/Sender capabilities the
// scanner core drives them through.
package packet

import "time"

// DefaultSendDelay throttles probe transmission to avoid link saturation.
// It is a tunable default, not a hard constant — callers that need a
// different pace configure scanner.Config.SendDelay directly.
const DefaultSendDelay = 50 * time.Microsecond

// Reader is a blocking "next frame" capability. A single call's returned
// slice is only valid until the next call to NextFrame — implementations
// are free to reuse internal storage. Reader must be safe to share, by
// reference, between the goroutine that constructs it and exactly one
// additional reader goroutine.
type Reader interface {
	NextFrame() ([]byte, error)
}

// Sender is a blocking "send frame" capability, safe to share, by
// reference, between the probing goroutine and a stage's reader
// goroutine (which sends RST frames).
type Sender interface {
	Send(frame []byte) error
}

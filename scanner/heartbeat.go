package scanner

import (
	"log/slog"
	"net"

	"lanscan/packet"
)

// Heartbeat sends a self-addressed TCP SYN to unblock a stage's reader
// goroutine during idle drain. It carries no information; failures are
// logged and swallowed since a dropped heartbeat just means the reader
// waits for the next one (or for a real reply) instead of aborting the
// stage.
type Heartbeat struct {
	SourceMAC  net.HardwareAddr
	SourceIPv4 net.IP
	SourcePort uint16
	Writer     packet.Sender
}

// Beat sends one heartbeat frame.
func (h Heartbeat) Beat() {
	frame := packet.NewHeartbeat(h.SourceMAC, h.SourceIPv4, h.SourcePort)
	if err := h.Writer.Send(frame); err != nil {
		slog.Debug("heartbeat send failed", "error", err)
	}
}

package packet

import (
	"bytes"
	"net"
	"testing"
)

func TestNewHeartbeatIsNotParsedAsSYNACK(t *testing.T) {
	mac := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	ip := net.ParseIP("192.168.1.10").To4()

	frame := NewHeartbeat(mac, ip, 34521)

	// It must never satisfy a SYN/ACK filter addressed to the same
	// host/port — a heartbeat only needs to unblock a reader, not
	// survive the acceptance filter.
	if _, ok := ParseSYNACK(frame, SYNACKFilter{DstMAC: mac, DstIPv4: ip, DstPort: 34521}); ok {
		t.Fatal("heartbeat frame must not parse as a SYN/ACK")
	}
}

func TestNewHeartbeatIsDeterministic(t *testing.T) {
	mac := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	ip := net.ParseIP("192.168.1.10").To4()

	a := NewHeartbeat(mac, ip, 34521)
	b := NewHeartbeat(mac, ip, 34521)

	if !bytes.Equal(a, b) {
		t.Fatal("two heartbeats built from the same inputs must be byte-identical")
	}
}

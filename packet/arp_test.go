package packet

import (
	"net"
	"testing"
)

func TestNewARPRequestIsNotParsedAsReply(t *testing.T) {
	src := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	frame := NewARPRequest(net.ParseIP("192.168.1.10"), src, net.ParseIP("192.168.1.20"))

	if len(frame) == 0 {
		t.Fatal("expected non-empty frame")
	}

	// A request is never itself parsed as a reply.
	if _, ok := ParseARPReply(frame); ok {
		t.Fatal("ARP request must not parse as an ARP reply")
	}
}

func TestARPReplyRoundTrip(t *testing.T) {
	senderMAC := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02}
	senderIP := net.ParseIP("192.168.1.20").To4()
	requesterMAC := net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}
	requesterIP := net.ParseIP("192.168.1.10").To4()

	frame := NewARPReply(senderIP, senderMAC, requesterIP, requesterMAC)

	info, ok := ParseARPReply(frame)
	if !ok {
		t.Fatal("expected ParseARPReply to accept a well-formed reply")
	}

	if !info.SenderIP.Equal(senderIP) {
		t.Errorf("SenderIP = %v, want %v", info.SenderIP, senderIP)
	}
	if info.SenderMAC.String() != senderMAC.String() {
		t.Errorf("SenderMAC = %v, want %v", info.SenderMAC, senderMAC)
	}
	if !info.TargetIP.Equal(requesterIP) {
		t.Errorf("TargetIP = %v, want %v", info.TargetIP, requesterIP)
	}
	if info.TargetMAC.String() != requesterMAC.String() {
		t.Errorf("TargetMAC = %v, want %v", info.TargetMAC, requesterMAC)
	}
}

func TestParseARPReplyRejectsGarbage(t *testing.T) {
	if _, ok := ParseARPReply([]byte{0x01, 0x02, 0x03}); ok {
		t.Fatal("expected garbage input to be rejected")
	}
}

func TestNewARPRequestPanicsOnIPv6(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on IPv6 source address")
		}
	}()
	NewARPRequest(net.ParseIP("::1"), net.HardwareAddr{1, 2, 3, 4, 5, 6}, net.ParseIP("192.168.1.1"))
}

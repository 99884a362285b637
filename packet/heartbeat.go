package packet

import "net"

// NewHeartbeat builds a TCP SYN frame addressed to the scanner's own
// MAC/IP/port. Its only purpose is to unblock a Reader that is blocked
// in NextFrame so the reader goroutine can observe that its idle window
// has elapsed. It carries no other meaning and is never matched by the
// SYN stage's acceptance filter (that filter requires the source IP to
// belong to a scanned target device, which the scanner's own IP never
// is).
func NewHeartbeat(mac net.HardwareAddr, ipv4 net.IP, port uint16) []byte {
	return buildTCP(mac, mac, ipv4, ipv4, port, port, 0, tcpFlags{syn: true})
}

package packet

import "net"

// NewRST builds a TCP RST frame carrying sequence number seq — the
// acknowledgement number harvested from the target's SYN/ACK — so the
// peer accepts the reset and the half-open connection is torn down
// immediately.
func NewRST(srcMAC, dstMAC net.HardwareAddr, srcIPv4, dstIPv4 net.IP, srcPort, dstPort uint16, seq uint32) []byte {
	return buildTCP(srcMAC, dstMAC, srcIPv4, dstIPv4, srcPort, dstPort, seq, tcpFlags{rst: true})
}

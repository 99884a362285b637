package packet

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// ARPReplyInfo holds the fields the ARP stage reader cares about from a
// parsed ARP reply frame.
type ARPReplyInfo struct {
	SenderIP  net.IP
	SenderMAC net.HardwareAddr
	TargetIP  net.IP
	TargetMAC net.HardwareAddr
}

// ParseARPReply parses frame as an Ethernet+ARP frame and reports whether
// it is a well-formed ARP reply. Any parse failure or non-reply frame
// returns ok=false — callers are expected to discard those silently,
// since hostile or unrelated traffic is normal on a raw socket.
func ParseARPReply(frame []byte) (info ARPReplyInfo, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	pkt := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.NoCopy)
	arpLayer := pkt.Layer(layers.LayerTypeARP)
	if arpLayer == nil {
		return ARPReplyInfo{}, false
	}

	arp, valid := arpLayer.(*layers.ARP)
	if !valid || arp.Operation != layers.ARPReply {
		return ARPReplyInfo{}, false
	}

	return ARPReplyInfo{
		SenderIP:  net.IP(arp.SourceProtAddress),
		SenderMAC: net.HardwareAddr(arp.SourceHwAddress),
		TargetIP:  net.IP(arp.DstProtAddress),
		TargetMAC: net.HardwareAddr(arp.DstHwAddress),
	}, true
}

// SYNACKInfo holds the fields the SYN stage reader cares about from a
// parsed TCP SYN/ACK frame.
type SYNACKInfo struct {
	SrcIP   net.IP
	SrcPort uint16
	DstIP   net.IP
	DstPort uint16
	Ack     uint32
}

// SYNACKFilter describes the acceptance criteria a candidate reply frame
// must match before the SYN stage considers it a response to its own
// probe: destination MAC/IP/port must equal the scanner's own.
type SYNACKFilter struct {
	DstMAC  net.HardwareAddr
	DstIPv4 net.IP
	DstPort uint16
}

// ParseSYNACK parses frame as Ethernet+IPv4+TCP and reports whether it is
// a SYN/ACK frame addressed to filter's destination fields. Any parse
// failure, non-TCP frame, wrong destination, or missing SYN|ACK flags
// returns ok=false.
func ParseSYNACK(frame []byte, filter SYNACKFilter) (info SYNACKInfo, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	pkt := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.NoCopy)

	ethLayer := pkt.Layer(layers.LayerTypeEthernet)
	eth, valid := ethLayer.(*layers.Ethernet)
	if !valid || !macEqual(eth.DstMAC, filter.DstMAC) {
		return SYNACKInfo{}, false
	}

	ipLayer := pkt.Layer(layers.LayerTypeIPv4)
	ip4, valid := ipLayer.(*layers.IPv4)
	if !valid || !ip4.DstIP.Equal(filter.DstIPv4) {
		return SYNACKInfo{}, false
	}

	tcpLayer := pkt.Layer(layers.LayerTypeTCP)
	tcp, valid := tcpLayer.(*layers.TCP)
	if !valid || !tcp.SYN || !tcp.ACK {
		return SYNACKInfo{}, false
	}
	if uint16(tcp.DstPort) != filter.DstPort {
		return SYNACKInfo{}, false
	}

	return SYNACKInfo{
		SrcIP:   ip4.SrcIP,
		SrcPort: uint16(tcp.SrcPort),
		DstIP:   ip4.DstIP,
		DstPort: uint16(tcp.DstPort),
		Ack:     tcp.Ack,
	}, true
}

func macEqual(a, b net.HardwareAddr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package packet

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// NewARPRequest builds a broadcast ARP request frame asking "who has
// targetIPv4", sent from srcMAC/srcIPv4.
func NewARPRequest(srcIPv4 net.IP, srcMAC net.HardwareAddr, targetIPv4 net.IP) []byte {
	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       layers.EthernetBroadcast,
		EthernetType: layers.EthernetTypeARP,
	}

	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte(srcMAC),
		SourceProtAddress: []byte(mustIPv4(srcIPv4)),
		DstHwAddress:      zeroMAC,
		DstProtAddress:    []byte(mustIPv4(targetIPv4)),
	}

	return serialize(&eth, &arp)
}

// NewARPReply builds an ARP reply frame from srcIPv4/srcMAC (the
// answering host) addressed to dstIPv4/dstMAC (the original requester).
// This is a test fixture — the scan core never sends ARP replies itself,
// it only parses ones observed on the wire.
func NewARPReply(srcIPv4 net.IP, srcMAC net.HardwareAddr, dstIPv4 net.IP, dstMAC net.HardwareAddr) []byte {
	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeARP,
	}

	arp := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPReply,
		SourceHwAddress:   []byte(srcMAC),
		SourceProtAddress: []byte(mustIPv4(srcIPv4)),
		DstHwAddress:      []byte(dstMAC),
		DstProtAddress:    []byte(mustIPv4(dstIPv4)),
	}

	return serialize(&eth, &arp)
}

var zeroMAC = net.HardwareAddr{0, 0, 0, 0, 0, 0}

func mustIPv4(ip net.IP) net.IP {
	v4 := ip.To4()
	if v4 == nil {
		panic("packet: address is not a valid IPv4 address")
	}
	return v4
}

func serialize(layer ...gopacket.SerializableLayer) []byte {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths:       true,
		ComputeChecksums: true,
	}
	if err := gopacket.SerializeLayers(buf, opts, layer...); err != nil {
		panic("packet: failed to serialize frame: " + err.Error())
	}
	return buf.Bytes()
}

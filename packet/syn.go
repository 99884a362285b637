package packet

import (
	"net"

	"github.com/google/gopacket/layers"
)

// NewSYN builds a TCP SYN frame: a half-open scan probe from
// srcMAC/srcIPv4:srcPort to dstMAC/dstIPv4:dstPort.
func NewSYN(srcMAC, dstMAC net.HardwareAddr, srcIPv4, dstIPv4 net.IP, srcPort, dstPort uint16) []byte {
	return buildTCP(srcMAC, dstMAC, srcIPv4, dstIPv4, srcPort, dstPort, 0, tcpFlags{syn: true})
}

type tcpFlags struct {
	syn bool
	rst bool
}

func buildTCP(srcMAC, dstMAC net.HardwareAddr, srcIPv4, dstIPv4 net.IP, srcPort, dstPort uint16, seq uint32, flags tcpFlags) []byte {
	eth := layers.Ethernet{
		SrcMAC:       srcMAC,
		DstMAC:       dstMAC,
		EthernetType: layers.EthernetTypeIPv4,
	}

	ip := layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Id:       0,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    mustIPv4(srcIPv4),
		DstIP:    mustIPv4(dstIPv4),
	}

	tcp := layers.TCP{
		SrcPort:    layers.TCPPort(srcPort),
		DstPort:    layers.TCPPort(dstPort),
		Seq:        seq,
		DataOffset: 5,
		SYN:        flags.syn,
		RST:        flags.rst,
	}

	if err := tcp.SetNetworkLayerForChecksum(&ip); err != nil {
		panic("packet: failed to set network layer for TCP checksum: " + err.Error())
	}

	return serialize(&eth, &ip, &tcp)
}

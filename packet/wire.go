package packet

import (
	"fmt"
	"sync"

	"github.com/google/gopacket/pcap"

	"lanscan/network"
)

const snapLen = 65535

// wireReader and wireWriter share one *pcap.Handle. A *pcap.Handle itself
// guards each individual ReadPacketData/WritePacketData call, but callers
// in this package issue calls from dedicated goroutines and the mutex
// here exists to make that contract explicit rather than to work around
// a race in pcap itself.
type wireReader struct {
	mu     sync.Mutex
	handle *pcap.Handle
}

type wireWriter struct {
	mu     sync.Mutex
	handle *pcap.Handle
}

// NewWire opens a live pcap capture on iface and returns a Reader/Sender
// pair backed by it. Both share the same handle, and neither exposes a
// Close method. Callers open one pair per scan (a full scan uses it for
// both its ARP and SYN stages) and let it be garbage collected once the
// scan's goroutines exit.
func NewWire(iface *network.InterfaceInfo) (Reader, Sender, error) {
	handle, err := pcap.OpenLive(iface.Name, snapLen, true, pcap.BlockForever)
	if err != nil {
		return nil, nil, newWireError("opening live capture on "+iface.Name, err)
	}

	filter := fmt.Sprintf("(arp or (tcp and dst host %s)) and ether dst %s",
		iface.IPv4.String(), iface.MAC.String())
	if err := handle.SetBPFFilter(filter); err != nil {
		handle.Close()
		return nil, nil, newWireError("setting capture filter", err)
	}

	reader := &wireReader{handle: handle}
	writer := &wireWriter{handle: handle}
	return reader, writer, nil
}

func (w *wireReader) NextFrame() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, _, err := w.handle.ReadPacketData()
	if err != nil {
		return nil, newWireError("reading frame", err)
	}
	return data, nil
}

func (w *wireWriter) Send(frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.handle.WritePacketData(frame); err != nil {
		return newWireError("writing frame", err)
	}
	return nil
}

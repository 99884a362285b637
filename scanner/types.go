// Package scanner implements the ARP host-discovery and TCP SYN
// half-open port-scan stages, and their composition into a full scan.
package scanner

import "net"

// Device is a host discovered on the LAN, keyed by IPv4 within a scan.
type Device struct {
	Hostname      string
	IPv4          net.IP
	MAC           net.HardwareAddr
	Vendor        string
	IsCurrentHost bool
	OpenPorts     []Port
}

// Port is an open TCP port observed on a Device.
type Port struct {
	ID      uint16
	Service string
}

// SynScanResult pairs a device with one of its observed open ports.
type SynScanResult struct {
	Device   Device
	OpenPort Port
}

// MessageKind discriminates the ScanMessage sum type. ScanMessage is
// closed: consumers switch on Kind and a default case should be treated
// as a programming error, not a silently ignored variant.
type MessageKind int

const (
	MessageDone MessageKind = iota
	MessageProgress
	MessageArpDevice
	MessageSynDevice
	MessageSynResult
)

// ScanMessage is the sum type streamed to a scan's Results channel. Only
// the field matching Kind is populated.
type ScanMessage struct {
	Kind MessageKind

	// MessageProgress
	ProgressTarget net.IP
	ProgressPort   uint16 // 0 when not applicable (ARP progress has no port)

	// MessageArpDevice, MessageSynDevice
	Device Device

	// MessageSynResult
	SynResult SynScanResult
}

func doneMessage() ScanMessage { return ScanMessage{Kind: MessageDone} }

func progressMessage(target net.IP, port uint16) ScanMessage {
	return ScanMessage{Kind: MessageProgress, ProgressTarget: target, ProgressPort: port}
}

func arpDeviceMessage(d Device) ScanMessage {
	return ScanMessage{Kind: MessageArpDevice, Device: d}
}

func synDeviceMessage(d Device) ScanMessage {
	return ScanMessage{Kind: MessageSynDevice, Device: d}
}

func synResultMessage(r SynScanResult) ScanMessage {
	return ScanMessage{Kind: MessageSynResult, SynResult: r}
}

// send delivers msg to ch, honoring best-effort semantics when
// bestEffort is true: a full channel drops the message instead of
// blocking probing. Done and device/result messages are never
// best-effort — only Progress is.
func send(ch chan<- ScanMessage, msg ScanMessage, bestEffort bool) {
	if !bestEffort {
		ch <- msg
		return
	}
	select {
	case ch <- msg:
	default:
	}
}

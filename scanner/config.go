package scanner

import (
	"time"

	"lanscan/macvendor"
	"lanscan/network"
	"lanscan/packet"
	"lanscan/rdns"
	"lanscan/targets"
)

const (
	// DefaultSendDelay throttles consecutive probe sends to avoid
	// saturating the link.
	DefaultSendDelay = 50 * time.Microsecond

	minHeartbeatInterval = 10 * time.Millisecond
	maxHeartbeatInterval = 250 * time.Millisecond
)

// Config is the builder-style configuration block shared by every scan
// stage. Not every field applies to every stage — see the ARPScanner,
// SYNScanner, and FullScanner constructors for which subset each reads.
type Config struct {
	Interface *network.InterfaceInfo
	Reader    packet.Reader
	Writer    packet.Sender

	IPTargets   *targets.IPTargetList   // ARP, full
	PortTargets *targets.PortTargetList // SYN, full
	Devices     []Device                // SYN only: pre-discovered targets

	SourcePort uint16

	IncludeVendor    bool
	MACVendorDB      *macvendor.DB // required if IncludeVendor
	IncludeHostNames bool
	Resolver         *rdns.Resolver // required if IncludeHostNames

	IdleTimeout       time.Duration
	SendDelay         time.Duration // zero means DefaultSendDelay
	HeartbeatInterval time.Duration // zero means derived from IdleTimeout

	// ForwardARPMessages, full scan only: forward the internal ARP
	// stage's Progress/ArpDevice messages to Results. The ARP stage's
	// own Done is never forwarded regardless of this flag.
	ForwardARPMessages bool

	Results chan<- ScanMessage
}

func (c Config) sendDelay() time.Duration {
	if c.SendDelay > 0 {
		return c.SendDelay
	}
	return DefaultSendDelay
}

func (c Config) heartbeatInterval() time.Duration {
	if c.HeartbeatInterval > 0 {
		return c.HeartbeatInterval
	}
	interval := c.IdleTimeout / 20
	if interval < minHeartbeatInterval {
		return minHeartbeatInterval
	}
	if interval > maxHeartbeatInterval {
		return maxHeartbeatInterval
	}
	return interval
}

package scanner

import (
	"net"
	"sync/atomic"
	"time"

	"lanscan/backend/logging"
	"lanscan/packet"
)

// ARPScanner discovers live hosts on the configured interface's LAN by
// broadcasting ARP requests and collecting replies.
type ARPScanner struct {
	cfg Config
}

// NewARPScanner constructs an ARPScanner from cfg. cfg.Interface,
// cfg.Reader, cfg.Writer, cfg.IPTargets, cfg.SourcePort, and cfg.Results
// are required.
func NewARPScanner(cfg Config) *ARPScanner {
	return &ARPScanner{cfg: cfg}
}

// Scan spawns the reader goroutine and runs probing synchronously on
// the calling goroutine, returning a handle the caller can Wait on. The
// scanner is single-shot — calling Scan twice is a programming error.
func (s *ARPScanner) Scan() *ScanHandle {
	handle := newScanHandle()
	cfg := s.cfg
	logger := logging.Logger()

	var stopped atomic.Bool
	readerDone := make(chan struct{})
	go s.readLoop(cfg, &stopped, readerDone)

	var writeErr *ScanError
	lastSend := time.Now()

	err := cfg.IPTargets.Visit(func(ip net.IP) error {
		frame := buildARPRequest(cfg, ip)
		if err := cfg.Writer.Send(frame); err != nil {
			return err
		}
		lastSend = time.Now()
		time.Sleep(cfg.sendDelay())
		return nil
	})
	if err != nil {
		writeErr = newScanError("sending ARP request", err)
		logger.Warn("arp scan aborted during probing", "error", err)
	}

	s.idleDrain(cfg, lastSend)

	stopped.Store(true)
	<-readerDone

	send(cfg.Results, doneMessage(), false)
	handle.resolve(writeErr)
	return handle
}

func (s *ARPScanner) idleDrain(cfg Config, lastSend time.Time) {
	heartbeat := Heartbeat{
		SourceMAC:  cfg.Interface.MAC,
		SourceIPv4: cfg.Interface.IPv4,
		SourcePort: cfg.SourcePort,
		Writer:     cfg.Writer,
	}
	slice := cfg.heartbeatInterval()

	for time.Since(lastSend) < cfg.IdleTimeout {
		time.Sleep(slice)
		heartbeat.Beat()
	}
}

// readLoop is the stage's single reader goroutine. It blocks in
// NextFrame; heartbeats sent during idle drain are what give it a
// chance to observe stopped between replies, since a real reader has no
// other way to interrupt a blocking read.
func (s *ARPScanner) readLoop(cfg Config, stopped *atomic.Bool, done chan<- struct{}) {
	defer close(done)
	logger := logging.Logger()

	for !stopped.Load() {
		frame, err := cfg.Reader.NextFrame()
		if err != nil {
			logger.Debug("arp reader stopped", "error", err)
			return
		}
		if stopped.Load() {
			return
		}
		s.handleFrame(cfg, frame)
	}
}

func (s *ARPScanner) handleFrame(cfg Config, frame []byte) {
	info, ok := packet.ParseARPReply(frame)
	if !ok {
		return
	}
	if !info.TargetIP.Equal(cfg.Interface.IPv4) {
		return
	}

	device := Device{
		IPv4:          info.SenderIP,
		MAC:           info.SenderMAC,
		IsCurrentHost: info.SenderIP.Equal(cfg.Interface.IPv4),
	}
	if cfg.IncludeVendor && cfg.MACVendorDB != nil {
		device.Vendor = cfg.MACVendorDB.Lookup(device.MAC)
	}
	if cfg.IncludeHostNames && cfg.Resolver != nil {
		device.Hostname = cfg.Resolver.Lookup(device.IPv4)
	}

	send(cfg.Results, arpDeviceMessage(device), false)
}

func buildARPRequest(cfg Config, target net.IP) []byte {
	return packet.NewARPRequest(cfg.Interface.IPv4, cfg.Interface.MAC, target)
}

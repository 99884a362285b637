package scanner

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"lanscan/backend/logging"
	"lanscan/packet"
)

// SYNScanner probes each target Device's configured ports with a
// half-open TCP SYN scan.
type SYNScanner struct {
	cfg Config
}

// NewSYNScanner constructs a SYNScanner from cfg. cfg.Interface,
// cfg.Reader, cfg.Writer, cfg.Devices, cfg.PortTargets, cfg.SourcePort,
// and cfg.Results are required.
func NewSYNScanner(cfg Config) *SYNScanner {
	return &SYNScanner{cfg: cfg}
}

// Scan spawns the reader goroutine and runs probing synchronously on
// the calling goroutine.
func (s *SYNScanner) Scan() *ScanHandle {
	handle := newScanHandle()
	cfg := s.cfg
	logger := logging.Logger()

	acc := newOpenPortAccumulator()

	var stopped atomic.Bool
	readerDone := make(chan struct{})
	go s.readLoop(cfg, acc, &stopped, readerDone)

	var writeErr *ScanError
	lastSend := time.Now()

	for _, device := range cfg.Devices {
		err := cfg.PortTargets.Visit(func(port uint16) error {
			send(cfg.Results, progressMessage(device.IPv4, port), true)

			frame := packet.NewSYN(cfg.Interface.MAC, device.MAC, cfg.Interface.IPv4, device.IPv4, cfg.SourcePort, port)
			if err := cfg.Writer.Send(frame); err != nil {
				return err
			}
			lastSend = time.Now()
			time.Sleep(cfg.sendDelay())
			return nil
		})
		if err != nil {
			writeErr = newScanErrorFor(device.IPv4, 0, "sending SYN probe", err)
			logger.Warn("syn scan aborted during probing", "error", err, "device", device.IPv4)
			break
		}
	}

	s.idleDrain(cfg, lastSend)

	stopped.Store(true)
	<-readerDone

	for _, device := range acc.devices() {
		send(cfg.Results, synDeviceMessage(device), false)
	}

	send(cfg.Results, doneMessage(), false)
	handle.resolve(writeErr)
	return handle
}

func (s *SYNScanner) idleDrain(cfg Config, lastSend time.Time) {
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

func (s *SYNScanner) readLoop(cfg Config, acc *openPortAccumulator, stopped *atomic.Bool, done chan<- struct{}) {
	defer close(done)
	logger := logging.Logger()

	filter := packet.SYNACKFilter{
		DstMAC:  cfg.Interface.MAC,
		DstIPv4: cfg.Interface.IPv4,
		DstPort: cfg.SourcePort,
	}

	for !stopped.Load() {
		frame, err := cfg.Reader.NextFrame()
		if err != nil {
			logger.Debug("syn reader stopped", "error", err)
			return
		}
		if stopped.Load() {
			return
		}
		s.handleFrame(cfg, acc, frame, filter)
	}
}

func (s *SYNScanner) handleFrame(cfg Config, acc *openPortAccumulator, frame []byte, filter packet.SYNACKFilter) {
	info, ok := packet.ParseSYNACK(frame, filter)
	if !ok {
		return
	}

	device, ok := findDeviceByIP(cfg.Devices, info.SrcIP)
	if !ok {
		return
	}

	rst := packet.NewRST(cfg.Interface.MAC, device.MAC, cfg.Interface.IPv4, device.IPv4, cfg.SourcePort, info.SrcPort, info.Ack)
	if err := cfg.Writer.Send(rst); err != nil {
		logging.Logger().Debug("syn rst send failed", "error", err, "device", device.IPv4, "port", info.SrcPort)
	}

	port := Port{ID: info.SrcPort, Service: lookupService(info.SrcPort)}
	acc.add(device, port)

	send(cfg.Results, synResultMessage(SynScanResult{Device: device, OpenPort: port}), false)
}

func findDeviceByIP(devices []Device, ip net.IP) (Device, bool) {
	for _, d := range devices {
		if d.IPv4.Equal(ip) {
			return d, true
		}
	}
	return Device{}, false
}

// openPortAccumulator collects open ports per device as the reader
// goroutine observes SYN/ACKs, so a SynDevice snapshot can be emitted
// once the reader ends.
type openPortAccumulator struct {
	mu    sync.Mutex
	order []string
	ports map[string][]Port
	byIP  map[string]Device
}

func newOpenPortAccumulator() *openPortAccumulator {
	return &openPortAccumulator{
		ports: map[string][]Port{},
		byIP:  map[string]Device{},
	}
}

func (a *openPortAccumulator) add(device Device, port Port) {
	key := device.IPv4.String()

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, seen := a.byIP[key]; !seen {
		a.order = append(a.order, key)
	}
	a.byIP[key] = device
	a.ports[key] = append(a.ports[key], port)
}

func (a *openPortAccumulator) devices() []Device {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]Device, 0, len(a.order))
	for _, key := range a.order {
		device := a.byIP[key]
		device.OpenPorts = a.ports[key]
		result = append(result, device)
	}
	return result
}

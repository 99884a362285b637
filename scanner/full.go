package scanner

// FullScanner composes an ARPScanner feeding a SYNScanner: it runs the
// ARP stage to completion internally, collects the devices it
// discovered, then runs the SYN stage against those devices using the
// caller's own Results channel.
type FullScanner struct {
	cfg Config
}

// NewFullScanner constructs a FullScanner from cfg. cfg.IPTargets and
// cfg.PortTargets are both required; cfg.Devices is ignored (the ARP
// stage supplies it).
func NewFullScanner(cfg Config) *FullScanner {
	return &FullScanner{cfg: cfg}
}

// Scan runs the ARP stage to completion, then starts the SYN stage and
// returns its handle — the full scan's handle. Exactly one Done reaches
// cfg.Results: the SYN stage's.
func (s *FullScanner) Scan() *ScanHandle {
	cfg := s.cfg

	internalResults := make(chan ScanMessage)
	arpCfg := cfg
	arpCfg.Results = internalResults

	arpScanner := NewARPScanner(arpCfg)

	var arpHandle *ScanHandle
	scanDone := make(chan struct{})
	go func() {
		arpHandle = arpScanner.Scan()
		close(scanDone)
	}()

	var devices []Device
	for msg := range internalResults {
		switch msg.Kind {
		case MessageDone:
			// The internal ARP Done is a boundary, never forwarded; it
			// also marks the end of this drain loop since Done is
			// always the final message on a stage's channel.
			goto drained
		case MessageArpDevice:
			devices = append(devices, msg.Device)
			if cfg.ForwardARPMessages {
				send(cfg.Results, msg, false)
			}
		}
	}
drained:
	<-scanDone

	if err := arpHandle.Wait(); err != nil {
		send(cfg.Results, doneMessage(), false)
		handle := newScanHandle()
		handle.resolve(err.(*ScanError))
		return handle
	}

	synCfg := cfg
	synCfg.Devices = devices
	synScanner := NewSYNScanner(synCfg)
	return synScanner.Scan()
}

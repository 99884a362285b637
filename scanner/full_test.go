package scanner

import (
	"net"
	"testing"
	"time"

	"lanscan/packet"
	"lanscan/targets"
)

func TestARPScannerIdleTimeoutSendsHeartbeat(t *testing.T) {
	reader := newMockReader()
	reader.Close()
	writer := &mockWriter{}

	ipTargets, _ := targets.NewIPTargetList([]string{"192.168.0.2"})

	results := make(chan ScanMessage, 8)
	idleTimeout := 100 * time.Millisecond
	cfg := Config{
		Interface:   testInterface(),
		Reader:      reader,
		Writer:      writer,
		IPTargets:   ipTargets,
		SourcePort:  54321,
		IdleTimeout: idleTimeout,
		Results:     results,
	}

	start := time.Now()
	handle := NewARPScanner(cfg).Scan()
	close(results)
	elapsed := time.Since(start)

	if err := handle.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed > idleTimeout+50*time.Millisecond {
		t.Fatalf("Done arrived too late: %v after idle timeout %v", elapsed, idleTimeout)
	}

	msgs := drain(results)
	if len(msgs) != 1 || msgs[0].Kind != MessageDone {
		t.Fatalf("expected exactly one Done, got %+v", msgs)
	}

	sent := writer.sent()
	if len(sent) < 2 {
		t.Fatalf("expected the ARP request plus at least one heartbeat, got %d frames", len(sent))
	}
	wantHeartbeat := packet.NewHeartbeat(cfg.Interface.MAC, cfg.Interface.IPv4, cfg.SourcePort)
	if string(sent[1]) != string(wantHeartbeat) {
		t.Errorf("second sent frame does not match a heartbeat frame")
	}
}

func TestFullScannerComposition(t *testing.T) {
	iface := testInterface()
	device1MAC, _ := net.ParseMAC("bb:00:00:00:00:02")
	device1IP := net.ParseIP("192.168.0.2").To4()
	device2MAC, _ := net.ParseMAC("bb:00:00:00:00:03")
	device2IP := net.ParseIP("192.168.0.3").To4()

	arpReply1 := packet.NewARPReply(device1IP, device1MAC, iface.IPv4, iface.MAC)
	arpReply2 := packet.NewARPReply(device2IP, device2MAC, iface.IPv4, iface.MAC)
	arpReader := newMockReader(arpReply1, arpReply2)
	arpReader.Close()

	synAck1 := buildSynAck(t, device1MAC, iface.MAC, device1IP, iface.IPv4, 80, 54321, 111)
	synAck2 := buildSynAck(t, device2MAC, iface.MAC, device2IP, iface.IPv4, 80, 54321, 222)
	synReader := newMockReader(synAck1, synAck2)
	synReader.Close()

	writer := &mockWriter{}

	ipTargets, _ := targets.NewIPTargetList([]string{"192.168.0.2", "192.168.0.3"})
	portTargets, _ := targets.NewPortTargetList([]string{"80"})

	results := make(chan ScanMessage, 16)
	cfg := Config{
		Interface:   iface,
		Reader:      &dualPhaseReader{arp: arpReader, syn: synReader},
		Writer:      writer,
		IPTargets:   ipTargets,
		PortTargets: portTargets,
		SourcePort:  54321,
		IdleTimeout: 30 * time.Millisecond,
		Results:     results,
	}

	handle := NewFullScanner(cfg).Scan()
	close(results)

	if err := handle.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	var synResults int
	var dones int
	for _, msg := range drain(results) {
		switch msg.Kind {
		case MessageSynResult:
			synResults++
		case MessageDone:
			dones++
		case MessageArpDevice:
			t.Fatalf("ArpDevice must not reach the external consumer by default, got %+v", msg)
		}
	}
	if synResults != 2 {
		t.Errorf("expected 2 SynResults, got %d", synResults)
	}
	if dones != 1 {
		t.Errorf("expected exactly 1 Done, got %d", dones)
	}
}

// dualPhaseReader serves ARP stage frames first, then SYN stage frames,
// so a single Config.Reader can back a FullScanner test without the two
// stages reading from the same mock out of order. The ARP mock's first
// error ends the ARP stage's reader; every later call is served from the
// SYN mock. The two stages' readers never run at the same time.
type dualPhaseReader struct {
	arp, syn *mockReader
	started  bool // true once the SYN phase has begun
}

func (d *dualPhaseReader) NextFrame() ([]byte, error) {
	if !d.started {
		frame, err := d.arp.NextFrame()
		if err == nil {
			return frame, nil
		}
		d.started = true
		return nil, err
	}
	return d.syn.NextFrame()
}

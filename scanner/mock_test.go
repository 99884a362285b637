package scanner

import (
	"errors"
	"net"
	"sync"

	"lanscan/network"
	"lanscan/packet"
)

// mockReader replays a fixed sequence of frames and then blocks
// (simulating a quiet wire) until Close is called, after which
// NextFrame returns errClosed. This matches packet.Reader's real-world
// behavior closely enough for the stage under test to exercise its
// stop/idle-drain path.
type mockReader struct {
	mu     sync.Mutex
	frames [][]byte
	next   int
	closed chan struct{}
}

var errClosed = errors.New("mock reader closed")

func newMockReader(frames ...[]byte) *mockReader {
	return &mockReader{frames: frames, closed: make(chan struct{})}
}

func (m *mockReader) NextFrame() ([]byte, error) {
	m.mu.Lock()
	if m.next < len(m.frames) {
		frame := m.frames[m.next]
		m.next++
		m.mu.Unlock()
		return frame, nil
	}
	m.mu.Unlock()

	<-m.closed
	return nil, errClosed
}

func (m *mockReader) Close() {
	close(m.closed)
}

// mockWriter records every frame sent to it.
type mockWriter struct {
	mu     sync.Mutex
	frames [][]byte
	onSend func([]byte) // called synchronously from Send, used to close the mock reader once enough frames were observed
}

func (m *mockWriter) Send(frame []byte) error {
	cp := append([]byte(nil), frame...)

	m.mu.Lock()
	m.frames = append(m.frames, cp)
	m.mu.Unlock()

	if m.onSend != nil {
		m.onSend(cp)
	}
	return nil
}

func (m *mockWriter) sent() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.frames))
	copy(out, m.frames)
	return out
}

// probesSent returns the frames w recorded, minus the heartbeats the
// stage wrote during its idle drain.
func probesSent(w *mockWriter, cfg Config) [][]byte {
	heartbeat := string(packet.NewHeartbeat(cfg.Interface.MAC, cfg.Interface.IPv4, cfg.SourcePort))
	var out [][]byte
	for _, frame := range w.sent() {
		if string(frame) != heartbeat {
			out = append(out, frame)
		}
	}
	return out
}

func testInterface() *network.InterfaceInfo {
	mac, _ := net.ParseMAC("aa:00:00:00:00:01")
	return &network.InterfaceInfo{
		Name: "eth-test",
		MAC:  mac,
		IPv4: net.ParseIP("192.168.0.1").To4(),
	}
}

func drain(ch <-chan ScanMessage) []ScanMessage {
	var out []ScanMessage
	for msg := range ch {
		out = append(out, msg)
	}
	return out
}

package rdns

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// startFakePTRServer runs a minimal DNS server on loopback that answers
// PTR queries for host with hostname, and returns its address.
func startFakePTRServer(t *testing.T, host, hostname string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("ListenPacket: %v", err)
	}
	t.Cleanup(func() { pc.Close() })

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, req *dns.Msg) {
		msg := new(dns.Msg)
		msg.SetReply(req)

		name, _ := dns.ReverseAddr(host)
		if len(req.Question) == 1 && req.Question[0].Name == name && req.Question[0].Qtype == dns.TypePTR {
			msg.Answer = append(msg.Answer, &dns.PTR{
				Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 60},
				Ptr: dns.Fqdn(hostname),
			})
		}
		_ = w.WriteMsg(msg)
	})

	server := &dns.Server{PacketConn: pc, Handler: mux}
	go server.ActivateAndServe()
	t.Cleanup(func() { server.Shutdown() })

	return pc.LocalAddr().String()
}

func TestLookupResolvesKnownAddress(t *testing.T) {
	addr := startFakePTRServer(t, "192.168.1.50", "printer.lan")
	time.Sleep(20 * time.Millisecond) // let ActivateAndServe start accepting

	r, err := NewResolver(addr)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	got := r.Lookup(net.ParseIP("192.168.1.50"))
	if got != "printer.lan" {
		t.Errorf("Lookup = %q, want %q", got, "printer.lan")
	}
}

func TestLookupReturnsEmptyForUnknownAddress(t *testing.T) {
	addr := startFakePTRServer(t, "192.168.1.50", "printer.lan")
	time.Sleep(20 * time.Millisecond)

	r, err := NewResolver(addr)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	got := r.Lookup(net.ParseIP("192.168.1.99"))
	if got != "" {
		t.Errorf("Lookup = %q, want empty", got)
	}
}

func TestLookupReturnsEmptyForIPv6(t *testing.T) {
	r := &Resolver{client: &dns.Client{Timeout: time.Second}, server: "127.0.0.1:0"}
	if got := r.Lookup(net.ParseIP("::1")); got != "" {
		t.Errorf("Lookup(::1) = %q, want empty", got)
	}
}

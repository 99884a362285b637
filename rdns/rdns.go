// Package rdns resolves IPv4 addresses to hostnames via reverse DNS
// (PTR) lookups.
package rdns

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const defaultTimeout = 2 * time.Second

// Resolver issues PTR lookups against a fixed upstream DNS server.
type Resolver struct {
	client *dns.Client
	server string
}

// NewResolver returns a Resolver that queries server (host:port, e.g.
// "192.168.1.1:53"). If server is empty, the system's configured
// resolver is read from /etc/resolv.conf.
func NewResolver(server string) (*Resolver, error) {
	if server == "" {
		cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil || len(cfg.Servers) == 0 {
			return nil, fmt.Errorf("rdns: no DNS server configured and /etc/resolv.conf unreadable: %w", err)
		}
		server = net.JoinHostPort(cfg.Servers[0], cfg.Port)
	}

	return &Resolver{
		client: &dns.Client{Timeout: defaultTimeout},
		server: server,
	}, nil
}

// Lookup returns the first PTR hostname registered for ip, or "" if none
// resolves or the lookup fails. A lookup failure is deliberately not an
// error — missing reverse DNS is the common case on a LAN and the
// scanner's device listing degrades gracefully without it.
func (r *Resolver) Lookup(ip net.IP) string {
	v4 := ip.To4()
	if v4 == nil {
		return ""
	}

	name, err := dns.ReverseAddr(v4.String())
	if err != nil {
		return ""
	}

	msg := new(dns.Msg)
	msg.SetQuestion(name, dns.TypePTR)
	msg.RecursionDesired = true

	reply, _, err := r.client.Exchange(msg, r.server)
	if err != nil || reply == nil {
		return ""
	}

	for _, rr := range reply.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, ".")
		}
	}
	return ""
}

// Package targets implements lazy iteration over the textual target
// specifications a scan is configured with: single IPv4 addresses,
// dashed ranges, CIDR blocks, single ports, and port ranges. The
// expanded list is never built in memory; each IPv4 address is yielded
// as its own newly allocated 4-byte net.IP.
package targets

import (
	"encoding/binary"
	"fmt"
	"net"
	"strings"
)

// IPTargetList is an ordered list of IPv4 target specifications together
// with the precomputed total number of hosts a full Visit will yield.
// It is built once and read-only for the lifetime of a scan.
type IPTargetList struct {
	specs []string
	count int
}

// NewIPTargetList parses and validates every spec in list, computing the
// total host count via a dry-run expansion. It fails fast — before any
// scanning starts — on the first malformed spec.
func NewIPTargetList(list []string) (*IPTargetList, error) {
	total := 0

	for _, spec := range list {
		n := 0
		if err := expandIPSpec(spec, func(net.IP) error {
			n++
			return nil
		}); err != nil {
			return nil, err
		}
		total += n
	}

	return &IPTargetList{specs: append([]string(nil), list...), count: total}, nil
}

// Count returns the total number of unique IPv4 hosts a full Visit yields.
func (l *IPTargetList) Count() int {
	return l.count
}

// IsEmpty reports whether this target list yields no hosts at all.
func (l *IPTargetList) IsEmpty() bool {
	return l.count == 0
}

// Visit walks every host address in specification order, in ascending
// order within each spec. If cb returns an error, iteration stops
// immediately and that error is returned.
func (l *IPTargetList) Visit(cb func(net.IP) error) error {
	for _, spec := range l.specs {
		if err := expandIPSpec(spec, cb); err != nil {
			return err
		}
	}
	return nil
}

func expandIPSpec(spec string, cb func(net.IP) error) error {
	switch {
	case strings.Contains(spec, "/"):
		return expandCIDR(spec, cb)
	case strings.Contains(spec, "-"):
		return expandRange(spec, cb)
	default:
		ip, err := parseIPv4(spec)
		if err != nil {
			return newParseError(spec, err)
		}
		return cb(ip)
	}
}

func expandRange(spec string, cb func(net.IP) error) error {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return newParseError(spec, fmt.Errorf("expected a single '-' separating begin and end"))
	}

	begin, err := parseIPv4(strings.TrimSpace(parts[0]))
	if err != nil {
		return newParseError(spec, fmt.Errorf("invalid range start: %w", err))
	}

	end, err := parseIPv4(strings.TrimSpace(parts[1]))
	if err != nil {
		return newParseError(spec, fmt.Errorf("invalid range end: %w", err))
	}

	beginN := ipToUint32(begin)
	endN := ipToUint32(end)
	if beginN > endN {
		return newParseError(spec, fmt.Errorf("range start %s is after range end %s", begin, end))
	}

	// A-B is decomposed as a run of minimal /32 subnets: every address in
	// the inclusive range is its own single-host subnet, so the "hosts"
	// of that decomposition are simply the addresses A..=B in order.
	for n := beginN; ; n++ {
		if err := cb(uint32ToIP(n)); err != nil {
			return err
		}
		if n == endN {
			break
		}
	}
	return nil
}

func expandCIDR(spec string, cb func(net.IP) error) error {
	_, ipnet, err := net.ParseCIDR(spec)
	if err != nil {
		return newParseError(spec, err)
	}
	if ipnet.IP.To4() == nil {
		return newParseError(spec, fmt.Errorf("only IPv4 CIDR blocks are supported"))
	}

	ones, bits := ipnet.Mask.Size()
	network := ipToUint32(ipnet.IP.To4())
	size := uint32(1) << uint(bits-ones)

	first := network
	last := network + size - 1

	switch {
	case ones >= 32:
		// /32: exactly one host, no network/broadcast to exclude.
		if err := cb(uint32ToIP(first)); err != nil {
			return err
		}
	case ones == 31:
		// /31: point-to-point, RFC 3021 — both addresses are usable hosts.
		for n := first; ; n++ {
			if err := cb(uint32ToIP(n)); err != nil {
				return err
			}
			if n == last {
				break
			}
		}
	default:
		// Exclude the network and broadcast addresses.
		for n := first + 1; n < last; n++ {
			if err := cb(uint32ToIP(n)); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseIPv4(s string) (net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("%q is not a valid IP address", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return nil, fmt.Errorf("%q is not an IPv4 address", s)
	}
	return v4, nil
}

func ipToUint32(ip net.IP) uint32 {
	return binary.BigEndian.Uint32(ip.To4())
}

func uint32ToIP(n uint32) net.IP {
	b := make(net.IP, 4)
	binary.BigEndian.PutUint32(b, n)
	return b
}

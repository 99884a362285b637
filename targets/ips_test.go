package targets

import (
	"net"
	"testing"
)

func TestIPTargetListCountMatchesVisit(t *testing.T) {
	cases := [][]string{
		{},
		{"192.168.0.1"},
		{"192.128.28.1", "192.128.28.2-192.128.28.4", "192.128.30.0/30"},
		{"10.0.0.0/24"},
		{"10.0.0.5-10.0.0.5"},
	}

	for _, specs := range cases {
		list, err := NewIPTargetList(specs)
		if err != nil {
			t.Fatalf("NewIPTargetList(%v): %v", specs, err)
		}

		visited := 0
		err = list.Visit(func(net.IP) error {
			visited++
			return nil
		})
		if err != nil {
			t.Fatalf("Visit(%v): %v", specs, err)
		}

		if visited != list.Count() {
			t.Errorf("specs %v: Count()=%d but Visit yielded %d", specs, list.Count(), visited)
		}
	}
}

func TestIPTargetListExpansionOrder(t *testing.T) {
	specs := []string{
		"192.128.28.1",
		"192.128.28.2-192.128.28.4",
		"192.128.30.0/30",
	}

	expected := []string{
		"192.128.28.1",
		"192.128.28.2",
		"192.128.28.3",
		"192.128.28.4",
		"192.128.30.1",
		"192.128.30.2",
	}

	list, err := NewIPTargetList(specs)
	if err != nil {
		t.Fatalf("NewIPTargetList: %v", err)
	}

	if list.Count() != len(expected) {
		t.Fatalf("Count() = %d, want %d", list.Count(), len(expected))
	}

	idx := 0
	err = list.Visit(func(ip net.IP) error {
		if idx >= len(expected) {
			t.Fatalf("unexpected extra host %s", ip)
		}
		if ip.String() != expected[idx] {
			t.Errorf("host %d = %s, want %s", idx, ip, expected[idx])
		}
		idx++
		return nil
	})
	if err != nil {
		t.Fatalf("Visit: %v", err)
	}
}

func TestIPTargetListEmpty(t *testing.T) {
	list, err := NewIPTargetList(nil)
	if err != nil {
		t.Fatalf("NewIPTargetList(nil): %v", err)
	}
	if !list.IsEmpty() {
		t.Errorf("expected empty target list")
	}
	visited := false
	if err := list.Visit(func(net.IP) error {
		visited = true
		return nil
	}); err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if visited {
		t.Errorf("Visit should not have yielded anything")
	}
}

func TestIPTargetListRejectsMalformed(t *testing.T) {
	cases := []string{
		"not-an-ip",
		"300.1.1.1",
		"10.0.0.5-10.0.0.1", // begin after end
		"10.0.0.0/abc",
		"::1",
	}

	for _, spec := range cases {
		if _, err := NewIPTargetList([]string{spec}); err == nil {
			t.Errorf("expected error for spec %q", spec)
		}
	}
}

func TestIPTargetListCIDRExcludesNetworkAndBroadcast(t *testing.T) {
	list, err := NewIPTargetList([]string{"10.0.0.0/29"})
	if err != nil {
		t.Fatalf("NewIPTargetList: %v", err)
	}

	// /29 has 8 addresses; 6 usable hosts once network and broadcast are excluded.
	if list.Count() != 6 {
		t.Fatalf("Count() = %d, want 6", list.Count())
	}

	var hosts []string
	_ = list.Visit(func(ip net.IP) error {
		hosts = append(hosts, ip.String())
		return nil
	})

	for _, bad := range []string{"10.0.0.0", "10.0.0.7"} {
		for _, h := range hosts {
			if h == bad {
				t.Errorf("host list should not include network/broadcast address %s", bad)
			}
		}
	}
}

func TestIPTargetListAbortsOnCallbackError(t *testing.T) {
	list, err := NewIPTargetList([]string{"10.0.0.0/24"})
	if err != nil {
		t.Fatalf("NewIPTargetList: %v", err)
	}

	wantErr := errStop
	seen := 0
	err = list.Visit(func(net.IP) error {
		seen++
		if seen == 3 {
			return wantErr
		}
		return nil
	})
	if err != wantErr {
		t.Fatalf("Visit returned %v, want %v", err, wantErr)
	}
	if seen != 3 {
		t.Fatalf("Visit called callback %d times, want 3", seen)
	}
}

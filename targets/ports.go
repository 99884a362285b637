package targets

import (
	"fmt"
	"strconv"
	"strings"
)

// PortTargetList is an ordered list of TCP port specifications together
// with the precomputed total number of ports a full Visit will yield.
type PortTargetList struct {
	specs []string
	count int
}

// NewPortTargetList parses and validates every spec in list. Each spec
// must be a single unsigned 16-bit integer or a "begin-end" pair with
// begin <= end; both ends are inclusive.
func NewPortTargetList(list []string) (*PortTargetList, error) {
	total := 0

	for _, spec := range list {
		n := 0
		if err := expandPortSpec(spec, func(uint16) error {
			n++
			return nil
		}); err != nil {
			return nil, err
		}
		total += n
	}

	return &PortTargetList{specs: append([]string(nil), list...), count: total}, nil
}

// Count returns the total number of ports a full Visit yields.
func (l *PortTargetList) Count() int {
	return l.count
}

// IsEmpty reports whether this target list yields no ports at all.
func (l *PortTargetList) IsEmpty() bool {
	return l.count == 0
}

// Visit walks every port in specification order, ascending within each
// spec. If cb returns an error, iteration stops immediately and that
// error is returned.
func (l *PortTargetList) Visit(cb func(uint16) error) error {
	for _, spec := range l.specs {
		if err := expandPortSpec(spec, cb); err != nil {
			return err
		}
	}
	return nil
}

func expandPortSpec(spec string, cb func(uint16) error) error {
	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return newParseError(spec, fmt.Errorf("expected a single '-' separating begin and end"))
		}

		begin, err := parsePort(strings.TrimSpace(parts[0]))
		if err != nil {
			return newParseError(spec, fmt.Errorf("invalid range start: %w", err))
		}
		end, err := parsePort(strings.TrimSpace(parts[1]))
		if err != nil {
			return newParseError(spec, fmt.Errorf("invalid range end: %w", err))
		}
		if begin > end {
			return newParseError(spec, fmt.Errorf("range start %d is after range end %d", begin, end))
		}

		for p := begin; ; p++ {
			if err := cb(p); err != nil {
				return err
			}
			if p == end {
				break
			}
		}
		return nil
	}

	p, err := parsePort(spec)
	if err != nil {
		return newParseError(spec, err)
	}
	return cb(p)
}

func parsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid port", s)
	}
	return uint16(n), nil
}

package api

import (
	"time"

	"lanscan/scanner"
)

// Port mirrors scanner.Port in a form that round-trips cleanly through
// JSON and Redis.
type Port struct {
	ID      uint16 `json:"id"`
	Service string `json:"service,omitempty"`
}

// Device mirrors scanner.Device with string-encoded IPv4/MAC fields,
// since net.HardwareAddr has no JSON text marshaler of its own.
type Device struct {
	IPv4      string `json:"ipv4"`
	MAC       string `json:"mac"`
	Hostname  string `json:"hostname,omitempty"`
	Vendor    string `json:"vendor,omitempty"`
	OpenPorts []Port `json:"open_ports,omitempty"`
}

func deviceFromScanner(d scanner.Device) Device {
	out := Device{
		IPv4:     d.IPv4.String(),
		MAC:      d.MAC.String(),
		Hostname: d.Hostname,
		Vendor:   d.Vendor,
	}
	for _, p := range d.OpenPorts {
		out.OpenPorts = append(out.OpenPorts, Port{ID: p.ID, Service: p.Service})
	}
	return out
}

// ScanTask represents a scanning job managed by the API service: an ARP
// discovery pass, optionally followed by a SYN port scan of the
// discovered hosts.
type ScanTask struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	IPTargets        []string   `json:"ip_targets"`
	PortTargets      []string   `json:"port_targets,omitempty"`
	ArpOnly          bool       `json:"arp_only"`
	IncludeVendor    bool       `json:"include_vendor"`
	IncludeHostNames bool       `json:"include_hostnames"`
	Devices          []Device   `json:"devices,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	Error            string     `json:"error,omitempty"`
}

// CreateScanRequest is the payload for creating a new scan task.
type CreateScanRequest struct {
	IPTargets        []string `json:"ip_targets" binding:"required,min=1" example:"192.168.1.0/24"`
	PortTargets      []string `json:"port_targets" example:"22,80,443"`
	ArpOnly          bool     `json:"arp_only" example:"false"`
	IncludeVendor    bool     `json:"include_vendor" example:"true"`
	IncludeHostNames bool     `json:"include_hostnames" example:"true"`
}

// Package network resolves the local interface a scan runs from: its
// name, MAC, IPv4 address, and enclosing CIDR.
package network

import (
	"errors"
	"fmt"
	"net"
)

// InterfaceInfo describes the local interface a scan sends and receives
// frames on.
type InterfaceInfo struct {
	Name  string
	MAC   net.HardwareAddr
	IPv4  net.IP
	Net   *net.IPNet
	Index int
}

// ErrNoInterface is returned when no interface meets the selection
// criteria (up, not loopback, having a hardware address, carrying an
// IPv4 address).
var ErrNoInterface = errors.New("network: no suitable interface found")

// GetDefaultInterface returns the first up, non-loopback interface that
// has a hardware (MAC) address and carries an IPv4 address, mirroring the host OS's routing preference
// closely enough for LAN scanning purposes.
func GetDefaultInterface() (*InterfaceInfo, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("network: listing interfaces: %w", err)
	}

	for _, iface := range ifaces {
		info, ok := tryInterface(iface)
		if ok {
			return info, nil
		}
	}

	return nil, ErrNoInterface
}

// GetInterfaceByName resolves a named interface, applying the same
// up/non-loopback/MAC/IPv4 requirements as GetDefaultInterface.
func GetInterfaceByName(name string) (*InterfaceInfo, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("network: %s: %w", name, err)
	}

	info, ok := tryInterface(*iface)
	if !ok {
		return nil, fmt.Errorf("network: %s: %w", name, ErrNoInterface)
	}
	return info, nil
}

func tryInterface(iface net.Interface) (*InterfaceInfo, bool) {
	if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
		return nil, false
	}
	if len(iface.HardwareAddr) == 0 {
		return nil, false
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return nil, false
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		v4 := ipnet.IP.To4()
		if v4 == nil {
			continue
		}

		return &InterfaceInfo{
			Name:  iface.Name,
			MAC:   iface.HardwareAddr,
			IPv4:  v4,
			Net:   &net.IPNet{IP: ipnet.IP.Mask(ipnet.Mask).To4(), Mask: ipnet.Mask},
			Index: iface.Index,
		}, true
	}

	return nil, false
}

// GetAvailablePort asks the OS for an unused ephemeral TCP port by
// binding a loopback listener and immediately releasing it. The SYN
// stage uses the result as its source port so replies can be matched
// unambiguously against in-flight probes.
func GetAvailablePort() (uint16, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("network: reserving ephemeral port: %w", err)
	}
	defer listener.Close()

	addr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("network: unexpected listener address type %T", listener.Addr())
	}
	return uint16(addr.Port), nil
}

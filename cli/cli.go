// Package cli implements lanscan's command-line front end: flag
// parsing, wiring the scanner core to a live network interface, and
// rendering the streamed results as plain text or JSON.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"lanscan/macvendor"
	"lanscan/network"
	"lanscan/packet"
	"lanscan/rdns"
	"lanscan/scanner"
	"lanscan/targets"
)

// Run is the entry point for the lanscan CLI. It parses flags and
// positional target specifications, drives a scan to completion, and
// prints the results.
func Run() {
	ifaceName := flag.String("i", "", "network interface to scan from (default: first up, non-loopback interface with a MAC and an IPv4 address)")
	jsonOutput := flag.Bool("json", false, "output results as JSON")
	arpOnly := flag.Bool("arp-only", false, "discover hosts via ARP only, skip the SYN port scan")
	includeVendor := flag.Bool("vendor", false, "resolve MAC vendor names for discovered hosts")
	includeHostnames := flag.Bool("hostnames", false, "resolve reverse-DNS hostnames for discovered hosts")
	dnsServer := flag.String("dns-server", "", "DNS server to query for -hostnames (host:port, default: /etc/resolv.conf)")
	idleTimeout := flag.Duration("idle-timeout", 3*time.Second, "how long to wait for late replies after the last probe")
	sendDelay := flag.Duration("send-delay", 0, "delay between consecutive probe sends (default: scanner's built-in pacing)")
	flag.Parse()

	args := flag.Args()
	if *arpOnly && len(args) < 1 {
		printUsage()
		os.Exit(2)
	}
	if !*arpOnly && len(args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var ipSpecs, portSpecs []string
	if *arpOnly {
		ipSpecs = args
	} else {
		ipSpecs = args[:len(args)-1]
		portSpecs = strings.Split(args[len(args)-1], ",")
	}

	iface, err := resolveInterface(*ifaceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ipTargets, err := targets.NewIPTargetList(ipSpecs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var portTargets *targets.PortTargetList
	if !*arpOnly {
		portTargets, err = targets.NewPortTargetList(portSpecs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	sourcePort, err := network.GetAvailablePort()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reader, writer, err := packet.NewWire(iface)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "lanscan needs permission to open a raw socket. Try: sudo lanscan ...")
		os.Exit(1)
	}

	var vendorDB *macvendor.DB
	if *includeVendor {
		vendorDB = macvendor.NewDB()
	}

	var resolver *rdns.Resolver
	if *includeHostnames {
		resolver, err = rdns.NewResolver(*dnsServer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	results := make(chan scanner.ScanMessage, 64)
	cfg := scanner.Config{
		Interface:        iface,
		Reader:           reader,
		Writer:           writer,
		IPTargets:        ipTargets,
		PortTargets:      portTargets,
		SourcePort:       sourcePort,
		IncludeVendor:    *includeVendor,
		MACVendorDB:      vendorDB,
		IncludeHostNames: *includeHostnames,
		Resolver:         resolver,
		IdleTimeout:      *idleTimeout,
		SendDelay:        *sendDelay,
		Results:          results,
	}

	// Scan runs the stage on its own goroutine so that collect drains
	// results while the stage is still sending them.
	handleCh := make(chan *scanner.ScanHandle, 1)
	go func() {
		if *arpOnly {
			handleCh <- scanner.NewARPScanner(cfg).Scan()
		} else {
			handleCh <- scanner.NewFullScanner(cfg).Scan()
		}
	}()

	devices := collect(results, *jsonOutput)
	handle := <-handleCh

	if err := handle.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		outputJSON(devices)
	}
}

// collect drains the results channel into a device list, keyed on first
// sight and updated in place as ArpDevice/SynDevice snapshots arrive,
// printing plain-text discovery and open-port lines as they stream in
// unless quiet is set.
func collect(results <-chan scanner.ScanMessage, quiet bool) []scanner.Device {
	var devices []scanner.Device
	seen := map[string]int{}

	upsert := func(d scanner.Device) {
		if idx, ok := seen[d.IPv4.String()]; ok {
			devices[idx] = d
			return
		}
		seen[d.IPv4.String()] = len(devices)
		devices = append(devices, d)
	}

	for msg := range results {
		switch msg.Kind {
		case scanner.MessageArpDevice:
			_, known := seen[msg.Device.IPv4.String()]
			upsert(msg.Device)
			if !known && !quiet {
				printDevice(msg.Device)
			}
		case scanner.MessageSynDevice:
			upsert(msg.Device)
		case scanner.MessageSynResult:
			if !quiet {
				printOpenPort(msg.SynResult)
			}
		case scanner.MessageDone:
			return devices
		}
	}
	return devices
}

func printDevice(d scanner.Device) {
	line := fmt.Sprintf("%s\t%s", d.IPv4, d.MAC)
	if d.Hostname != "" {
		line += "\t" + d.Hostname
	}
	if d.Vendor != "" {
		line += "\t" + d.Vendor
	}
	fmt.Println(line)
}

func printOpenPort(r scanner.SynScanResult) {
	if r.OpenPort.Service != "" {
		fmt.Printf("%s:%d - open - %s\n", r.Device.IPv4, r.OpenPort.ID, r.OpenPort.Service)
	} else {
		fmt.Printf("%s:%d - open\n", r.Device.IPv4, r.OpenPort.ID)
	}
}

func outputJSON(devices []scanner.Device) {
	type jsonDevice struct {
		IPv4     string         `json:"ipv4"`
		MAC      string         `json:"mac"`
		Hostname string         `json:"hostname,omitempty"`
		Vendor   string         `json:"vendor,omitempty"`
		Ports    []scanner.Port `json:"open_ports,omitempty"`
	}

	out := make([]jsonDevice, 0, len(devices))
	for _, d := range devices {
		out = append(out, jsonDevice{
			IPv4:     d.IPv4.String(),
			MAC:      d.MAC.String(),
			Hostname: d.Hostname,
			Vendor:   d.Vendor,
			Ports:    d.OpenPorts,
		})
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding to JSON: %v\n", err)
		return
	}
	fmt.Println(string(encoded))
}

func resolveInterface(name string) (*network.InterfaceInfo, error) {
	if name == "" {
		return network.GetDefaultInterface()
	}
	return network.GetInterfaceByName(name)
}

func printUsage() {
	fmt.Println("Usage: lanscan [flags] host1 host2... portSpec1,portSpec2,...")
	fmt.Println("       lanscan [flags] -arp-only host1 host2...")
	fmt.Println()
	fmt.Println("Each host spec is a single IPv4 address, an A-B range, or a CIDR block.")
	fmt.Println("Each port spec is a single port or an A-B range.")
	fmt.Println()
	fmt.Println("Example: lanscan 192.168.1.0/24 22,80,443")
	fmt.Println("Example: lanscan -vendor -hostnames 192.168.1.1-192.168.1.50 1-1024")
	fmt.Println("Example: lanscan -arp-only 192.168.1.0/24")
	flag.PrintDefaults()
}

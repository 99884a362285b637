// Command lanscan discovers hosts on the local network via ARP and
// scans their TCP ports via a SYN half-open scan.
package main

import "lanscan/cli"

func main() {
	cli.Run()
}

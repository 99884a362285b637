// Command lanscan-api serves lanscan's HTTP scan-submission API: POST
// /api/v1/scans queues an ARP/SYN scan, GET /api/v1/scans/{id} polls
// for its status and, once it has completed, its results.
package main

import (
	"fmt"
	"os"

	"lanscan/api"

	_ "lanscan/docs"
)

func main() {
	if err := api.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

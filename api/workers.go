package api

import (
	"log/slog"
	"time"

	"lanscan/backend/logging"
	"lanscan/macvendor"
	"lanscan/network"
	"lanscan/packet"
	"lanscan/rdns"
	"lanscan/scanner"
	"lanscan/targets"
)

// DefaultIdleTimeout bounds how long a queued task's scan waits for late
// replies after its last probe before declaring the stage complete.
const DefaultIdleTimeout = 5 * time.Second

// StartWorkers launches background goroutines that pop queued tasks and
// run them against iface. Each worker opens its own frame reader/writer
// pair per task it processes, so concurrent workers never share a wire.
func StartWorkers(store TaskStore, iface *network.InterfaceInfo, vendorDB *macvendor.DB, resolver *rdns.Resolver, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go workerLoop(store, iface, vendorDB, resolver)
	}
}

func workerLoop(store TaskStore, iface *network.InterfaceInfo, vendorDB *macvendor.DB, resolver *rdns.Resolver) {
	logger := logging.Logger()

	for {
		taskID, err := store.PopFromQueue()
		if err != nil {
			logger.Error("worker: failed to pop task", "error", err)
			time.Sleep(time.Second)
			continue
		}

		task, err := store.GetTask(taskID)
		if err != nil {
			if err == ErrTaskNotFound {
				logger.Warn("worker: task disappeared", "task_id", taskID)
				continue
			}
			logger.Error("worker: failed to load task", "task_id", taskID, "error", err)
			continue
		}

		task.Status = "running"
		task.Error = ""
		task.Devices = nil
		task.CompletedAt = nil
		if err := store.UpdateTask(task); err != nil {
			logger.Error("worker: failed to mark task running", "task_id", task.ID, "error", err)
			continue
		}

		devices, err := runTask(task, iface, vendorDB, resolver, logger)
		if err != nil {
			failTask(task, store, err, logger)
			continue
		}

		task.Status = "completed"
		task.Devices = devices
		now := time.Now().UTC()
		task.CompletedAt = &now

		if err := store.UpdateTask(task); err != nil {
			logger.Error("worker: failed to persist completed task", "task_id", task.ID, "error", err)
		}
	}
}

func runTask(task *ScanTask, iface *network.InterfaceInfo, vendorDB *macvendor.DB, resolver *rdns.Resolver, logger *slog.Logger) ([]Device, error) {
	ipTargets, err := targets.NewIPTargetList(task.IPTargets)
	if err != nil {
		return nil, err
	}

	var portTargets *targets.PortTargetList
	if !task.ArpOnly {
		portTargets, err = targets.NewPortTargetList(task.PortTargets)
		if err != nil {
			return nil, err
		}
	}

	sourcePort, err := network.GetAvailablePort()
	if err != nil {
		return nil, err
	}

	reader, writer, err := packet.NewWire(iface)
	if err != nil {
		return nil, err
	}

	results := make(chan scanner.ScanMessage, 64)
	cfg := scanner.Config{
		Interface:        iface,
		Reader:           reader,
		Writer:           writer,
		IPTargets:        ipTargets,
		PortTargets:      portTargets,
		SourcePort:       sourcePort,
		IncludeVendor:    task.IncludeVendor,
		MACVendorDB:      vendorDB,
		IncludeHostNames: task.IncludeHostNames,
		Resolver:         resolver,
		IdleTimeout:      DefaultIdleTimeout,
		Results:          results,
	}

	// Scan runs on its own goroutine so the loop below drains results
	// while the stage is still sending them.
	handleCh := make(chan *scanner.ScanHandle, 1)
	go func() {
		if task.ArpOnly {
			handleCh <- scanner.NewARPScanner(cfg).Scan()
		} else {
			handleCh <- scanner.NewFullScanner(cfg).Scan()
		}
	}()

	var devices []Device
	seen := map[string]int{}
	for msg := range results {
		switch msg.Kind {
		case scanner.MessageArpDevice, scanner.MessageSynDevice:
			d := deviceFromScanner(msg.Device)
			if idx, ok := seen[d.IPv4]; ok {
				devices[idx] = d
			} else {
				seen[d.IPv4] = len(devices)
				devices = append(devices, d)
			}
		case scanner.MessageDone:
			logger.Debug("worker: task scan complete", "task_id", task.ID, "devices", len(devices))
			goto drained
		}
	}
drained:
	handle := <-handleCh
	if err := handle.Wait(); err != nil {
		return nil, err
	}
	return devices, nil
}

func failTask(task *ScanTask, store TaskStore, err error, logger *slog.Logger) {
	logger.Warn("worker: task failed", "task_id", task.ID, "error", err)
	task.Status = "failed"
	task.Error = err.Error()
	task.Devices = nil
	now := time.Now().UTC()
	task.CompletedAt = &now
	if updateErr := store.UpdateTask(task); updateErr != nil {
		logger.Error("worker: failed to persist failed task", "task_id", task.ID, "error", updateErr)
	}
}

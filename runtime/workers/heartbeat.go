package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"mediaflow/contract"
	"mediaflow/observability"
)

var _ contract.Worker = (*HeartbeatWorker)(nil)

// HeartbeatWorker periodically refreshes the transfer monitor and logs a
// health line with self stats (CPU, RSS) and the current throughput window.
type HeartbeatWorker struct {
	log      *slog.Logger
	monitor  *observability.TransferMonitor
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, monitor *observability.TransferMonitor, interval time.Duration) *HeartbeatWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &HeartbeatWorker{log: log, monitor: monitor, interval: interval}
}

// Run executes the main loop of the worker, refreshing transfer metrics and
// emitting a health line on every tick.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting transfer heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			w.monitor.Refresh()
			stats := w.monitor.GetLatest()

			w.log.Info("Transfer heartbeat",
				"net_speed_mbs", stats.NetSpeedMBs,
				"bytes_sent", stats.BytesSent,
				"files_completed", stats.FilesCompleted,
				"files_failed", stats.FilesFailed,
				"parts_uploaded", stats.PartsUploaded,
				"queue_size", stats.QueueSize,
				"cpu_percent", cpu,
				"ram_bytes", rss)
		}
	}
}

// getSelfStats retrieves technical metrics (Memory and CPU) for the given process.
func getSelfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}

package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"github.com/namismyname/SocketTalk/contract"
	"github.com/namismyname/SocketTalk/observability"
)

// HeartbeatWorker periodically logs a self-report: process health plus the
// current presence and routing counters. Purely informational; losing a beat
// never affects sessions.
type HeartbeatWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	stats    *observability.StatsManager
	interval time.Duration
}

func NewHeartbeatWorker(
	log *slog.Logger,
	registry contract.IRegistry,
	stats *observability.StatsManager,
	interval time.Duration,
) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, registry: registry, stats: stats, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker", "interval", w.interval)
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
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			snapshot := w.stats.Snapshot()
			w.log.Info("heartbeat",
				"joined", w.registry.Size(),
				"messages_routed", snapshot.MessagesRouted,
				"messages_dropped", snapshot.MessagesDropped,
				"ram_mb", rss/1024/1024,
				"cpu_percent", cpu,
			)
		}
	}
}

// selfStats retrieves memory and CPU usage for the given process.
func selfStats(p *process.Process) (uint64, float64, error) {
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

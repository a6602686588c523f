package observability

import (
	"sync/atomic"
	"time"
)

// Stats aggregates the routing counters for logs and the health endpoint.
type Stats struct {
	ConnectionsOpened uint64 `json:"connections_opened"`
	ConnectionsClosed uint64 `json:"connections_closed"`
	Joins             uint64 `json:"joins"`
	Leaves            uint64 `json:"leaves"`
	MessagesRouted    uint64 `json:"messages_routed"`
	MessagesDropped   uint64 `json:"messages_dropped"`
	UptimeSeconds     uint64 `json:"uptime_seconds"`
}

// StatsManager keeps process-lifetime counters. All increments are atomic so
// connection handlers never contend on a lock for bookkeeping.
type StatsManager struct {
	connectionsOpened uint64
	connectionsClosed uint64
	joins             uint64
	leaves            uint64
	messagesRouted    uint64
	messagesDropped   uint64
	startedAt         time.Time
}

func NewStatsManager() *StatsManager {
	return &StatsManager{startedAt: time.Now()}
}

func (m *StatsManager) IncrConnectionsOpened() {
	atomic.AddUint64(&m.connectionsOpened, 1)
}

func (m *StatsManager) IncrConnectionsClosed() {
	atomic.AddUint64(&m.connectionsClosed, 1)
}

func (m *StatsManager) IncrJoins() {
	atomic.AddUint64(&m.joins, 1)
}

func (m *StatsManager) IncrLeaves() {
	atomic.AddUint64(&m.leaves, 1)
}

func (m *StatsManager) IncrMessagesRouted() {
	atomic.AddUint64(&m.messagesRouted, 1)
}

func (m *StatsManager) IncrMessagesDropped() {
	atomic.AddUint64(&m.messagesDropped, 1)
}

// Snapshot reads every counter atomically. The result is internally
// consistent enough for reporting; it is not a transaction.
func (m *StatsManager) Snapshot() Stats {
	return Stats{
		ConnectionsOpened: atomic.LoadUint64(&m.connectionsOpened),
		ConnectionsClosed: atomic.LoadUint64(&m.connectionsClosed),
		Joins:             atomic.LoadUint64(&m.joins),
		Leaves:            atomic.LoadUint64(&m.leaves),
		MessagesRouted:    atomic.LoadUint64(&m.messagesRouted),
		MessagesDropped:   atomic.LoadUint64(&m.messagesDropped),
		UptimeSeconds:     uint64(time.Since(m.startedAt).Seconds()),
	}
}

package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	requestsTotal   atomic.Uint64
	requestFailures atomic.Uint64
	decodeFailures  atomic.Uint64
	pollsTotal      atomic.Uint64
	staleDiscarded  atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	liveClients atomic.Int32
}

// RecordRequest records a completed API request with its latency.
func (m *Metrics) RecordRequest(latency time.Duration) {
	m.requestsTotal.Add(1)
	m.latencySumNs.Add(latency.Nanoseconds())
	m.latencyCount.Add(1)
}

// RecordFailure records a request that did not complete.
func (m *Metrics) RecordFailure() {
	m.requestFailures.Add(1)
}

// RecordDecodeFailure records a response with an unexpected shape.
func (m *Metrics) RecordDecodeFailure() {
	m.decodeFailures.Add(1)
}

// RecordPoll records a list refresh tick.
func (m *Metrics) RecordPoll() {
	m.pollsTotal.Add(1)
}

// RecordStale records a response dropped by the sequence gate.
func (m *Metrics) RecordStale() {
	m.staleDiscarded.Add(1)
}

// IncrementClients increments live websocket clients by 1.
func (m *Metrics) IncrementClients() {
	m.liveClients.Add(1)
}

// DecrementClients decrements live websocket clients by 1.
func (m *Metrics) DecrementClients() {
	m.liveClients.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	RequestsTotal   uint64    `json:"requests_total"`
	RequestFailures uint64    `json:"request_failures"`
	DecodeFailures  uint64    `json:"decode_failures"`
	PollsTotal      uint64    `json:"polls_total"`
	StaleDiscarded  uint64    `json:"stale_discarded"`
	AvgLatencyNs    int64     `json:"avg_latency_ns"`
	LiveClients     int32     `json:"live_clients"`
	Timestamp       time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		RequestsTotal:   m.requestsTotal.Load(),
		RequestFailures: m.requestFailures.Load(),
		DecodeFailures:  m.decodeFailures.Load(),
		PollsTotal:      m.pollsTotal.Load(),
		StaleDiscarded:  m.staleDiscarded.Load(),
		AvgLatencyNs:    avgLatency,
		LiveClients:     m.liveClients.Load(),
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.requestsTotal.Store(0)
	m.requestFailures.Store(0)
	m.decodeFailures.Store(0)
	m.pollsTotal.Store(0)
	m.staleDiscarded.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
	m.liveClients.Store(0)
}

package logging

import (
	"sync"
	"sync/atomic"
)

// Metrics accumulates a small set of named counters and gauges. It exists
// alongside the Router's own event/drop counters for domain-level figures
// (ticks processed, settlements, robots spawned) that a host wants exposed
// without adding a full metrics backend dependency. TelemetryAdd and
// TelemetryStore are the names telemetry.Metrics adapters call through to.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]*atomic.Uint64
	gauges   map[string]*atomic.Uint64
}

// NewMetrics constructs an empty Metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]*atomic.Uint64),
		gauges:   make(map[string]*atomic.Uint64),
	}
}

func (m *Metrics) counter(name string) *atomic.Uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.counters[name]; ok {
		return c
	}
	c := &atomic.Uint64{}
	m.counters[name] = c
	return c
}

func (m *Metrics) gauge(name string) *atomic.Uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.gauges[name]; ok {
		return g
	}
	g := &atomic.Uint64{}
	m.gauges[name] = g
	return g
}

// TelemetryAdd adds delta to the named counter.
func (m *Metrics) TelemetryAdd(key string, delta uint64) {
	if m == nil {
		return
	}
	m.counter(key).Add(delta)
}

// TelemetryStore overwrites the named gauge.
func (m *Metrics) TelemetryStore(key string, value uint64) {
	if m == nil {
		return
	}
	m.gauge(key).Store(value)
}

// Counter returns the current value of the named counter.
func (m *Metrics) Counter(name string) uint64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	c, ok := m.counters[name]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return c.Load()
}

// Gauge returns the current value of the named gauge.
func (m *Metrics) Gauge(name string) uint64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	g, ok := m.gauges[name]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return g.Load()
}

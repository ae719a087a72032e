package backend

import (
	"context"
	"log"
	"sync"
	"time"
)

// Monitor periodically probes the backend so the dashboard can show a
// connectivity banner instead of letting every widget discover the outage
// on its own.
type Monitor struct {
	client   *Client
	interval time.Duration
	onChange func(healthy bool)

	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	healthy     bool
	checked     bool
	lastErr     error
	lastChecked time.Time
}

// NewMonitor creates a reachability monitor. onChange may be nil; when set
// it fires once per health transition.
func NewMonitor(client *Client, interval time.Duration, onChange func(healthy bool)) *Monitor {
	return &Monitor{
		client:   client,
		interval: interval,
		onChange: onChange,
	}
}

// Start begins probing. Non-blocking.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	go m.run(ctx)
}

// Stop halts the monitor.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
}

// Healthy reports whether the last probe succeeded.
func (m *Monitor) Healthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}

// LastError returns the most recent probe failure, nil when healthy.
func (m *Monitor) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// LastChecked returns when the backend was last probed.
func (m *Monitor) LastChecked() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastChecked
}

func (m *Monitor) run(ctx context.Context) {
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	_, err := m.client.TelemetryStats(probeCtx)

	m.mu.Lock()
	wasHealthy := m.healthy
	first := !m.checked
	m.checked = true
	m.healthy = err == nil
	m.lastErr = err
	m.lastChecked = time.Now()
	changed := first || wasHealthy != m.healthy
	onChange := m.onChange
	m.mu.Unlock()

	if err != nil && (changed || first) {
		log.Printf("Backend unreachable: %v", err)
	}
	if changed && onChange != nil {
		onChange(err == nil)
	}
}

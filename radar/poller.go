package radar

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/models"
)

const fetchTimeout = 10 * time.Second

// Poller keeps an up-to-date in-memory list of active flights and summary
// statistics. The flight list is re-fetched on a short interval and the
// summary stats on a slower one; both schedules stop together on Stop.
//
// Each fetch is tagged with a generation number. A completion whose
// generation is no longer current, or that lands after Stop, is discarded,
// so a slow response can never overwrite fresher data and nothing is
// applied to a torn-down poller. In-flight requests are not cancelled on
// Stop; their results are simply ignored.
type Poller struct {
	client      *backend.Client
	flightEvery time.Duration
	statsEvery  time.Duration
	onFlights   func([]models.TelemetryFlight)
	onError     func(error)

	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	flightGen   uint64
	statsGen    uint64
	flights     []models.TelemetryFlight
	stats       *models.TelemetryStats
	lastErr     error
	lastUpdated time.Time
}

// NewPoller creates a telemetry poller. The callbacks may be nil; onFlights
// fires with the new list after every successful flight fetch, onError
// after every failed one.
func NewPoller(client *backend.Client, flightEvery, statsEvery time.Duration, onFlights func([]models.TelemetryFlight), onError func(error)) *Poller {
	return &Poller{
		client:      client,
		flightEvery: flightEvery,
		statsEvery:  statsEvery,
		onFlights:   onFlights,
		onError:     onError,
	}
}

// Start issues an immediate fetch of both the flight list and the summary
// stats, then keeps them fresh until Stop. Non-blocking.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	go p.run(ctx)
}

// Stop tears down both schedules. Responses still in flight are dropped
// when they arrive.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.running = false
}

// Snapshot is a point-in-time copy of the poller's state.
type Snapshot struct {
	Flights []models.TelemetryFlight
	Stats   *models.TelemetryStats
	Err     error
	Updated time.Time
}

// Snapshot returns a copy of the current flight list, summary stats, last
// fetch error and last successful update time.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	flights := make([]models.TelemetryFlight, len(p.flights))
	copy(flights, p.flights)

	var stats *models.TelemetryStats
	if p.stats != nil {
		s := *p.stats
		stats = &s
	}
	return Snapshot{Flights: flights, Stats: stats, Err: p.lastErr, Updated: p.lastUpdated}
}

// Refresh forces an immediate flight fetch, the manual retry affordance.
func (p *Poller) Refresh() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.fetchFlights()
}

func (p *Poller) run(ctx context.Context) {
	p.fetchFlights()
	p.fetchStats()

	flightTicker := time.NewTicker(p.flightEvery)
	defer flightTicker.Stop()
	statsTicker := time.NewTicker(p.statsEvery)
	defer statsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-flightTicker.C:
			p.fetchFlights()
		case <-statsTicker.C:
			p.fetchStats()
		}
	}
}

func (p *Poller) fetchFlights() {
	p.mu.Lock()
	p.flightGen++
	gen := p.flightGen
	p.mu.Unlock()

	// The fetch deliberately does not inherit the run-loop context: an
	// in-flight request survives Stop and its result is discarded below.
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	flights, err := p.client.ActiveFlights(ctx)

	p.mu.Lock()
	if !p.running || gen != p.flightGen {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.lastErr = err
		onError := p.onError
		p.mu.Unlock()
		log.Printf("Failed to fetch active flights: %v", err)
		if onError != nil {
			onError(err)
		}
		return
	}
	// Whole-list replacement; consumers key by flight id, never by index.
	p.flights = flights
	p.lastErr = nil
	p.lastUpdated = time.Now()
	onFlights := p.onFlights
	p.mu.Unlock()

	if onFlights != nil {
		onFlights(flights)
	}
}

func (p *Poller) fetchStats() {
	p.mu.Lock()
	p.statsGen++
	gen := p.statsGen
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	stats, err := p.client.TelemetryStats(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || gen != p.statsGen {
		return
	}
	if err != nil {
		// Stats failures stay quiet; the flight poll drives the error
		// surface and the next stats tick retries anyway.
		log.Printf("Failed to fetch telemetry stats: %v", err)
		return
	}
	p.stats = stats
}

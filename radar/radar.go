// Package radar drives the live flight map: it polls the backend telemetry
// simulator, derives marker geometry (bearing, color, size) for each
// flight, and feeds both the JSON endpoints and the websocket push that the
// dashboard's map page consumes.
package radar

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/events"
	"github.com/fernandomartin18/UbicAir/models"
)

var (
	poller *Poller

	wsClients    = make(map[*websocket.Conn]bool)
	wsClientsMux = &sync.Mutex{}

	lastErrMux = &sync.Mutex{}
	hadError   bool
)

// Init wires the poller. Call Start afterwards to begin polling.
func Init(client *backend.Client, flightEvery, statsEvery time.Duration) {
	poller = NewPoller(client, flightEvery, statsEvery, broadcastFlights, recordPollError)
}

// Start begins the polling schedules.
func Start(ctx context.Context) {
	poller.Start(ctx)
}

// Stop tears down the polling schedules.
func Stop() {
	poller.Stop()
}

// broadcastFlights pushes the fresh flight list to every connected
// websocket client, dropping clients whose writes fail.
func broadcastFlights(flights []models.TelemetryFlight) {
	clearPollError()

	payload := struct {
		Flights []Marker  `json:"flights"`
		Updated time.Time `json:"updated"`
	}{
		Flights: BuildMarkers(flights, defaultZoom),
		Updated: time.Now(),
	}

	wsClientsMux.Lock()
	defer wsClientsMux.Unlock()
	for client := range wsClients {
		if err := client.WriteJSON(payload); err != nil {
			log.Printf("Error sending flight data to client: %v", err)
			client.Close()
			delete(wsClients, client)
		}
	}
}

// recordPollError logs a poll_error event once per failure streak; the
// per-tick detail already goes to the process log.
func recordPollError(err error) {
	lastErrMux.Lock()
	defer lastErrMux.Unlock()
	if !hadError {
		hadError = true
		events.LogEvent(events.Event{Type: events.TypePollError, Source: "radar", Detail: err.Error(), Timestamp: time.Now()})
	}
}

func clearPollError() {
	lastErrMux.Lock()
	defer lastErrMux.Unlock()
	hadError = false
}

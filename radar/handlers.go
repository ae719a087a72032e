package radar

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fernandomartin18/UbicAir/models"
)

const defaultZoom = 6

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Marker is one flight plus everything the map page needs to draw it.
type Marker struct {
	models.TelemetryFlight
	Bearing  float64 `json:"bearing"`
	Color    string  `json:"color"`
	Size     int     `json:"size"`
	Anchor   int     `json:"anchor"`
	Phase    string  `json:"phase"`
	Position string  `json:"position"`
}

// BuildMarkers derives marker geometry for a flight list at a zoom level.
func BuildMarkers(flights []models.TelemetryFlight, zoom int) []Marker {
	size := IconSize(zoom)
	markers := make([]Marker, 0, len(flights))
	for _, f := range flights {
		markers = append(markers, Marker{
			TelemetryFlight: f,
			Bearing:         Bearing(f),
			Color:           ProgressColor(f.Progress),
			Size:            size,
			Anchor:          size / 2,
			Phase:           Phase(f.Progress),
			Position:        fmt.Sprintf("%.4f°, %.4f°", f.Latitude, f.Longitude),
		})
	}
	return markers
}

func SetupHandlers() {
	http.HandleFunc("/radar/flights", handleFlights)
	http.HandleFunc("/radar/stats", handleStats)
	http.HandleFunc("/radar/refresh", handleRefresh)
	http.HandleFunc("/radar/ws", handleWebsocket)
}

func handleFlights(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	zoom := defaultZoom
	if z, err := strconv.Atoi(r.URL.Query().Get("zoom")); err == nil {
		zoom = z
	}

	snap := poller.Snapshot()
	flights := SortByProgress(Filter(snap.Flights, search))

	response := struct {
		Success bool      `json:"success"`
		Data    []Marker  `json:"data"`
		Total   int       `json:"total"`
		Error   string    `json:"error,omitempty"`
		Updated time.Time `json:"updated"`
	}{
		Success: snap.Err == nil,
		Data:    BuildMarkers(flights, zoom),
		Total:   len(snap.Flights),
		Updated: snap.Updated,
	}
	if snap.Err != nil {
		response.Error = "Error al cargar datos de vuelos"
	}

	writeJSON(w, http.StatusOK, response)
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	snap := poller.Snapshot()
	if snap.Stats == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"success": false,
			"error":   "Estadísticas no disponibles todavía",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   snap.Stats,
	})
}

// handleRefresh is the manual retry affordance behind the error banner.
func handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	poller.Refresh()
	handleFlights(w, r)
}

func handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	wsClientsMux.Lock()
	wsClients[conn] = true
	wsClientsMux.Unlock()

	// Readers only; the broadcast loop owns all writes. Reading here just
	// detects the close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				wsClientsMux.Lock()
				delete(wsClients, conn)
				wsClientsMux.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Package flights serves schedule search: it proxies the backend's airport
// search and annotates each result with derived display fields (delay
// classes, favorite flag, formatted times).
package flights

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/favorites"
	"github.com/fernandomartin18/UbicAir/models"
)

// minSearchLength matches the UI, which only fires a search once the user
// has typed two characters (after a 500ms debounce).
const minSearchLength = 2

var client *backend.Client

func Init(c *backend.Client) {
	client = c
}

// DelayClass buckets a delay in minutes for the traffic-light badge. On
// time and early are green; 0 < d < 5 also renders green (the gap is the
// original product rule, kept as is).
func DelayClass(delay float64) string {
	if delay <= 0 {
		return "delay-green"
	}
	if delay >= 5 && delay <= 15 {
		return "delay-yellow"
	}
	if delay > 15 {
		return "delay-red"
	}
	return "delay-green"
}

// FormatTime renders a decimal-hours schedule time as HH:MM. A zero value
// means the backend had no time for this record and renders as N/A.
func FormatTime(decimalHours float64) string {
	if decimalHours == 0 {
		return "N/A"
	}
	hours := int(decimalHours)
	minutes := int(math.Round((decimalHours - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// Result is one search hit with its derived display fields.
type Result struct {
	models.ScheduleFlight
	DepTimeText   string `json:"depTimeText"`
	ArrTimeText   string `json:"arrTimeText"`
	DepDelayClass string `json:"depDelayClass"`
	ArrDelayClass string `json:"arrDelayClass"`
	Favorite      bool   `json:"favorite"`
}

func SetupHandlers() {
	http.HandleFunc("/flights/search", handleSearch)
}

func handleSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(term) < minSearchLength {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   fmt.Sprintf("search term must be at least %d characters", minSearchLength),
		})
		return
	}

	found, err := client.SearchFlights(r.Context(), term)
	if err != nil {
		status := http.StatusBadGateway
		if apiErr, ok := err.(*backend.APIError); ok && apiErr.Status >= 400 {
			status = apiErr.Status
		}
		log.Printf("Flight search failed: %v", err)
		writeJSON(w, status, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	results := make([]Result, 0, len(found))
	for _, f := range found {
		results = append(results, Result{
			ScheduleFlight: f,
			DepTimeText:    FormatTime(f.DepTime),
			ArrTimeText:    FormatTime(f.ArrTime),
			DepDelayClass:  DelayClass(f.DepDelay),
			ArrDelayClass:  DelayClass(f.ArrDelay),
			Favorite:       favorites.IsFavorite(r.Context(), f),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"vuelos": results,
		},
		"count": len(results),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

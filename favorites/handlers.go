package favorites

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fernandomartin18/UbicAir/events"
	"github.com/fernandomartin18/UbicAir/models"
)

func SetupHandlers() {
	http.HandleFunc("/favorites", handleList)
	http.HandleFunc("/favorites/add", handleAdd)
	http.HandleFunc("/favorites/remove", handleRemove)
	http.HandleFunc("/favorites/export/xlsx", handleExportXLSX)
}

func handleList(w http.ResponseWriter, r *http.Request) {
	favs := Load(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"favorites": favs,
	})
}

func handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flight, ok := decodeFlight(w, r)
	if !ok {
		return
	}

	if err := Add(r.Context(), flight); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	handleList(w, r)
}

// handleRemove deletes a favorite. Deliberate removals must confirm; quick
// toggles from a list pass skip_confirmation to bypass the prompt.
func handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Flight           models.ScheduleFlight `json:"flight"`
		Confirmed        bool                  `json:"confirmed"`
		SkipConfirmation bool                  `json:"skipConfirmation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if !payload.SkipConfirmation && !payload.Confirmed {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success":              false,
			"confirmationRequired": true,
			"prompt": fmt.Sprintf("¿Estás seguro de que quieres eliminar este vuelo de tus favoritos?\n\n%s → %s (%s)",
				payload.Flight.Origin, payload.Flight.Dest, payload.Flight.Airline),
		})
		return
	}

	if err := Remove(r.Context(), payload.Flight); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	handleList(w, r)
}

func handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	buf, err := ExportXLSX(r.Context())
	if err != nil {
		log.Printf("Favorites export failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	events.LogEvent(events.Event{Type: events.TypeExport, Source: "favorites", Detail: "xlsx", Timestamp: time.Now()})
	filename := fmt.Sprintf("ubicair_favoritos_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(buf.Bytes())
}

func decodeFlight(w http.ResponseWriter, r *http.Request) (models.ScheduleFlight, bool) {
	var payload struct {
		Flight models.ScheduleFlight `json:"flight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return models.ScheduleFlight{}, false
	}
	return payload.Flight, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

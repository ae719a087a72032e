package events

import (
	"encoding/json"
	"net/http"
)

func SetupHandlers() {
	http.HandleFunc("/events", handleEvents)
}

// handleEvents returns the recent activity, newest first.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	eventsList := GetEvents()

	reversed := make([]Event, len(eventsList))
	for i, j := 0, len(eventsList)-1; i < len(eventsList); i, j = i+1, j-1 {
		reversed[i] = eventsList[j]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reversed)
}

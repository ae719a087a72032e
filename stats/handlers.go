package stats

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fernandomartin18/UbicAir/events"
)

func SetupHandlers() {
	http.HandleFunc("/stats/general", handleGeneral)
	http.HandleFunc("/stats/delays", handleDelays)
	http.HandleFunc("/stats/airlines", handleAirlines)
	http.HandleFunc("/stats/summary", handleSummary)
	http.HandleFunc("/stats/export/csv", handleExportCSV)
	http.HandleFunc("/stats/export/xlsx", handleExportXLSX)
}

func handleGeneral(w http.ResponseWriter, r *http.Request) {
	general, stale, fetchedAt, err := General(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	writeStats(w, general, stale, fetchedAt)
}

func handleDelays(w http.ResponseWriter, r *http.Request) {
	delays, stale, fetchedAt, err := Delays(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	writeStats(w, delays, stale, fetchedAt)
}

func handleAirlines(w http.ResponseWriter, r *http.Request) {
	airlines, stale, fetchedAt, err := Airlines(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	writeStats(w, airlines, stale, fetchedAt)
}

func handleSummary(w http.ResponseWriter, r *http.Request) {
	delays, stale, fetchedAt, err := Delays(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}

	dep, arr := DelaySummaries(delays.Monthly)
	writeStats(w, map[string]interface{}{
		"depDelay": dep,
		"arrDelay": arr,
	}, stale, fetchedAt)
}

func handleExportCSV(w http.ResponseWriter, r *http.Request) {
	buf, err := ExportCSV(r.Context())
	if err != nil {
		log.Printf("CSV export failed: %v", err)
		writeUnavailable(w, err)
		return
	}

	events.LogEvent(events.Event{Type: events.TypeExport, Source: "stats", Detail: "csv", Timestamp: time.Now()})
	filename := fmt.Sprintf("ubicair_stats_%s.zip", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(buf.Bytes())
}

func handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	buf, err := ExportXLSX(r.Context())
	if err != nil {
		log.Printf("XLSX export failed: %v", err)
		writeUnavailable(w, err)
		return
	}

	events.LogEvent(events.Event{Type: events.TypeExport, Source: "stats", Detail: "xlsx", Timestamp: time.Now()})
	filename := fmt.Sprintf("ubicair_stats_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(buf.Bytes())
}

func writeStats(w http.ResponseWriter, data interface{}, stale bool, fetchedAt time.Time) {
	resp := map[string]interface{}{
		"success": true,
		"data":    data,
		"stale":   stale,
	}
	if stale {
		resp["fetchedAt"] = fetchedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeUnavailable(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadGateway, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Package events is the dashboard activity log: auth actions, favorite
// toggles, export downloads and backend trouble, appended to a per-run log
// file and kept in a small in-memory ring for the UI.
package events

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Event types recorded by the dashboard.
const (
	TypeLogin           = "login"
	TypeLogout          = "logout"
	TypeRegister        = "register"
	TypeFavoriteAdded   = "favorite_added"
	TypeFavoriteRemoved = "favorite_removed"
	TypePollError       = "poll_error"
	TypeBackendDown     = "backend_down"
	TypeBackendUp       = "backend_up"
	TypeExport          = "export_generated"
)

// Event is one recorded dashboard action.
type Event struct {
	Type      string    `json:"type"`
	Source    string    `json:"source"` // originating component
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

var (
	mutex   = &sync.Mutex{}
	events  []Event
	logFile *os.File
)

func Init() {
	// Create log file with current timestamp
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
		return
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join("logs", fmt.Sprintf("events_%s.log", timestamp))

	var err error
	logFile, err = os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return
	}

	logFile.WriteString(fmt.Sprintf("=== Activity Log Started at %s ===\n", time.Now().Format("2006-01-02 15:04:05")))
}

// maxEvents bounds the in-memory ring; the file log keeps the full history.
const maxEvents = 50

func LogEvent(event Event) {
	mutex.Lock()
	defer mutex.Unlock()
	events = append(events, event)
	if len(events) > maxEvents {
		events = events[len(events)-maxEvents:]
	}

	if logFile == nil {
		return
	}

	// Format: [timestamp] EVENT_TYPE: source (detail)
	logLine := fmt.Sprintf("[%s] %s: %s",
		event.Timestamp.Format("2006-01-02 15:04:05"),
		strings.ToUpper(event.Type),
		event.Source)
	if event.Detail != "" {
		logLine += " (" + event.Detail + ")"
	}
	logLine += "\n"

	if _, err := logFile.WriteString(logLine); err != nil {
		log.Printf("Failed to write to log file: %v", err)
	}
}

// GetEvents returns the recent events (last 50).
func GetEvents() []Event {
	mutex.Lock()
	defer mutex.Unlock()

	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// Close flushes and closes the log file.
func Close() {
	mutex.Lock()
	defer mutex.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Package favorites tracks the user's favorite schedule records. The
// backend owns the persisted list; this package keeps a synced in-memory
// copy and implements the schedule-level equality the rest of the UI keys
// on.
package favorites

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/events"
	"github.com/fernandomartin18/UbicAir/models"
)

var (
	client *backend.Client

	mutex  = &sync.Mutex{}
	cached []models.ScheduleFlight
	loaded bool
)

func Init(c *backend.Client) {
	client = c
}

// dateLayouts covers the FL_DATE shapes the backend has been seen to emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
}

// flightDay truncates a FL_DATE value to calendar-day precision (UTC).
// Unparseable dates fall back to the raw string so that two identical
// malformed values still compare equal.
func flightDay(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format("2006-01-02")
		}
	}
	return raw
}

// Key identifies a favorite: origin, destination, airline and flight date
// truncated to the calendar day. Departure/arrival times deliberately do
// not participate; a favorite is a schedule-level bookmark, not a specific
// telemetry instance.
func Key(f models.ScheduleFlight) string {
	return strings.Join([]string{f.Origin, f.Dest, f.Airline, flightDay(f.FlightDate)}, "|")
}

// SameFlight reports whether two schedule records are the same favorite.
func SameFlight(a, b models.ScheduleFlight) bool {
	return Key(a) == Key(b)
}

// Load fetches the favorites list. Any failure degrades to an empty list
// rather than blocking the page.
func Load(ctx context.Context) []models.ScheduleFlight {
	favs, err := client.GetFavorites(ctx)
	if err != nil {
		log.Printf("Failed to load favorites: %v", err)
		favs = nil
	}

	mutex.Lock()
	defer mutex.Unlock()
	cached = favs
	loaded = true
	return append([]models.ScheduleFlight(nil), cached...)
}

// All returns the cached list, loading it first if needed.
func All(ctx context.Context) []models.ScheduleFlight {
	mutex.Lock()
	ok := loaded
	list := append([]models.ScheduleFlight(nil), cached...)
	mutex.Unlock()

	if ok {
		return list
	}
	return Load(ctx)
}

// IsFavorite reports whether a schedule record matches a cached favorite.
func IsFavorite(ctx context.Context, f models.ScheduleFlight) bool {
	key := Key(f)
	for _, fav := range All(ctx) {
		if Key(fav) == key {
			return true
		}
	}
	return false
}

// Add stores a favorite on the backend and re-fetches the list.
func Add(ctx context.Context, f models.ScheduleFlight) error {
	if err := client.AddFavorite(ctx, f); err != nil {
		return err
	}
	events.LogEvent(events.Event{
		Type:      events.TypeFavoriteAdded,
		Source:    "favorites",
		Detail:    f.Origin + " → " + f.Dest + " (" + f.Airline + ")",
		Timestamp: time.Now(),
	})
	Load(ctx)
	return nil
}

// Remove deletes a favorite on the backend and re-fetches the list. On
// failure the cached state is left unchanged.
func Remove(ctx context.Context, f models.ScheduleFlight) error {
	if err := client.RemoveFavorite(ctx, f); err != nil {
		return err
	}
	events.LogEvent(events.Event{
		Type:      events.TypeFavoriteRemoved,
		Source:    "favorites",
		Detail:    f.Origin + " → " + f.Dest + " (" + f.Airline + ")",
		Timestamp: time.Now(),
	})
	Load(ctx)
	return nil
}

// Reset clears the cache (logout).
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	cached = nil
	loaded = false
}

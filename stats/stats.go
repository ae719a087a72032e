// Package stats serves the historical statistics views. Every payload
// comes pre-aggregated from the backend; the last good copy of each one is
// kept in sqlite so a backend outage degrades to stale data instead of an
// empty dashboard.
package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/models"
)

const (
	kindGeneral  = "general"
	kindDelays   = "delays"
	kindAirlines = "airlines"
)

var (
	client *backend.Client
	db     *sql.DB
	mutex  = &sync.Mutex{}
)

// Init opens the snapshot cache under dataDir and wires the backend client.
func Init(c *backend.Client, dataDir string) error {
	client = c

	var err error
	db, err = initDatabase(filepath.Join(dataDir, "stats.db"))
	if err != nil {
		return err
	}
	log.Println("Stats snapshot database initialized successfully")
	return nil
}

// Close releases the snapshot database.
func Close() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// fetchOrStale runs fetch and caches its raw payload on success. On failure
// it falls back to the cached snapshot; the bool reports staleness. Both
// paths unmarshal into out.
func fetchOrStale(kind string, out interface{}, fetch func() (json.RawMessage, error)) (bool, time.Time, error) {
	mutex.Lock()
	defer mutex.Unlock()

	raw, err := fetch()
	if err == nil {
		if saveErr := saveSnapshot(kind, raw); saveErr != nil {
			log.Printf("Failed to cache %s stats: %v", kind, saveErr)
		}
		return false, time.Now().UTC(), json.Unmarshal(raw, out)
	}

	payload, fetchedAt, cacheErr := loadSnapshot(kind)
	if cacheErr != nil {
		log.Printf("Stats fetch failed with no cached fallback: %v", err)
		return false, time.Time{}, err
	}

	log.Printf("Stats fetch failed, serving %s snapshot from %s: %v", kind, fetchedAt.Format(time.RFC3339), err)
	return true, fetchedAt, json.Unmarshal(payload, out)
}

// General returns the overview stats, stale when served from cache.
func General(ctx context.Context) (*models.GeneralStats, bool, time.Time, error) {
	var out models.GeneralStats
	stale, fetchedAt, err := fetchOrStale(kindGeneral, &out, func() (json.RawMessage, error) {
		_, raw, err := client.GetStatistics(ctx)
		return raw, err
	})
	if err != nil {
		return nil, false, time.Time{}, err
	}
	return &out, stale, fetchedAt, nil
}

// Delays returns the monthly delay series and distribution histogram.
func Delays(ctx context.Context) (*models.DelayAnalysis, bool, time.Time, error) {
	var out models.DelayAnalysis
	stale, fetchedAt, err := fetchOrStale(kindDelays, &out, func() (json.RawMessage, error) {
		_, raw, err := client.GetDelayAnalysis(ctx)
		return raw, err
	})
	if err != nil {
		return nil, false, time.Time{}, err
	}
	return &out, stale, fetchedAt, nil
}

// Airlines returns the per-airline comparison rows.
func Airlines(ctx context.Context) ([]models.AirlineStats, bool, time.Time, error) {
	var out []models.AirlineStats
	stale, fetchedAt, err := fetchOrStale(kindAirlines, &out, func() (json.RawMessage, error) {
		_, raw, err := client.GetAirlineComparison(ctx)
		return raw, err
	})
	if err != nil {
		return nil, false, time.Time{}, err
	}
	return out, stale, fetchedAt, nil
}

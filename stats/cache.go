package stats

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS stats_snapshots (
	kind       TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);
`

// initDatabase opens (or creates) the snapshot cache database.
func initDatabase(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping stats database: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create stats schema: %w", err)
	}
	return db, nil
}

// saveSnapshot stores the latest successful payload for kind.
func saveSnapshot(kind string, payload []byte) error {
	_, err := db.Exec(
		"INSERT INTO stats_snapshots (kind, payload, fetched_at) VALUES (?, ?, ?) ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at",
		kind, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", kind, err)
	}
	return nil
}

// loadSnapshot returns the cached payload for kind, or an error when no
// snapshot has been stored yet.
func loadSnapshot(kind string) ([]byte, time.Time, error) {
	var payload string
	var fetchedAt time.Time
	err := db.QueryRow(
		"SELECT payload, fetched_at FROM stats_snapshots WHERE kind = ?", kind,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, fmt.Errorf("no cached %s snapshot", kind)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load %s snapshot: %w", kind, err)
	}
	return []byte(payload), fetchedAt, nil
}

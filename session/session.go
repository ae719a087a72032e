// Package session is the single access point for the auth token and user
// id. Every authenticated call reads the session through here instead of
// poking at ambient storage, and the sqlite backing keeps the session
// across restarts the way the browser's local storage did.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store holds the active session. Reads hit an in-memory mirror; writes go
// through to sqlite.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	token  string
	userID string
}

// Open loads (or creates) the session database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query("SELECT key, value FROM session")
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan session row: %w", err)
		}
		switch key {
		case "token":
			s.token = value
		case "user_id":
			s.userID = value
		}
	}
	return rows.Err()
}

// Set stores a new session, replacing any existing one.
func (s *Store) Set(token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin session write: %w", err)
	}
	for key, value := range map[string]string{"token": token, "user_id": userID} {
		if _, err := tx.Exec(
			"INSERT INTO session (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write session: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	s.token = token
	s.userID = userID
	return nil
}

// Clear removes the session (logout).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.token = ""
	s.userID = ""
	return nil
}

// Token returns the bearer token, empty when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// UserID returns the active user id, empty when signed out.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Authenticated reports whether a session is active.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.userID != ""
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

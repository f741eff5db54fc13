// Package history persists primary-connection transitions.
//
// Every render emitted by an indicator module corresponds to one
// transition; the store keeps them in a small local sqlite database so the
// CLI can show what the connection did recently.
package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yllada/netbar/common"
)

// Entry is one recorded transition of the displayed connection.
type Entry struct {
	// At is when the transition happened.
	At time.Time
	// Kind is the displayed connection kind, or "none".
	Kind string
	// ConnectionID is the displayed connection identity, empty when none.
	ConnectionID string
	// Icon is the resolved icon reference that was rendered.
	Icon string
}

// Store is a sqlite-backed transition log. A closed store rejects all
// operations with common.ErrClosed.
type Store struct {
	db *sql.DB

	mu     sync.Mutex
	closed bool
}

const schema = `
CREATE TABLE IF NOT EXISTS transitions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	at            INTEGER NOT NULL,
	kind          TEXT    NOT NULL,
	connection_id TEXT    NOT NULL,
	icon          TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transitions_at ON transitions(at);
`

// Open opens (and if needed creates) the store at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening: %v", common.ErrHistoryStorage, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", common.ErrHistoryStorage, err)
	}

	return &Store{db: db}, nil
}

// Record appends one transition. A zero At defaults to now.
func (s *Store) Record(entry Entry) error {
	if err := s.guard(); err != nil {
		return err
	}

	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.Exec(
		"INSERT INTO transitions (at, kind, connection_id, icon) VALUES (?, ?, ?, ?)",
		at.Unix(), entry.Kind, entry.ConnectionID, entry.Icon,
	)
	if err != nil {
		return fmt.Errorf("%w: recording transition: %v", common.ErrHistoryStorage, err)
	}
	return nil
}

// Recent returns up to limit transitions, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT at, kind, connection_id, icon FROM transitions ORDER BY at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying transitions: %v", common.ErrHistoryStorage, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var at int64
		if err := rows.Scan(&at, &entry.Kind, &entry.ConnectionID, &entry.Icon); err != nil {
			return nil, fmt.Errorf("%w: scanning transition: %v", common.ErrHistoryStorage, err)
		}
		entry.At = time.Unix(at, 0)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Prune deletes transitions older than the cutoff and returns how many
// were removed.
func (s *Store) Prune(olderThan time.Time) (int64, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}

	res, err := s.db.Exec("DELETE FROM transitions WHERE at < ?", olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("%w: pruning transitions: %v", common.ErrHistoryStorage, err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.db.Close()
}

// guard reports whether the store has been closed.
func (s *Store) guard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrClosed
	}
	return nil
}

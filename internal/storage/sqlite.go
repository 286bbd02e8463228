// Package storage provides SQLite-based persistence for saved games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoSlot is returned when a slot has never been saved. It wraps
// fs.ErrNotExist.
var ErrNoSlot = fmt.Errorf("storage: no such slot: %w", fs.ErrNotExist)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Slot is one saved record.
type Slot struct {
	Name      string
	Record    []byte
	UpdatedAt time.Time
}

// Outcome is one finished stage.
type Outcome struct {
	ID        int64
	Slot      string
	Level     int
	Completed bool
	Lives     int
	CreatedAt time.Time
}

// LevelStats aggregates the outcomes of one level.
type LevelStats struct {
	Level      int
	Attempts   int
	Completed  int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS slots (
			name TEXT PRIMARY KEY,
			record BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL,
			level INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			lives INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_slot ON outcomes(slot);
		CREATE INDEX IF NOT EXISTS idx_outcomes_level ON outcomes(slot, level);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadSlot returns the record saved under name, or ErrNoSlot.
func (s *Store) LoadSlot(name string) ([]byte, error) {
	var record []byte
	err := s.db.QueryRow("SELECT record FROM slots WHERE name = ?", name).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNoSlot, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load slot %q: %w", name, err)
	}
	return record, nil
}

// SaveSlot replaces the record saved under name. The write is a single
// statement, so readers see either the old or the new record.
func (s *Store) SaveSlot(name string, record []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (name, record, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		name, record,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %q: %w", name, err)
	}
	return nil
}

// DeleteSlot removes a slot and its outcome history.
func (s *Store) DeleteSlot(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM slots WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete slot %q: %w", name, err)
	}
	if _, err := tx.Exec("DELETE FROM outcomes WHERE slot = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete outcomes of %q: %w", name, err)
	}
	return tx.Commit()
}

// Slots lists every saved slot, most recently updated first.
func (s *Store) Slots() ([]Slot, error) {
	rows, err := s.db.Query(
		`SELECT name, record, updated_at
		 FROM slots
		 ORDER BY updated_at DESC, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var sl Slot
		var updatedAt any
		if err := rows.Scan(&sl.Name, &sl.Record, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sl.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return slots, nil
}

// RecordOutcome appends a finished stage to the journal.
func (s *Store) RecordOutcome(slot string, level int, completed bool, lives int) error {
	_, err := s.db.Exec(
		"INSERT INTO outcomes (slot, level, completed, lives) VALUES (?, ?, ?, ?)",
		slot, level, completed, lives,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record outcome: %w", err)
	}
	return nil
}

// RecentOutcomes returns the latest outcomes of a slot, newest first.
func (s *Store) RecentOutcomes(slot string, limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, slot, level, completed, lives, created_at
		 FROM outcomes
		 WHERE slot = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		slot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		var createdAt any
		if err := rows.Scan(&o.ID, &o.Slot, &o.Level, &o.Completed, &o.Lives, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		o.CreatedAt = parseTime(createdAt)
		outcomes = append(outcomes, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return outcomes, nil
}

// LevelStats aggregates the journal of a slot per level, lowest level first.
func (s *Store) LevelStats(slot string) ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), COALESCE(SUM(completed), 0), MAX(created_at)
		 FROM outcomes
		 WHERE slot = ?
		 GROUP BY level
		 ORDER BY level`,
		slot,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Attempts, &ls.Completed, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, ls)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

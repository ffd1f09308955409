// Package persistence provides SQLite-based save storage for game snapshots.
// Structural validation and versioning live here, outside the simulation
// core: the core assumes anything loaded already satisfies its invariants.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ayameworks/cafesim/internal/finance"
	"github.com/ayameworks/cafesim/internal/game"
)

// DB wraps a SQLite connection for save-game persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Tag new save files with a stable install ID for support diagnostics.
	if _, err := db.GetMeta("install_id"); err != nil {
		if err := db.SaveMeta("install_id", uuid.NewString()); err != nil {
			slog.Debug("write install id", "error", err)
		}
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		saved_at TEXT NOT NULL DEFAULT (datetime('now')),
		state_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS day_records (
		day INTEGER PRIMARY KEY,
		revenue INTEGER NOT NULL,
		expenses INTEGER NOT NULL,
		profit INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS save_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_day ON snapshots(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot stores the full game state as one JSON blob and mirrors the
// finance history into the day_records table for querying and export.
func (db *DB) SaveSnapshot(s game.State) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// One snapshot per day: replace any existing save for the same day.
	if _, err := tx.Exec("DELETE FROM snapshots WHERE day = ?", s.Day); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO snapshots (day, state_json) VALUES (?, ?)",
		s.Day, string(blob),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for _, rec := range s.Finance.History {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO day_records (day, revenue, expenses, profit)
			 VALUES (?, ?, ?, ?)`,
			rec.Day, rec.Revenue, rec.Expenses, rec.Profit,
		); err != nil {
			return fmt.Errorf("insert day record %d: %w", rec.Day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game saved", "day", s.Day, "gold", s.Finance.Gold)
	return nil
}

// LoadLatest restores the most recent snapshot. Returns false when no save
// exists.
func (db *DB) LoadLatest() (game.State, bool, error) {
	var blob string
	err := db.conn.Get(&blob,
		"SELECT state_json FROM snapshots ORDER BY day DESC, id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return game.State{}, false, nil
	}
	if err != nil {
		return game.State{}, false, err
	}

	var s game.State
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return game.State{}, false, fmt.Errorf("parse snapshot: %w", err)
	}
	if err := validate(&s); err != nil {
		return game.State{}, false, fmt.Errorf("corrupt snapshot: %w", err)
	}
	return s, true, nil
}

// validate checks the structural invariants the core assumes of any loaded
// state. Scratch state is rebuilt, not persisted.
func validate(s *game.State) error {
	if s.Day < 1 {
		return fmt.Errorf("day %d out of range", s.Day)
	}
	if s.Facility.CafeLevel < 1 || s.Facility.CafeLevel > 10 {
		return fmt.Errorf("cafe level %d out of range", s.Facility.CafeLevel)
	}
	if s.Finance.Gold < 0 {
		return fmt.Errorf("negative gold %d", s.Finance.Gold)
	}
	for i := range s.Maids {
		if s.Maids[i].ID == "" {
			return fmt.Errorf("maid %d missing id", i)
		}
	}
	s.Scratch = game.Scratch{DwellTicks: map[string]int{}}
	return nil
}

// DayRecords returns all settled day records, oldest first. The snapshot only
// retains a bounded window; this table keeps the full run.
func (db *DB) DayRecords() ([]finance.DayRecord, error) {
	var recs []finance.DayRecord
	err := db.conn.Select(&recs,
		"SELECT day, revenue, expenses, profit FROM day_records ORDER BY day ASC")
	return recs, err
}

// SaveMeta stores a key-value pair in save metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO save_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM save_meta WHERE key = ?", key)
	return value, err
}

/*
Package sqlite provides a SQLite-backed implementation of the shift storage interfaces.

PURPOSE:
  Implements shift.Store, shift.SettingsStore and shift.Resetter on a
  single SQLite file. This is the production store of the server and the
  CLI; shift/store.Memory covers tests and throwaway demos.

KEY TABLES:
  shifts:   one row per assigned date (date is UNIQUE)
  settings: the singleton settings row (user_id is UNIQUE)

REPLACE:
  Replace (demo scenarios) clears both tables and writes the seed in one
  transaction, so a failed load keeps the previous data.

UNIQUENESS:
  Upsert runs DELETE then INSERT inside one SQL transaction while holding
  the write lock. The UNIQUE constraint on shifts.date backs this up: even
  a foreign writer on the same file cannot create a second row for a date.

SHIFT TIMES:
  settings.shift_times holds the table as JSON text, keyed by wire label:
    {"mattina":{"start":"07:00","end":"14:00","hours":7}, ...}
  The stored hours are informative only; decoding recomputes them.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, plus a single pooled connection so
  ":memory:" databases are shared by every query.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers never block
  the single writer.

USAGE:
  store, err := sqlite.New("./data/shifts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  t := tracker.NewFromRepository(store)

MIGRATION:
  Schema is auto-migrated on New() with CREATE IF NOT EXISTS.

SEE ALSO:
  - shift/store.go: Interface definitions
  - shift/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

// Store implements shift.Repository using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ shift.Repository = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Shift assignments: at most one per date
	CREATE TABLE IF NOT EXISTS shifts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL CHECK (type IN ('mattina', 'pomeriggio', 'notte', 'ricoveri')),
		user_id INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	-- Settings singleton
	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE DEFAULT 1,
		weekly_target_hours INTEGER NOT NULL DEFAULT 36 CHECK (weekly_target_hours >= 1),
		shift_times TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// =============================================================================
// SHIFT STORE (shift.Store interface)
// =============================================================================

// Get returns the assignment on date, or nil.
func (s *Store) Get(ctx context.Context, date calendar.Date) (*shift.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, date, type, user_id FROM shifts WHERE date = ?",
		date.String(),
	)
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, shift.Storage("get shift", err)
	}
	return &a, nil
}

// ListInRange returns assignments in [start, end] ordered by date.
// ISO dates compare lexically, so the range is a plain string comparison.
func (s *Store) ListInRange(ctx context.Context, start, end calendar.Date) ([]shift.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, date, type, user_id
		FROM shifts
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`
	rows, err := s.db.QueryContext(ctx, query, start.String(), end.String())
	if err != nil {
		return nil, shift.Storage("list shifts", err)
	}
	defer rows.Close()

	result := make([]shift.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, shift.Storage("list shifts", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, shift.Storage("list shifts", err)
	}
	return result, nil
}

// Upsert replaces any assignment on date with a new row.
func (s *Store) Upsert(ctx context.Context, date calendar.Date, t shift.Type) (shift.Assignment, error) {
	if !t.Valid() {
		return shift.Assignment{}, shift.Invalid("type", "unknown shift type %q", t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return shift.Assignment{}, shift.Storage("upsert shift", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer sqlTx.Rollback()

	if err := deleteByDate(ctx, sqlTx, date); err != nil {
		return shift.Assignment{}, shift.Storage("upsert shift", err)
	}

	res, err := sqlTx.ExecContext(ctx,
		"INSERT INTO shifts (date, type, user_id, created_at) VALUES (?, ?, ?, ?)",
		date.String(), string(t), shift.DefaultUserID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return shift.Assignment{}, shift.Storage("upsert shift", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return shift.Assignment{}, shift.Storage("upsert shift", err)
	}

	if err := sqlTx.Commit(); err != nil {
		return shift.Assignment{}, shift.Storage("upsert shift", err)
	}

	return shift.Assignment{ID: id, Date: date, Type: t, UserID: shift.DefaultUserID}, nil
}

// DeleteByDate removes the assignment on date. No-op if absent.
func (s *Store) DeleteByDate(ctx context.Context, date calendar.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return shift.Storage("delete shift", deleteByDate(ctx, s.db, date))
}

func deleteByDate(ctx context.Context, db execer, date calendar.Date) error {
	_, err := db.ExecContext(ctx, "DELETE FROM shifts WHERE date = ?", date.String())
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row scanner) (shift.Assignment, error) {
	var (
		a       shift.Assignment
		dateStr string
		typeStr string
	)
	if err := row.Scan(&a.ID, &dateStr, &typeStr, &a.UserID); err != nil {
		return shift.Assignment{}, err
	}

	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("row %d: %w", a.ID, err)
	}
	a.Date = date

	t := shift.Type(typeStr)
	if !t.Valid() {
		return shift.Assignment{}, fmt.Errorf("row %d: unknown shift type %q", a.ID, typeStr)
	}
	a.Type = t
	return a, nil
}

// =============================================================================
// SETTINGS STORE (shift.SettingsStore interface)
// =============================================================================

// GetSettings returns the settings row, or nil.
func (s *Store) GetSettings(ctx context.Context) (*shift.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		settings   shift.Settings
		shiftTimes string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, weekly_target_hours, shift_times FROM settings WHERE user_id = ?",
		shift.DefaultUserID,
	).Scan(&settings.ID, &settings.UserID, &settings.WeeklyTargetHours, &shiftTimes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, shift.Storage("get settings", err)
	}

	table, err := shift.DecodeTimeTable(shiftTimes)
	if err != nil {
		return nil, shift.Storage("get settings", err)
	}
	settings.ShiftTimes = table
	return &settings, nil
}

// SaveSettings inserts or replaces the singleton row.
func (s *Store) SaveSettings(ctx context.Context, settings shift.Settings) (shift.Settings, error) {
	if err := settings.Validate(); err != nil {
		return shift.Settings{}, err
	}
	encoded, err := shift.EncodeTimeTable(settings.ShiftTimes)
	if err != nil {
		return shift.Settings{}, shift.Storage("save settings", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (user_id, weekly_target_hours, shift_times, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			weekly_target_hours = excluded.weekly_target_hours,
			shift_times = excluded.shift_times,
			updated_at = excluded.updated_at
		RETURNING id
	`
	var id int64
	err = s.db.QueryRowContext(ctx, query,
		shift.DefaultUserID,
		settings.WeeklyTargetHours,
		encoded,
		time.Now().UTC().Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return shift.Settings{}, shift.Storage("save settings", err)
	}

	settings.ID = id
	settings.UserID = shift.DefaultUserID
	return settings, nil
}

// =============================================================================
// UTILITY METHODS
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"shifts", "settings"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return shift.Storage("reset", fmt.Errorf("failed to clear %s: %w", table, err))
		}
	}
	return nil
}

// Replace clears both tables and writes seed inside one transaction.
func (s *Store) Replace(ctx context.Context, seed shift.Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}
	var encoded string
	if seed.Settings != nil {
		var err error
		if encoded, err = shift.EncodeTimeTable(seed.Settings.ShiftTimes); err != nil {
			return shift.Storage("replace", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return shift.Storage("replace", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer sqlTx.Rollback()

	for _, table := range []string{"shifts", "settings"} {
		if _, err := sqlTx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return shift.Storage("replace", fmt.Errorf("failed to clear %s: %w", table, err))
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if seed.Settings != nil {
		_, err := sqlTx.ExecContext(ctx,
			"INSERT INTO settings (user_id, weekly_target_hours, shift_times, updated_at) VALUES (?, ?, ?, ?)",
			shift.DefaultUserID, seed.Settings.WeeklyTargetHours, encoded, now,
		)
		if err != nil {
			return shift.Storage("replace", err)
		}
	}

	stmt, err := sqlTx.PrepareContext(ctx,
		"INSERT INTO shifts (date, type, user_id, created_at) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return shift.Storage("replace", err)
	}
	defer stmt.Close()
	for _, a := range seed.Assignments {
		if _, err := stmt.ExecContext(ctx, a.Date.String(), string(a.Type), shift.DefaultUserID, now); err != nil {
			return shift.Storage("replace", fmt.Errorf("insert %s: %w", a.Date, err))
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return shift.Storage("replace", err)
	}
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return shift.Storage("ping", s.db.PingContext(ctx))
}

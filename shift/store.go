/*
store.go - Persistence contracts for assignments and settings

PURPOSE:
  Defines the interface between the domain logic and storage. The
  accounting engine never touches storage; the tracker reads snapshots
  through these contracts and hands them to the engine.

KEY INTERFACES:
  Store:         date-keyed shift assignments
  SettingsStore: the settings singleton

UNIQUENESS CONTRACT:
  At most one assignment exists per date. Upsert replaces any existing
  assignment for the date (delete-then-insert) as ONE atomic step:
  concurrent Upserts on the same date never leave two records, and the
  last writer wins. Every Upsert yields a fresh ID.

READ CONSISTENCY:
  A single ListInRange call returns a consistent result. Consecutive
  calls are not a transaction.

NOT FOUND:
  Get and GetSettings return (nil, nil) when nothing is stored.
  DeleteByDate on an empty date is a no-op.

REPLACE:
  Resetter.Replace validates the whole seed first, then swaps all data at
  once. A failure leaves the previous assignments and settings in place.

IMPLEMENTATIONS:
  - shift/store/memory.go: In-memory for tests and the -db=memory mode
  - store/sqlite/sqlite.go: SQLite

SEE ALSO:
  - errors.go: StorageError wraps implementation failures
*/
package shift

import (
	"context"

	"github.com/warp/shift-calendar/calendar"
)

// Store handles persistence of shift assignments.
type Store interface {
	// Get returns the assignment for date, or nil if there is none.
	Get(ctx context.Context, date calendar.Date) (*Assignment, error)

	// ListInRange returns assignments in [start, end] ordered by date.
	ListInRange(ctx context.Context, start, end calendar.Date) ([]Assignment, error)

	// Upsert atomically replaces any assignment on date with a new one.
	Upsert(ctx context.Context, date calendar.Date, t Type) (Assignment, error)

	// DeleteByDate removes the assignment on date. No-op if absent.
	DeleteByDate(ctx context.Context, date calendar.Date) error
}

// SettingsStore persists the settings singleton.
type SettingsStore interface {
	// GetSettings returns the stored settings, or nil if none exist.
	GetSettings(ctx context.Context) (*Settings, error)

	// SaveSettings replaces the singleton and returns the stored record.
	SaveSettings(ctx context.Context, s Settings) (Settings, error)
}

// Seed is a full replacement of the stored data. Only Date and Type of
// each assignment are used; the store assigns fresh IDs. A nil Settings
// leaves no settings record, so reads fall back to the defaults.
type Seed struct {
	Settings    *Settings
	Assignments []Assignment
}

// Resetter clears or replaces all stored data. Used by demo scenarios.
type Resetter interface {
	Reset(ctx context.Context) error

	// Replace swaps every assignment and the settings for seed in one
	// atomic step. On error the previous data is kept.
	Replace(ctx context.Context, seed Seed) error
}

// Validate checks a seed before any store mutates: known types, one
// assignment per date and valid settings.
func (s Seed) Validate() error {
	seen := make(map[string]struct{}, len(s.Assignments))
	for _, a := range s.Assignments {
		if !a.Type.Valid() {
			return Invalid("type", "unknown shift type %q", a.Type)
		}
		key := a.Date.String()
		if _, dup := seen[key]; dup {
			return Invalid("date", "more than one assignment on %s", key)
		}
		seen[key] = struct{}{}
	}
	if s.Settings != nil {
		return s.Settings.Validate()
	}
	return nil
}

// Repository is a store holding both assignments and settings.
type Repository interface {
	Store
	SettingsStore
	Resetter
}

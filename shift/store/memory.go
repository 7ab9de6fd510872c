// Package store provides in-memory shift.Store and shift.SettingsStore
// implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps assignments keyed by date. All writes take the write lock,
// so Upsert's delete-then-insert is atomic per date.
type Memory struct {
	mu          sync.RWMutex
	assignments map[string]shift.Assignment // keyed by ISO date
	nextID      int64

	// settings is kept in its persisted shape: the table as JSON text.
	settings *settingsRecord
}

type settingsRecord struct {
	id                int64
	userID            int64
	weeklyTargetHours int
	shiftTimes        string
}

var _ shift.Repository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		assignments: make(map[string]shift.Assignment),
		nextID:      1,
	}
}

// Get returns the assignment on date, or nil.
func (m *Memory) Get(_ context.Context, date calendar.Date) (*shift.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assignments[date.String()]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// ListInRange returns assignments in [start, end] ordered by date.
func (m *Memory) ListInRange(_ context.Context, start, end calendar.Date) ([]shift.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	period := calendar.Period{Start: start, End: end}
	result := make([]shift.Assignment, 0)
	for _, a := range m.assignments {
		if period.Contains(a.Date) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// Upsert replaces any assignment on date with a new record.
func (m *Memory) Upsert(_ context.Context, date calendar.Date, t shift.Type) (shift.Assignment, error) {
	if !t.Valid() {
		return shift.Assignment{}, shift.Invalid("type", "unknown shift type %q", t)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := date.String()
	delete(m.assignments, key)

	a := shift.Assignment{
		ID:     m.nextID,
		Date:   date,
		Type:   t,
		UserID: shift.DefaultUserID,
	}
	m.nextID++
	m.assignments[key] = a
	return a, nil
}

// DeleteByDate removes the assignment on date. No-op if absent.
func (m *Memory) DeleteByDate(_ context.Context, date calendar.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.assignments, date.String())
	return nil
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings decodes the stored settings, or returns nil.
func (m *Memory) GetSettings(_ context.Context) (*shift.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return nil, nil
	}
	table, err := shift.DecodeTimeTable(m.settings.shiftTimes)
	if err != nil {
		return nil, shift.Storage("get settings", err)
	}
	return &shift.Settings{
		ID:                m.settings.id,
		UserID:            m.settings.userID,
		WeeklyTargetHours: m.settings.weeklyTargetHours,
		ShiftTimes:        table,
	}, nil
}

// SaveSettings replaces the singleton.
func (m *Memory) SaveSettings(_ context.Context, s shift.Settings) (shift.Settings, error) {
	if err := s.Validate(); err != nil {
		return shift.Settings{}, err
	}
	encoded, err := shift.EncodeTimeTable(s.ShiftTimes)
	if err != nil {
		return shift.Settings{}, shift.Storage("save settings", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := int64(1)
	if m.settings != nil {
		id = m.settings.id
	}
	m.settings = &settingsRecord{
		id:                id,
		userID:            shift.DefaultUserID,
		weeklyTargetHours: s.WeeklyTargetHours,
		shiftTimes:        encoded,
	}

	s.ID = id
	s.UserID = shift.DefaultUserID
	return s, nil
}

// Reset clears all data (for testing/demo).
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assignments = make(map[string]shift.Assignment)
	m.settings = nil
	return nil
}

// Replace swaps all data for seed under one write lock.
func (m *Memory) Replace(_ context.Context, seed shift.Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	var record *settingsRecord
	if seed.Settings != nil {
		encoded, err := shift.EncodeTimeTable(seed.Settings.ShiftTimes)
		if err != nil {
			return shift.Storage("replace", err)
		}
		record = &settingsRecord{
			id:                1,
			userID:            shift.DefaultUserID,
			weeklyTargetHours: seed.Settings.WeeklyTargetHours,
			shiftTimes:        encoded,
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	assignments := make(map[string]shift.Assignment, len(seed.Assignments))
	for _, a := range seed.Assignments {
		assignments[a.Date.String()] = shift.Assignment{
			ID:     m.nextID,
			Date:   a.Date,
			Type:   a.Type,
			UserID: shift.DefaultUserID,
		}
		m.nextID++
	}
	m.assignments = assignments
	m.settings = record
	return nil
}

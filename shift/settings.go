package shift

import "fmt"

// =============================================================================
// SETTINGS - Singleton user configuration
// =============================================================================

// DefaultWeeklyTargetHours applies when no settings exist.
const DefaultWeeklyTargetHours = 36

// Settings is the singleton configuration record. It owns its TimeTable.
type Settings struct {
	ID                int64
	UserID            int64
	WeeklyTargetHours int
	ShiftTimes        TimeTable
}

// DefaultSettings is the fallback used whenever no settings are stored.
func DefaultSettings() Settings {
	return Settings{
		ID:                1,
		UserID:            DefaultUserID,
		WeeklyTargetHours: DefaultWeeklyTargetHours,
		ShiftTimes:        DefaultTimeTable(),
	}
}

// OrDefault resolves an optional stored settings record.
func OrDefault(s *Settings) Settings {
	if s == nil {
		return DefaultSettings()
	}
	return *s
}

// Validate checks the settings invariants: target >= 1 and a full table.
func (s Settings) Validate() error {
	if s.WeeklyTargetHours < 1 {
		return Invalid("weeklyTargetHours", "must be at least 1, got %d", s.WeeklyTargetHours)
	}
	if err := s.ShiftTimes.Validate(); err != nil {
		return err
	}
	return nil
}

// String summarizes the settings for log lines.
func (s Settings) String() string {
	return fmt.Sprintf("target=%dh table=%s/%s/%s/%s", s.WeeklyTargetHours,
		s.ShiftTimes.Morning.Hours(), s.ShiftTimes.Afternoon.Hours(),
		s.ShiftTimes.Night.Hours(), s.ShiftTimes.Admissions.Hours())
}

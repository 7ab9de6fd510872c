/*
tracker.go - Application service over the stores and the accounting engine

PURPOSE:
  The single entry point used by the HTTP handlers and the CLI. It reads
  snapshots from the stores, resolves the effective settings and hands
  both to the pure accounting functions.

EFFECTIVE SETTINGS:
  When nothing is stored, every read uses shift.DefaultSettings(). The
  defaults are never written back implicitly; only UpdateSettings and
  UpdateShiftTimes persist a record.

PARTIAL UPDATES:
  UpdateSettings with a nil target keeps the current target (stored or
  default). The shift table is always replaced as a whole.

SEE ALSO:
  - accounting/engine.go: the computations
  - shift/store.go: the storage contracts
*/
package tracker

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-calendar/accounting"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

// Tracker coordinates assignment writes and summary reads.
type Tracker struct {
	shifts   shift.Store
	settings shift.SettingsStore
	holidays calendar.HolidayCalendar
	log      logrus.FieldLogger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for write operations.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Tracker) { t.log = log }
}

// New creates a tracker over the given stores.
func New(shifts shift.Store, settings shift.SettingsStore, opts ...Option) *Tracker {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	t := &Tracker{
		shifts:   shifts,
		settings: settings,
		holidays: calendar.ItalianHolidays{},
		log:      discard,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromRepository is New for a store that holds both assignments and settings.
func NewFromRepository(repo shift.Repository, opts ...Option) *Tracker {
	return New(repo, repo, opts...)
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

// Assign places a shift on date, replacing whatever was there.
func (t *Tracker) Assign(ctx context.Context, date calendar.Date, typ shift.Type) (shift.Assignment, error) {
	if !typ.Valid() {
		return shift.Assignment{}, shift.Invalid("type", "unknown shift type %q", typ)
	}
	a, err := t.shifts.Upsert(ctx, date, typ)
	if err != nil {
		return shift.Assignment{}, err
	}
	t.log.WithFields(logrus.Fields{"date": date.String(), "type": typ, "id": a.ID}).Debug("shift assigned")
	return a, nil
}

// Unassign clears date. Clearing an empty date succeeds.
func (t *Tracker) Unassign(ctx context.Context, date calendar.Date) error {
	if err := t.shifts.DeleteByDate(ctx, date); err != nil {
		return err
	}
	t.log.WithField("date", date.String()).Debug("shift removed")
	return nil
}

// ShiftOn returns the assignment on date, or nil.
func (t *Tracker) ShiftOn(ctx context.Context, date calendar.Date) (*shift.Assignment, error) {
	return t.shifts.Get(ctx, date)
}

// Shifts lists the assignments in period, ordered by date.
func (t *Tracker) Shifts(ctx context.Context, period calendar.Period) ([]shift.Assignment, error) {
	return t.shifts.ListInRange(ctx, period.Start, period.End)
}

// MonthShifts lists the assignments of one calendar month.
func (t *Tracker) MonthShifts(ctx context.Context, year, month int) ([]shift.Assignment, error) {
	period, err := accounting.MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	return t.Shifts(ctx, period)
}

// =============================================================================
// SETTINGS
// =============================================================================

// Settings returns the stored settings, or the defaults.
func (t *Tracker) Settings(ctx context.Context) (shift.Settings, error) {
	stored, err := t.settings.GetSettings(ctx)
	if err != nil {
		return shift.Settings{}, err
	}
	return shift.OrDefault(stored), nil
}

// UpdateSettings replaces the shift table and, when target is non-nil,
// the weekly target. Invalid input leaves the stored record untouched.
func (t *Tracker) UpdateSettings(ctx context.Context, target *int, table shift.TimeTable) (shift.Settings, error) {
	current, err := t.Settings(ctx)
	if err != nil {
		return shift.Settings{}, err
	}

	next := current
	if target != nil {
		next.WeeklyTargetHours = *target
	}
	next.ShiftTimes = table
	if err := next.Validate(); err != nil {
		return shift.Settings{}, err
	}

	saved, err := t.settings.SaveSettings(ctx, next)
	if err != nil {
		return shift.Settings{}, err
	}
	t.log.WithField("settings", saved.String()).Info("settings updated")
	return saved, nil
}

// UpdateShiftTimes retimes a single shift type, keeping everything else.
func (t *Tracker) UpdateShiftTimes(ctx context.Context, typ shift.Type, start, end string) (shift.Settings, error) {
	if !typ.Valid() {
		return shift.Settings{}, shift.Invalid("type", "unknown shift type %q", typ)
	}
	c, err := shift.ParseConfig(start, end)
	if err != nil {
		return shift.Settings{}, err
	}

	current, err := t.Settings(ctx)
	if err != nil {
		return shift.Settings{}, err
	}
	table, err := current.ShiftTimes.With(typ, c)
	if err != nil {
		return shift.Settings{}, err
	}
	return t.UpdateSettings(ctx, nil, table)
}

// =============================================================================
// SUMMARIES
// =============================================================================

// HoursOn returns the hours worked on date under the current table.
func (t *Tracker) HoursOn(ctx context.Context, date calendar.Date) (decimal.Decimal, error) {
	settings, err := t.Settings(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	a, err := t.shifts.Get(ctx, date)
	if err != nil || a == nil {
		return decimal.Zero, err
	}
	return accounting.HoursForDate(date, []shift.Assignment{*a}, settings.ShiftTimes)
}

// Week summarizes the Monday..Sunday week containing ref.
func (t *Tracker) Week(ctx context.Context, ref calendar.Date) (accounting.WeekSummary, error) {
	settings, err := t.Settings(ctx)
	if err != nil {
		return accounting.WeekSummary{}, err
	}
	week := accounting.WeekRange(ref)
	assignments, err := t.Shifts(ctx, week)
	if err != nil {
		return accounting.WeekSummary{}, err
	}
	return accounting.Week(ref, assignments, settings.ShiftTimes, settings.WeeklyTargetHours)
}

// Month summarizes one calendar month.
func (t *Tracker) Month(ctx context.Context, year, month int) (accounting.MonthSummary, error) {
	settings, err := t.Settings(ctx)
	if err != nil {
		return accounting.MonthSummary{}, err
	}
	assignments, err := t.MonthShifts(ctx, year, month)
	if err != nil {
		return accounting.MonthSummary{}, err
	}
	return accounting.Month(year, month, assignments, settings.ShiftTimes)
}

// Year builds the statistics dashboard for year.
func (t *Tracker) Year(ctx context.Context, year int) (accounting.YearSummary, error) {
	if year < 1 || year > 9999 {
		return accounting.YearSummary{}, shift.Invalid("year", "year out of range: %d", year)
	}
	settings, err := t.Settings(ctx)
	if err != nil {
		return accounting.YearSummary{}, err
	}
	assignments, err := t.Shifts(ctx, calendar.YearPeriod(year))
	if err != nil {
		return accounting.YearSummary{}, err
	}
	return accounting.Year(year, assignments, settings.ShiftTimes, settings.WeeklyTargetHours)
}

// Holidays returns the public holidays of year.
func (t *Tracker) Holidays(year int) ([]calendar.Holiday, error) {
	if year < 1 || year > 9999 {
		return nil, shift.Invalid("year", "year out of range: %d", year)
	}
	return t.holidays.Holidays(year), nil
}

// DayKind classifies date for calendar coloring.
func (t *Tracker) DayKind(date calendar.Date) calendar.DayKind {
	return calendar.Classify(t.holidays, date)
}

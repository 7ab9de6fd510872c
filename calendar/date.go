/*
Package calendar provides the date primitives used by the shift calendar.

PURPOSE:
  Shifts are assigned to calendar days, never to instants. This package
  defines a day-granularity Date, inclusive Periods over dates, and the
  public-holiday calendar used to color days in the UI.

KEY CONCEPTS:
  - Date: a local calendar day (no time component, no timezone semantics)
  - Period: an inclusive [Start, End] range of dates
  - HolidayCalendar: yearly holiday lookup (see holidays.go)

DATE STORAGE:
  A Date wraps a time.Time pinned to midnight UTC. UTC is used only as a
  neutral carrier so that AddDays never crosses a DST boundary; it does not
  mean the calendar is UTC-based.

WIRE FORMAT:
  Dates are ISO "YYYY-MM-DD" strings in JSON, SQLite and the CLI.

SEE ALSO:
  - period.go: Period type
  - holidays.go: Italian holiday calendar and Easter computation
*/
package calendar

import (
	"fmt"
	"time"
)

// Layout is the ISO date layout used on every boundary.
const Layout = "2006-01-02"

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime drops the clock part of t, keeping its local calendar day.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return FromTime(time.Now())
}

// ParseDate parses an ISO "YYYY-MM-DD" date. Overflowing values such as
// "2025-02-30" are rejected rather than normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return FromTime(t), nil
}

// MustParseDate is ParseDate for literals in tests and fixtures.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int              { return d.Time.Year() }
func (d Date) Month() time.Month      { return d.Time.Month() }
func (d Date) Day() int               { return d.Time.Day() }
func (d Date) Weekday() time.Weekday  { return d.Time.Weekday() }
func (d Date) IsZero() bool           { return d.Time.IsZero() }
func (d Date) IsWeekend() bool        { wd := d.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (d Date) String() string         { return d.Time.Format(Layout) }

// MarshalJSON renders the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts an ISO string.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected a string", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DATE UTILITIES
// =============================================================================

func DaysBetween(from, to Date) int { return int(to.Time.Sub(from.Time).Hours() / 24) }
func StartOfYear(year int) Date     { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date       { return NewDate(year, time.December, 31) }
func StartOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, 1)
}
func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month+1, 1).AddDays(-1)
}

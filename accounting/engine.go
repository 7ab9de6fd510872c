/*
Package accounting turns shift assignments into hour totals.

PURPOSE:
  Pure, side-effect-free functions that, given a snapshot of assignments
  and a shift-time table, compute hours for a date, a week, a month or a
  year, and progress against a weekly or yearly target.

KEY INSIGHT:
  Nothing is cached. Every figure is recomputed from the current
  assignments and table, so editing the table reinterprets every past
  shift. Volumes are tiny (at most 366 assignments per year).

WEEKS:
  Weeks run Monday to Sunday and match the calendar grid exactly.

TARGETS:
  The yearly target is weekly target * 52. It is an approximation the
  dashboard figures are defined against, not a calendar-accurate count.

SEE ALSO:
  - breakdown.go: per-month and per-year aggregates
  - tracker/tracker.go: reads the stores and calls these functions
*/
package accounting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

var (
	hundred       = decimal.NewFromInt(100)
	weeksPerYear  = decimal.NewFromInt(52)
	monthsPerYear = decimal.NewFromInt(12)
)

// =============================================================================
// HOURS
// =============================================================================

// HoursFor returns the configured duration of a shift type.
func HoursFor(t shift.Type, table shift.TimeTable) (decimal.Decimal, error) {
	c, err := table.Config(t)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Hours(), nil
}

// HoursForDate returns the hours worked on date, 0 when nothing is assigned.
func HoursForDate(date calendar.Date, assignments []shift.Assignment, table shift.TimeTable) (decimal.Decimal, error) {
	for _, a := range assignments {
		if a.Date.Equal(date) {
			return HoursFor(a.Type, table)
		}
	}
	return decimal.Zero, nil
}

// TotalHours sums the hours of every assignment. Callers filter by range.
func TotalHours(assignments []shift.Assignment, table shift.TimeTable) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range assignments {
		h, err := HoursFor(a.Type, table)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(h)
	}
	return total, nil
}

// AssignmentsInRange keeps the assignments dated within [start, end],
// preserving input order.
func AssignmentsInRange(all []shift.Assignment, start, end calendar.Date) []shift.Assignment {
	period := calendar.Period{Start: start, End: end}
	result := make([]shift.Assignment, 0, len(all))
	for _, a := range all {
		if period.Contains(a.Date) {
			result = append(result, a)
		}
	}
	return result
}

// CountByType counts assignments per type. Every type is present.
func CountByType(assignments []shift.Assignment) map[shift.Type]int {
	counts := make(map[shift.Type]int, 4)
	for _, t := range shift.Types() {
		counts[t] = 0
	}
	for _, a := range assignments {
		counts[a.Type]++
	}
	return counts
}

// =============================================================================
// RANGES
// =============================================================================

// WeekRange returns the Monday..Sunday week containing ref.
func WeekRange(ref calendar.Date) calendar.Period {
	dayOfWeek := int(ref.Weekday()) // Sunday=0 .. Saturday=6
	offsetFromMonday := dayOfWeek - 1
	if dayOfWeek == 0 {
		offsetFromMonday = 6
	}
	start := ref.AddDays(-offsetFromMonday)
	return calendar.Period{Start: start, End: start.AddDays(6)}
}

// MonthRange returns the first and last day of month (1-12) in year.
func MonthRange(year, month int) (calendar.Period, error) {
	if month < 1 || month > 12 {
		return calendar.Period{}, shift.Invalid("month", "month must be 1-12, got %d", month)
	}
	if year < 1 || year > 9999 {
		return calendar.Period{}, shift.Invalid("year", "year out of range: %d", year)
	}
	return calendar.MonthPeriod(year, time.Month(month)), nil
}

// =============================================================================
// PROGRESS
// =============================================================================

// ProgressRatio returns actual/target as a percentage clamped to [0, 100].
func ProgressRatio(actual, target decimal.Decimal) (decimal.Decimal, error) {
	if !target.IsPositive() {
		return decimal.Zero, &shift.ConfigError{Message: "target hours must be positive, got " + target.String()}
	}
	ratio := actual.Div(target).Mul(hundred)
	if ratio.GreaterThan(hundred) {
		return hundred, nil
	}
	if ratio.IsNegative() {
		return decimal.Zero, nil
	}
	return ratio, nil
}

// YearlyTarget is weeklyTargetHours * 52.
func YearlyTarget(weeklyTargetHours int) decimal.Decimal {
	return decimal.NewFromInt(int64(weeklyTargetHours)).Mul(weeksPerYear)
}

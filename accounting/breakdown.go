package accounting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

// =============================================================================
// SUMMARIES - Computed views, never stored
// =============================================================================

// MonthStats aggregates one calendar month.
type MonthStats struct {
	Month        time.Month
	TotalHours   decimal.Decimal
	TotalShifts  int
	ShiftsByType map[shift.Type]int
}

// WeekSummary backs the calendar header: hours this week against the target.
type WeekSummary struct {
	Period      calendar.Period
	Hours       decimal.Decimal
	TargetHours decimal.Decimal
	Progress    decimal.Decimal
	Assignments []shift.Assignment
}

// MonthSummary is a month's assignments and total.
type MonthSummary struct {
	Year        int
	Month       time.Month
	Period      calendar.Period
	Hours       decimal.Decimal
	Assignments []shift.Assignment
	Stats       MonthStats
}

// YearSummary backs the statistics dashboard.
type YearSummary struct {
	Year                 int
	TotalHours           decimal.Decimal
	TotalShifts          int
	AverageHoursPerMonth decimal.Decimal
	TargetHours          decimal.Decimal
	Progress             decimal.Decimal
	Distribution         map[shift.Type]int
	Months               []MonthStats
}

// MonthlyBreakdown returns exactly 12 entries, January to December.
// Assignments outside year are ignored; empty months are all zero.
func MonthlyBreakdown(year int, assignments []shift.Assignment, table shift.TimeTable) ([]MonthStats, error) {
	byMonth := make([][]shift.Assignment, 12)
	for _, a := range assignments {
		if a.Date.Year() != year {
			continue
		}
		i := int(a.Date.Month()) - 1
		byMonth[i] = append(byMonth[i], a)
	}

	months := make([]MonthStats, 12)
	for i := range months {
		stats, err := monthStats(time.Month(i+1), byMonth[i], table)
		if err != nil {
			return nil, err
		}
		months[i] = stats
	}
	return months, nil
}

func monthStats(month time.Month, assignments []shift.Assignment, table shift.TimeTable) (MonthStats, error) {
	total, err := TotalHours(assignments, table)
	if err != nil {
		return MonthStats{}, err
	}
	return MonthStats{
		Month:        month,
		TotalHours:   total,
		TotalShifts:  len(assignments),
		ShiftsByType: CountByType(assignments),
	}, nil
}

// Week summarizes the week containing ref against the weekly target.
func Week(ref calendar.Date, assignments []shift.Assignment, table shift.TimeTable, weeklyTargetHours int) (WeekSummary, error) {
	period := WeekRange(ref)
	inWeek := AssignmentsInRange(assignments, period.Start, period.End)

	total, err := TotalHours(inWeek, table)
	if err != nil {
		return WeekSummary{}, err
	}
	target := decimal.NewFromInt(int64(weeklyTargetHours))
	progress, err := ProgressRatio(total, target)
	if err != nil {
		return WeekSummary{}, err
	}
	return WeekSummary{
		Period:      period,
		Hours:       total,
		TargetHours: target,
		Progress:    progress,
		Assignments: inWeek,
	}, nil
}

// Month summarizes one calendar month.
func Month(year, month int, assignments []shift.Assignment, table shift.TimeTable) (MonthSummary, error) {
	period, err := MonthRange(year, month)
	if err != nil {
		return MonthSummary{}, err
	}
	inMonth := AssignmentsInRange(assignments, period.Start, period.End)

	stats, err := monthStats(time.Month(month), inMonth, table)
	if err != nil {
		return MonthSummary{}, err
	}
	return MonthSummary{
		Year:        year,
		Month:       time.Month(month),
		Period:      period,
		Hours:       stats.TotalHours,
		Assignments: inMonth,
		Stats:       stats,
	}, nil
}

// Year builds the dashboard figures for year.
func Year(year int, assignments []shift.Assignment, table shift.TimeTable, weeklyTargetHours int) (YearSummary, error) {
	period := calendar.YearPeriod(year)
	inYear := AssignmentsInRange(assignments, period.Start, period.End)

	months, err := MonthlyBreakdown(year, inYear, table)
	if err != nil {
		return YearSummary{}, err
	}

	total := decimal.Zero
	for _, m := range months {
		total = total.Add(m.TotalHours)
	}

	target := YearlyTarget(weeklyTargetHours)
	progress, err := ProgressRatio(total, target)
	if err != nil {
		return YearSummary{}, err
	}

	return YearSummary{
		Year:                 year,
		TotalHours:           total,
		TotalShifts:          len(inYear),
		AverageHoursPerMonth: total.Div(monthsPerYear),
		TargetHours:          target,
		Progress:             progress,
		Distribution:         CountByType(inYear),
		Months:               months,
	}, nil
}

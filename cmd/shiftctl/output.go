package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/warp/shift-calendar/accounting"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func renderAssignments(tw *tabwriter.Writer, assignments []shift.Assignment, table shift.TimeTable, kind func(calendar.Date) calendar.DayKind) error {
	fmt.Fprintln(tw, "DATE\tDAY\tKIND\tSHIFT\tTIME\tHOURS")
	for _, a := range assignments {
		c, err := table.Config(a.Type)
		if err != nil {
			return err
		}
		k := ""
		if kind != nil {
			k = string(kind(a.Date))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s - %s\t%s\n",
			a.Date, a.Date.Weekday().String()[:3], k, a.Type.DisplayName(),
			c.Start(), c.End(), c.Hours().StringFixed(1))
	}
	return nil
}

func renderMonth(out io.Writer, m accounting.MonthSummary, table shift.TimeTable, kind func(calendar.Date) calendar.DayKind) error {
	fmt.Fprintf(out, "%s %d (%s, %d days)\n\n", monthName(m.Month), m.Year, m.Period, m.Period.Len())

	tw := newTable(out)
	if err := renderAssignments(tw, m.Assignments, table, kind); err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal: %sh in %d shifts\n", m.Hours.StringFixed(1), m.Stats.TotalShifts)
	return nil
}

func renderWeek(out io.Writer, w accounting.WeekSummary, table shift.TimeTable) error {
	fmt.Fprintf(out, "Week %s\n\n", w.Period)

	tw := newTable(out)
	if err := renderAssignments(tw, w.Assignments, table, nil); err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nHours: %sh / %sh (%s%%)\n",
		w.Hours.StringFixed(1), w.TargetHours.StringFixed(0), w.Progress.StringFixed(1))
	return nil
}

func renderYear(out io.Writer, y accounting.YearSummary) error {
	fmt.Fprintf(out, "Year %d\n\n", y.Year)

	tw := newTable(out)
	fmt.Fprint(tw, "MONTH\tSHIFTS\tHOURS")
	for _, t := range shift.Types() {
		fmt.Fprintf(tw, "\t%s", t)
	}
	fmt.Fprintln(tw)
	for _, m := range y.Months {
		fmt.Fprintf(tw, "%s\t%d\t%s", monthName(m.Month), m.TotalShifts, m.TotalHours.StringFixed(1))
		for _, t := range shift.Types() {
			fmt.Fprintf(tw, "\t%d", m.ShiftsByType[t])
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal hours:    %s\n", y.TotalHours.StringFixed(1))
	fmt.Fprintf(out, "Total shifts:   %d\n", y.TotalShifts)
	fmt.Fprintf(out, "Monthly avg:    %s\n", y.AverageHoursPerMonth.StringFixed(1))
	fmt.Fprintf(out, "Yearly target:  %s (%s%%)\n", y.TargetHours.StringFixed(0), y.Progress.StringFixed(1))
	for _, t := range shift.Types() {
		fmt.Fprintf(out, "  %-16s %d\n", t.DisplayName(), y.Distribution[t])
	}
	return nil
}

func renderHolidays(out io.Writer, holidays []calendar.Holiday) error {
	tw := newTable(out)
	fmt.Fprintln(tw, "DATE\tDAY\tNAME")
	for _, h := range holidays {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.Date, h.Date.Weekday().String()[:3], h.Name)
	}
	return tw.Flush()
}

func renderSettings(out io.Writer, s shift.Settings) error {
	fmt.Fprintf(out, "Weekly target: %dh\n\n", s.WeeklyTargetHours)

	tw := newTable(out)
	fmt.Fprintln(tw, "TYPE\tNAME\tSTART\tEND\tHOURS")
	for _, t := range shift.Types() {
		c, err := s.ShiftTimes.Config(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t, t.DisplayName(), c.Start(), c.End(), c.Hours().StringFixed(1))
	}
	return tw.Flush()
}

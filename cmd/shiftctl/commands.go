package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func (a *app) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign DATE TYPE",
		Short: "Assign a shift to a date, replacing any existing one",
		Long: "Assign a shift to a date, replacing any existing one.\n\n" +
			"TYPE is one of mattina, pomeriggio, notte, ricoveri\n" +
			"(or morning, afternoon, night, admissions).",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			typ, err := shift.ParseType(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			assigned, err := a.tracker.Assign(ctx, date, typ)
			if err != nil {
				return err
			}
			settings, err := a.tracker.Settings(ctx)
			if err != nil {
				return err
			}
			c, err := settings.ShiftTimes.Config(assigned.Type)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s  %s  %s\n", assigned.Date, assigned.Type.DisplayName(), c.Range())
			return nil
		},
	}
}

func (a *app) unassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign DATE",
		Short: "Clear the shift of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}
			if err := a.tracker.Unassign(cmd.Context(), date); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s  cleared\n", date)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show DATE",
		Short: "Show the shift, hours and day kind of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := calendar.ParseDate(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			assigned, err := a.tracker.ShiftOn(ctx, date)
			if err != nil {
				return err
			}
			kind := a.tracker.DayKind(date)
			if assigned == nil {
				fmt.Fprintf(a.out, "%s  %s  no shift\n", date, kind)
				return nil
			}

			hours, err := a.tracker.HoursOn(ctx, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s  %s  %s  %sh\n", date, kind, assigned.Type.DisplayName(), hours.StringFixed(1))
			return nil
		},
	}
}

// =============================================================================
// SUMMARIES
// =============================================================================

func (a *app) monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month YEAR MONTH",
		Short: "List the shifts and total hours of a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return shift.Invalid("month", "not a number: %q", args[1])
			}

			ctx := cmd.Context()
			summary, err := a.tracker.Month(ctx, year, month)
			if err != nil {
				return err
			}
			settings, err := a.tracker.Settings(ctx)
			if err != nil {
				return err
			}
			return renderMonth(a.out, summary, settings.ShiftTimes, a.tracker.DayKind)
		},
	}
}

func (a *app) weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week [DATE]",
		Short: "Show hours of the Monday-Sunday week containing DATE (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := calendar.Today()
			if len(args) == 1 {
				d, err := calendar.ParseDate(args[0])
				if err != nil {
					return err
				}
				ref = d
			}

			ctx := cmd.Context()
			week, err := a.tracker.Week(ctx, ref)
			if err != nil {
				return err
			}
			settings, err := a.tracker.Settings(ctx)
			if err != nil {
				return err
			}
			return renderWeek(a.out, week, settings.ShiftTimes)
		},
	}
}

func (a *app) yearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year YEAR",
		Short: "Show the statistics of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			summary, err := a.tracker.Year(cmd.Context(), year)
			if err != nil {
				return err
			}
			return renderYear(a.out, summary)
		},
	}
}

func (a *app) holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays YEAR",
		Short: "List the public holidays of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			holidays, err := a.tracker.Holidays(year)
			if err != nil {
				return err
			}
			return renderHolidays(a.out, holidays)
		},
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

func (a *app) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the weekly target and shift times",
	}
	cmd.AddCommand(a.settingsShowCmd(), a.settingsSetCmd())
	return cmd
}

func (a *app) settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.tracker.Settings(cmd.Context())
			if err != nil {
				return err
			}
			return renderSettings(a.out, settings)
		},
	}
}

func (a *app) settingsSetCmd() *cobra.Command {
	var (
		target int
		shifts []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the weekly target and/or shift times",
		Example: "  shiftctl settings set --target 30\n" +
			"  shiftctl settings set --shift notte=21:00-07:00 --shift mattina=06:30-13:30",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetSet := cmd.Flags().Changed("target")
			if !targetSet && len(shifts) == 0 {
				return fmt.Errorf("nothing to change: pass --target and/or --shift")
			}

			ctx := cmd.Context()
			current, err := a.tracker.Settings(ctx)
			if err != nil {
				return err
			}

			table := current.ShiftTimes
			for _, spec := range shifts {
				typ, c, err := parseShiftFlag(spec)
				if err != nil {
					return err
				}
				if table, err = table.With(typ, c); err != nil {
					return err
				}
			}

			var targetPtr *int
			if targetSet {
				targetPtr = &target
			}
			saved, err := a.tracker.UpdateSettings(ctx, targetPtr, table)
			if err != nil {
				return err
			}
			return renderSettings(a.out, saved)
		},
	}
	cmd.Flags().IntVar(&target, "target", shift.DefaultWeeklyTargetHours, "weekly target hours (>= 1)")
	cmd.Flags().StringArrayVar(&shifts, "shift", nil, "retime a shift: TYPE=HH:MM-HH:MM (repeatable)")
	return cmd
}

// =============================================================================
// PARSING
// =============================================================================

// parseShiftFlag parses "notte=22:00-07:00".
func parseShiftFlag(s string) (shift.Type, shift.Config, error) {
	name, times, ok := strings.Cut(s, "=")
	if !ok {
		return "", shift.Config{}, shift.Invalid("shift", "expected TYPE=HH:MM-HH:MM, got %q", s)
	}
	start, end, ok := strings.Cut(times, "-")
	if !ok {
		return "", shift.Config{}, shift.Invalid("shift", "expected TYPE=HH:MM-HH:MM, got %q", s)
	}

	typ, err := shift.ParseType(name)
	if err != nil {
		return "", shift.Config{}, err
	}
	c, err := shift.ParseConfig(strings.TrimSpace(start), strings.TrimSpace(end))
	if err != nil {
		return "", shift.Config{}, err
	}
	return typ, c, nil
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 || year > 9999 {
		return 0, shift.Invalid("year", "invalid year %q", s)
	}
	return year, nil
}

// monthName is the Italian month label used in headers.
func monthName(m time.Month) string {
	return [...]string{
		"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno",
		"Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre",
	}[m-1]
}

package calendar

import (
	"sort"
	"time"
)

// =============================================================================
// HOLIDAY CALENDAR - Public holidays used for day coloring
// =============================================================================

// Holiday is a public holiday. Derived per year, never persisted.
type Holiday struct {
	Name string `json:"name"`
	Date Date   `json:"date"`
}

// HolidayCalendar provides holiday lookup functionality.
type HolidayCalendar interface {
	// IsHoliday checks if a date is a public holiday.
	IsHoliday(date Date) bool

	// Holidays returns all holidays of a year, ordered by date.
	Holidays(year int) []Holiday
}

// ItalianHolidays is the Italian national holiday calendar: ten fixed-date
// holidays plus Easter Monday.
type ItalianHolidays struct{}

var _ HolidayCalendar = ItalianHolidays{}

func (ItalianHolidays) IsHoliday(date Date) bool  { return IsHoliday(date) }
func (ItalianHolidays) Holidays(year int) []Holiday { return HolidaysForYear(year) }

const EasterMondayName = "Lunedì dell'Angelo (Pasquetta)"

var fixedHolidays = []struct {
	month time.Month
	day   int
	name  string
}{
	{time.January, 1, "Capodanno"},
	{time.January, 6, "Epifania"},
	{time.April, 25, "Festa della Liberazione"},
	{time.May, 1, "Festa del Lavoro"},
	{time.June, 2, "Festa della Repubblica"},
	{time.August, 15, "Ferragosto"},
	{time.November, 1, "Ognissanti"},
	{time.December, 8, "Immacolata Concezione"},
	{time.December, 25, "Natale"},
	{time.December, 26, "Santo Stefano"},
}

// HolidaysForYear returns the eleven holidays of year ordered by date.
func HolidaysForYear(year int) []Holiday {
	holidays := make([]Holiday, 0, len(fixedHolidays)+1)
	for _, f := range fixedHolidays {
		holidays = append(holidays, Holiday{Name: f.name, Date: NewDate(year, f.month, f.day)})
	}
	holidays = append(holidays, Holiday{Name: EasterMondayName, Date: EasterMonday(year)})

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// EasterDate returns Easter Sunday using the anonymous Gregorian
// (Meeus/Jones/Butcher) algorithm.
func EasterDate(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return NewDate(year, time.Month(month), day)
}

// EasterMonday is the day after Easter Sunday.
func EasterMonday(year int) Date {
	return EasterDate(year).AddDays(1)
}

// IsHoliday reports whether date is one of the holidays of its year.
func IsHoliday(date Date) bool {
	for _, h := range HolidaysForYear(date.Year()) {
		if h.Date.Equal(date) {
			return true
		}
	}
	return false
}

// IsWeekend reports whether date is a Saturday or a Sunday.
func IsWeekend(date Date) bool {
	return date.IsWeekend()
}

// =============================================================================
// DAY KIND - Presentation classification
// =============================================================================

type DayKind string

const (
	DayWorkday DayKind = "workday"
	DayWeekend DayKind = "weekend"
	DayHoliday DayKind = "holiday"
)

// Classify returns how a day is colored. Holidays win over weekends.
func Classify(cal HolidayCalendar, date Date) DayKind {
	if cal != nil && cal.IsHoliday(date) {
		return DayHoliday
	}
	if date.IsWeekend() {
		return DayWeekend
	}
	return DayWorkday
}

package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-calendar/calendar"
)

// =============================================================================
// DATE TESTS
// =============================================================================

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 3, d.Day())
	assert.Equal(t, "2025-03-03", d.String())

	for _, bad := range []string{"", "2025-3-3", "03/03/2025", "2025-02-30", "2025-13-01"} {
		_, err := calendar.ParseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date calendar.Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-02-29"}`), &payload))
	assert.True(t, payload.Date.Equal(calendar.NewDate(2024, time.February, 29)))

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-02-29"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":20240229}`), &payload))
}

func TestEndOfMonth_LeapYear(t *testing.T) {
	assert.Equal(t, "2024-02-29", calendar.EndOfMonth(2024, time.February).String())
	assert.Equal(t, "2025-02-28", calendar.EndOfMonth(2025, time.February).String())
	assert.Equal(t, "2025-12-31", calendar.EndOfMonth(2025, time.December).String())
}

func TestPeriod_ContainsAndDays(t *testing.T) {
	p := calendar.Period{
		Start: calendar.MustParseDate("2024-06-10"),
		End:   calendar.MustParseDate("2024-06-16"),
	}

	assert.True(t, p.Contains(p.Start), "start is inclusive")
	assert.True(t, p.Contains(p.End), "end is inclusive")
	assert.False(t, p.Contains(calendar.MustParseDate("2024-06-17")))
	assert.False(t, p.Contains(calendar.MustParseDate("2024-06-09")))
	assert.Len(t, p.Days(), 7)
	assert.Equal(t, 7, p.Len())
}

// =============================================================================
// HOLIDAY TESTS
// =============================================================================

func TestEasterDate(t *testing.T) {
	cases := map[int]string{
		2000: "2000-04-23",
		2019: "2019-04-21",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2027: "2027-03-28",
		2028: "2028-04-16",
	}
	for year, want := range cases {
		assert.Equal(t, want, calendar.EasterDate(year).String(), "easter %d", year)
	}
}

func TestEasterMonday_2025(t *testing.T) {
	assert.Equal(t, "2025-04-21", calendar.EasterMonday(2025).String())
}

func TestHolidaysForYear(t *testing.T) {
	holidays := calendar.HolidaysForYear(2025)
	require.Len(t, holidays, 11)

	assert.Equal(t, "Capodanno", holidays[0].Name)
	assert.Equal(t, "2025-01-01", holidays[0].Date.String())
	assert.Equal(t, "Santo Stefano", holidays[len(holidays)-1].Name)

	for i := 1; i < len(holidays); i++ {
		assert.True(t, holidays[i-1].Date.BeforeOrEqual(holidays[i].Date), "holidays must be sorted")
	}

	var found bool
	for _, h := range holidays {
		if h.Name == calendar.EasterMondayName {
			found = true
			assert.Equal(t, "2025-04-21", h.Date.String())
		}
	}
	assert.True(t, found, "easter monday must be included")
}

func TestIsHoliday(t *testing.T) {
	assert.True(t, calendar.IsHoliday(calendar.MustParseDate("2025-12-25")))
	assert.True(t, calendar.IsHoliday(calendar.MustParseDate("2026-04-06")), "easter monday 2026")
	assert.False(t, calendar.IsHoliday(calendar.MustParseDate("2025-03-03")))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.IsWeekend(calendar.MustParseDate("2024-06-15")))  // Saturday
	assert.True(t, calendar.IsWeekend(calendar.MustParseDate("2024-06-16")))  // Sunday
	assert.False(t, calendar.IsWeekend(calendar.MustParseDate("2024-06-17"))) // Monday
}

func TestClassify(t *testing.T) {
	cal := calendar.ItalianHolidays{}

	assert.Equal(t, calendar.DayHoliday, calendar.Classify(cal, calendar.MustParseDate("2024-06-02")), "sunday holiday counts as holiday")
	assert.Equal(t, calendar.DayWeekend, calendar.Classify(cal, calendar.MustParseDate("2024-06-15")))
	assert.Equal(t, calendar.DayWorkday, calendar.Classify(cal, calendar.MustParseDate("2024-06-12")))
	assert.Equal(t, calendar.DayWeekend, calendar.Classify(nil, calendar.MustParseDate("2024-06-02")))
}

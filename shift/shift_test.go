package shift_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-calendar/shift"
)

func hours(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// HOUR COMPUTATION TESTS
// =============================================================================

func TestComputeHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"07:00", "14:00", "7"},
		{"14:00", "22:00", "8"},
		{"22:00", "07:00", "9"}, // overnight wrap
		{"13:00", "19:00", "6"},
		{"07:30", "14:00", "6.5"},
		{"08:20", "09:00", "0.7"}, // 0.666... rounds to one decimal
		{"23:45", "00:15", "0.5"},
		{"08:00", "08:00", "24"}, // equal times wrap to a full day
	}
	for _, tc := range cases {
		got := shift.ComputeHours(shift.MustParseClock(tc.start), shift.MustParseClock(tc.end))
		assert.True(t, hours(tc.want).Equal(got), "%s-%s: want %s, got %s", tc.start, tc.end, tc.want, got)
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, bad := range []string{"", "7", "7:00", "07:5", "25:00", "12:60", "7am", "07:00:00"} {
		_, err := shift.ParseClock(bad)
		assert.ErrorIs(t, err, shift.ErrValidation, "expected %q to be rejected", bad)
	}

	c, err := shift.ParseClock("07:00")
	require.NoError(t, err)
	assert.Equal(t, shift.Clock{Hour: 7}, c)
}

// =============================================================================
// SHIFT TYPE TESTS
// =============================================================================

func TestParseType(t *testing.T) {
	cases := map[string]shift.Type{
		"mattina":    shift.Morning,
		"morning":    shift.Morning,
		"Pomeriggio": shift.Afternoon,
		"night":      shift.Night,
		"ricoveri":   shift.Admissions,
		"admissions": shift.Admissions,
	}
	for in, want := range cases {
		got, err := shift.ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := shift.ParseType("evening")
	assert.ErrorIs(t, err, shift.ErrUnknownType)
	assert.True(t, shift.IsClientError(err))
}

func TestTypes_AllValid(t *testing.T) {
	types := shift.Types()
	require.Len(t, types, 4)
	for _, ty := range types {
		assert.True(t, ty.Valid())
		assert.NotEqual(t, string(ty), ty.DisplayName())
	}
	assert.False(t, shift.Type("evening").Valid())
}

// =============================================================================
// TIME TABLE TESTS
// =============================================================================

func TestDefaultTimeTable(t *testing.T) {
	table := shift.DefaultTimeTable()
	require.NoError(t, table.Validate())

	want := map[shift.Type]string{
		shift.Morning:    "7",
		shift.Afternoon:  "8",
		shift.Night:      "9",
		shift.Admissions: "6",
	}
	for ty, h := range want {
		c, err := table.Config(ty)
		require.NoError(t, err)
		assert.True(t, hours(h).Equal(c.Hours()), "%s: want %s got %s", ty, h, c.Hours())
	}
	assert.Equal(t, "22:00 - 07:00 (9 ore)", table.Night.Range())
}

func TestTimeTable_UnknownType(t *testing.T) {
	_, err := shift.DefaultTimeTable().Config(shift.Type("evening"))
	assert.ErrorIs(t, err, shift.ErrConfig)

	_, err = shift.DefaultTimeTable().With(shift.Type("evening"), shift.DefaultTimeTable().Morning)
	assert.ErrorIs(t, err, shift.ErrConfig)
}

func TestTimeTable_With(t *testing.T) {
	original := shift.DefaultTimeTable()
	c, err := shift.ParseConfig("06:00", "14:30")
	require.NoError(t, err)

	updated, err := original.With(shift.Morning, c)
	require.NoError(t, err)

	assert.True(t, hours("8.5").Equal(updated.Morning.Hours()))
	assert.True(t, hours("7").Equal(original.Morning.Hours()), "original table must not change")
	assert.Equal(t, original.Night, updated.Night)
}

func TestTimeTable_ZeroValueRejected(t *testing.T) {
	var table shift.TimeTable
	assert.ErrorIs(t, table.Validate(), shift.ErrConfig)
}

func TestEncodeDecodeTimeTable(t *testing.T) {
	encoded, err := shift.EncodeTimeTable(shift.DefaultTimeTable())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"mattina":    {"start": "07:00", "end": "14:00", "hours": 7},
		"pomeriggio": {"start": "14:00", "end": "22:00", "hours": 8},
		"notte":      {"start": "22:00", "end": "07:00", "hours": 9},
		"ricoveri":   {"start": "13:00", "end": "19:00", "hours": 6}
	}`, encoded)

	decoded, err := shift.DecodeTimeTable(encoded)
	require.NoError(t, err)
	assert.Equal(t, shift.DefaultTimeTable(), decoded)
}

func TestDecodeTimeTable_RecomputesHours(t *testing.T) {
	// A stale "hours" value is ignored: duration always follows start/end.
	decoded, err := shift.DecodeTimeTable(`{
		"mattina":    {"start": "07:00", "end": "15:00", "hours": 7},
		"pomeriggio": {"start": "14:00", "end": "22:00", "hours": 8},
		"notte":      {"start": "22:00", "end": "07:00", "hours": 9},
		"ricoveri":   {"start": "13:00", "end": "19:00", "hours": 6}
	}`)
	require.NoError(t, err)
	assert.True(t, hours("8").Equal(decoded.Morning.Hours()))
}

func TestDecodeTimeTable_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"missing entry": `{"mattina":{"start":"07:00","end":"14:00"}}`,
		"bad time":      `{"mattina":{"start":"7","end":"14:00"},"pomeriggio":{"start":"14:00","end":"22:00"},"notte":{"start":"22:00","end":"07:00"},"ricoveri":{"start":"13:00","end":"19:00"}}`,
		"missing end":   `{"mattina":{"start":"07:00"},"pomeriggio":{"start":"14:00","end":"22:00"},"notte":{"start":"22:00","end":"07:00"},"ricoveri":{"start":"13:00","end":"19:00"}}`,
		"wrong shape":   `[]`,
	}
	for name, in := range cases {
		_, err := shift.DecodeTimeTable(in)
		assert.ErrorIs(t, err, shift.ErrValidation, name)
	}
}

// =============================================================================
// SETTINGS TESTS
// =============================================================================

func TestSettings_Defaults(t *testing.T) {
	s := shift.OrDefault(nil)
	assert.Equal(t, 36, s.WeeklyTargetHours)
	assert.Equal(t, shift.DefaultTimeTable(), s.ShiftTimes)
	assert.NoError(t, s.Validate())

	stored := shift.Settings{WeeklyTargetHours: 40, ShiftTimes: shift.DefaultTimeTable()}
	assert.Equal(t, 40, shift.OrDefault(&stored).WeeklyTargetHours)
}

func TestSettings_TargetMustBePositive(t *testing.T) {
	s := shift.DefaultSettings()
	s.WeeklyTargetHours = 0
	assert.ErrorIs(t, s.Validate(), shift.ErrValidation)
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := shift.Storage("upsert", cause)

	assert.ErrorIs(t, err, shift.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.True(t, shift.IsStorageError(err))
	assert.False(t, shift.IsClientError(err))
	assert.Contains(t, err.Error(), "upsert")

	assert.Same(t, err, shift.Storage("outer", err), "already wrapped errors are kept")
	assert.NoError(t, shift.Storage("noop", nil))
}

func TestClock_JSON(t *testing.T) {
	var c shift.Clock
	require.NoError(t, json.Unmarshal([]byte(`"06:05"`), &c))
	assert.Equal(t, shift.Clock{Hour: 6, Minute: 5}, c)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"06:05"`, string(out))
}

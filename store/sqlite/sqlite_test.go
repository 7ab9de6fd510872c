package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
	"github.com/warp/shift-calendar/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_Upsert_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	day := calendar.MustParseDate("2025-03-03")

	first, err := s.Upsert(ctx, day, shift.Night)
	require.NoError(t, err)
	second, err := s.Upsert(ctx, day, shift.Morning)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := s.Get(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, shift.Morning, got.Type)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, shift.DefaultUserID, got.UserID)

	list, err := s.ListInRange(ctx, day, day)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLite_Upsert_ConcurrentSameDate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	day := calendar.MustParseDate("2025-05-05")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Upsert(ctx, day, shift.Types()[i%4])
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := s.ListInRange(ctx, day, day)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLite_Upsert_RejectsUnknownType(t *testing.T) {
	s := newStore(t)
	_, err := s.Upsert(context.Background(), calendar.MustParseDate("2025-03-03"), shift.Type("evening"))
	assert.ErrorIs(t, err, shift.ErrValidation)
}

func TestSQLite_GetMissing(t *testing.T) {
	s := newStore(t)
	got, err := s.Get(context.Background(), calendar.MustParseDate("2025-03-03"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_DeleteByDate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	day := calendar.MustParseDate("2025-03-03")

	require.NoError(t, s.DeleteByDate(ctx, day), "no-op when absent")

	_, err := s.Upsert(ctx, day, shift.Admissions)
	require.NoError(t, err)
	require.NoError(t, s.DeleteByDate(ctx, day))

	got, err := s.Get(ctx, day)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_ListInRange(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, d := range []string{"2025-03-31", "2025-03-01", "2025-02-28", "2025-04-01", "2025-03-15"} {
		_, err := s.Upsert(ctx, calendar.MustParseDate(d), shift.Afternoon)
		require.NoError(t, err)
	}

	march := calendar.MonthPeriod(2025, 3)
	list, err := s.ListInRange(ctx, march.Start, march.End)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-03-01", list[0].Date.String())
	assert.Equal(t, "2025-03-31", list[2].Date.String())

	empty, err := s.ListInRange(ctx, calendar.MustParseDate("2030-01-01"), calendar.MustParseDate("2030-01-31"))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLite_Settings(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	settings := shift.DefaultSettings()
	settings.WeeklyTargetHours = 32
	c, err := shift.ParseConfig("22:30", "06:30")
	require.NoError(t, err)
	settings.ShiftTimes, err = settings.ShiftTimes.With(shift.Night, c)
	require.NoError(t, err)

	first, err := s.SaveSettings(ctx, settings)
	require.NoError(t, err)

	settings.WeeklyTargetHours = 30
	second, err := s.SaveSettings(ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the singleton keeps its row")

	got, err = s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 30, got.WeeklyTargetHours)
	assert.Equal(t, settings.ShiftTimes, got.ShiftTimes)
	assert.Equal(t, "8", got.ShiftTimes.Night.Hours().String())
}

func TestSQLite_SaveSettings_Invalid(t *testing.T) {
	s := newStore(t)
	bad := shift.DefaultSettings()
	bad.WeeklyTargetHours = 0

	_, err := s.SaveSettings(context.Background(), bad)
	assert.ErrorIs(t, err, shift.ErrValidation)

	got, err := s.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_Reset(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	day := calendar.MustParseDate("2025-03-03")

	_, err := s.Upsert(ctx, day, shift.Night)
	require.NoError(t, err)
	_, err = s.SaveSettings(ctx, shift.DefaultSettings())
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	got, err := s.Get(ctx, day)
	require.NoError(t, err)
	assert.Nil(t, got)
	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestSQLite_Replace(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	old := calendar.MustParseDate("2024-01-01")
	_, err := s.Upsert(ctx, old, shift.Night)
	require.NoError(t, err)

	settings := shift.DefaultSettings()
	settings.WeeklyTargetHours = 200
	err = s.Replace(ctx, shift.Seed{
		Settings: &settings,
		Assignments: []shift.Assignment{
			{Date: calendar.MustParseDate("2025-03-04"), Type: shift.Admissions},
			{Date: calendar.MustParseDate("2025-03-03"), Type: shift.Morning},
		},
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, old)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err := s.ListInRange(ctx, calendar.MustParseDate("2025-03-01"), calendar.MustParseDate("2025-03-31"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, shift.Morning, list[0].Type)

	stored, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 200, stored.WeeklyTargetHours)

	// A seed without settings clears them
	require.NoError(t, s.Replace(ctx, shift.Seed{}))
	stored, err = s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSQLite_Replace_FailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	day := calendar.MustParseDate("2025-03-03")
	_, err := s.Upsert(ctx, day, shift.Night)
	require.NoError(t, err)

	err = s.Replace(ctx, shift.Seed{Assignments: []shift.Assignment{
		{Date: calendar.MustParseDate("2025-03-04"), Type: shift.Morning},
		{Date: calendar.MustParseDate("2025-03-04"), Type: shift.Night},
	}})
	assert.ErrorIs(t, err, shift.ErrValidation)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = s.Replace(cancelled, shift.Seed{Assignments: []shift.Assignment{
		{Date: calendar.MustParseDate("2025-03-05"), Type: shift.Morning},
	}})
	assert.ErrorIs(t, err, shift.ErrStorage)

	list, err := s.ListInRange(ctx, day, day.AddDays(5))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, shift.Night, list[0].Type)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shifts.db")
	day := calendar.MustParseDate("2025-03-03")

	s, err := sqlite.New(path)
	require.NoError(t, err)
	_, err = s.Upsert(ctx, day, shift.Night)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = sqlite.New(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, shift.Night, got.Type)
	assert.NoError(t, s.Ping(ctx))
}

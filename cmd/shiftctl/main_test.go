package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes one shiftctl invocation against dbPath.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out, dbPath)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_AssignShowUnassign(t *testing.T) {
	db := filepath.Join(t.TempDir(), "shifts.db")

	out, err := run(t, db, "assign", "2025-03-03", "notte")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-03  Turno Notte  22:00 - 07:00 (9 ore)")

	out, err = run(t, db, "assign", "2025-03-03", "morning")
	require.NoError(t, err)
	assert.Contains(t, out, "Turno Mattina")

	out, err = run(t, db, "show", "2025-03-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Turno Mattina  7.0h")
	assert.Contains(t, out, "workday")

	_, err = run(t, db, "unassign", "2025-03-03")
	require.NoError(t, err)

	out, err = run(t, db, "show", "2025-03-03")
	require.NoError(t, err)
	assert.Contains(t, out, "no shift")
}

func TestCLI_InvalidInput(t *testing.T) {
	db := filepath.Join(t.TempDir(), "shifts.db")

	_, err := run(t, db, "assign", "2025-02-30", "notte")
	assert.Error(t, err)
	_, err = run(t, db, "assign", "2025-03-03", "evening")
	assert.Error(t, err)
	_, err = run(t, db, "month", "2025", "13")
	assert.Error(t, err)
	_, err = run(t, db, "year", "zero")
	assert.Error(t, err)
	_, err = run(t, db, "settings", "set")
	assert.Error(t, err, "nothing to change")
	_, err = run(t, db, "settings", "set", "--shift", "notte=22")
	assert.Error(t, err)
	_, err = run(t, db, "settings", "set", "--target", "0")
	assert.Error(t, err)
}

func TestCLI_MonthAndWeek(t *testing.T) {
	db := filepath.Join(t.TempDir(), "shifts.db")
	for _, args := range [][]string{
		{"assign", "2024-06-10", "mattina"},
		{"assign", "2024-06-12", "notte"},
		{"assign", "2024-06-30", "ricoveri"},
	} {
		_, err := run(t, db, args...)
		require.NoError(t, err)
	}

	out, err := run(t, db, "month", "2024", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Giugno 2024 ([2024-06-01, 2024-06-30], 30 days)")
	assert.Contains(t, out, "Total: 22.0h in 3 shifts")

	out, err = run(t, db, "week", "2024-06-12")
	require.NoError(t, err)
	assert.Contains(t, out, "[2024-06-10, 2024-06-16]")
	assert.Contains(t, out, "Hours: 16.0h / 36h (44.4%)")
}

func TestCLI_Settings(t *testing.T) {
	db := filepath.Join(t.TempDir(), "shifts.db")

	out, err := run(t, db, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Weekly target: 36h")

	out, err = run(t, db, "settings", "set", "--target", "30", "--shift", "notte=21:00-07:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Weekly target: 30h")
	assert.Contains(t, out, "10.0")

	// --shift alone keeps the target
	_, err = run(t, db, "settings", "set", "--shift", "mattina=06:00-14:00")
	require.NoError(t, err)

	_, err = run(t, db, "assign", "2025-03-03", "mattina")
	require.NoError(t, err)
	out, err = run(t, db, "week", "2025-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "Hours: 8.0h / 30h")
}

func TestCLI_YearAndHolidays(t *testing.T) {
	db := filepath.Join(t.TempDir(), "shifts.db")
	_, err := run(t, db, "assign", "2025-04-21", "notte")
	require.NoError(t, err)

	out, err := run(t, db, "year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Total hours:    9.0")
	assert.Contains(t, out, "Yearly target:  1872")

	out, err = run(t, db, "holidays", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-04-21")
	assert.Contains(t, out, "Pasquetta")

	out, err = run(t, db, "show", "2025-04-21")
	require.NoError(t, err)
	assert.Contains(t, out, "holiday")
}

func TestCLI_MemoryStore(t *testing.T) {
	out, err := run(t, "memory", "assign", "2025-03-03", "ricoveri")
	require.NoError(t, err)
	assert.Contains(t, out, "13:00 - 19:00 (6 ore)")
}

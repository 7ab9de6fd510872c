package shift

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Clock is a wall-clock time of day at minute precision.
type Clock struct {
	Hour   int
	Minute int
}

const clockLayout = "15:04"

// ParseClock parses a 24h "HH:MM" time of day. Both fields are two digits,
// so "7:00" is rejected.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err == nil && len(s) != len(clockLayout) {
		err = fmt.Errorf("want %d characters, got %d", len(clockLayout), len(s))
	}
	if err != nil {
		return Clock{}, &ValidationError{Field: "time", Message: fmt.Sprintf("invalid time %q (use HH:MM)", s), Err: err}
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustParseClock is ParseClock for literals.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &ValidationError{Field: "time", Message: "time must be a string", Err: err}
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var (
	sixty      = decimal.NewFromInt(60)
	twentyFour = decimal.NewFromInt(24)
)

// ComputeHours returns the wall-clock span from start to end in hours,
// rounded to one decimal place. An end at or before start wraps past
// midnight, so equal times mean a full 24h shift.
func ComputeHours(start, end Clock) decimal.Decimal {
	raw := decimal.NewFromInt(int64(end.Hour - start.Hour)).
		Add(decimal.NewFromInt(int64(end.Minute - start.Minute)).Div(sixty))
	if !raw.IsPositive() {
		raw = raw.Add(twentyFour)
	}
	return raw.Round(1)
}

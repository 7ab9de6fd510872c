/*
timetable.go - Shift-time table and its JSON text boundary

PURPOSE:
  Maps each of the four shift types to a start time, an end time and a
  duration in hours. The duration is stored next to start/end for fast
  lookup, so the only way to build a Config is NewConfig, which always
  recomputes it.

JSON SCHEMA (the persisted "shiftTimes" text):
  {
    "mattina":    {"start": "07:00", "end": "14:00", "hours": 7},
    "pomeriggio": {"start": "14:00", "end": "22:00", "hours": 8},
    "notte":      {"start": "22:00", "end": "07:00", "hours": 9},
    "ricoveri":   {"start": "13:00", "end": "19:00", "hours": 6}
  }

  Decoding requires all four entries and ignores the incoming "hours":
  it is recomputed from start/end.

SEE ALSO:
  - clock.go: ComputeHours
  - settings.go: Settings owns the table
*/
package shift

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONFIG - One row of the table
// =============================================================================

// Config is the start/end/hours of one shift type.
type Config struct {
	start Clock
	end   Clock
	hours decimal.Decimal
	set   bool
}

// NewConfig builds a Config with hours derived from start and end.
func NewConfig(start, end Clock) Config {
	return Config{start: start, end: end, hours: ComputeHours(start, end), set: true}
}

// ParseConfig parses "HH:MM" start and end times.
func ParseConfig(start, end string) (Config, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Config{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Config{}, err
	}
	return NewConfig(s, e), nil
}

func mustConfig(start, end string) Config {
	c, err := ParseConfig(start, end)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Config) Start() Clock           { return c.start }
func (c Config) End() Clock             { return c.end }
func (c Config) Hours() decimal.Decimal { return c.hours }

// IsZero reports whether c was never built through NewConfig.
func (c Config) IsZero() bool {
	return !c.set
}

// Range renders "07:00 - 14:00 (7 ore)" as shown in the shift details.
func (c Config) Range() string {
	return fmt.Sprintf("%s - %s (%s ore)", c.start, c.end, c.hours.String())
}

type configJSON struct {
	Start Clock   `json:"start"`
	End   Clock   `json:"end"`
	Hours float64 `json:"hours"`
}

func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{Start: c.start, End: c.end, Hours: c.hours.InexactFloat64()})
}

func (c *Config) UnmarshalJSON(b []byte) error {
	var raw struct {
		Start *Clock `json:"start"`
		End   *Clock `json:"end"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Start == nil || raw.End == nil {
		return Invalid("shiftTimes", "start and end are required")
	}
	*c = NewConfig(*raw.Start, *raw.End)
	return nil
}

// =============================================================================
// TIME TABLE - Total mapping from Type to Config
// =============================================================================

// TimeTable holds one Config per shift type. Replaced wholesale on update.
type TimeTable struct {
	Morning    Config
	Afternoon  Config
	Night      Config
	Admissions Config
}

// DefaultTimeTable is the table applied when no settings exist.
func DefaultTimeTable() TimeTable {
	return TimeTable{
		Morning:    mustConfig("07:00", "14:00"),
		Afternoon:  mustConfig("14:00", "22:00"),
		Night:      mustConfig("22:00", "07:00"),
		Admissions: mustConfig("13:00", "19:00"),
	}
}

// Config returns the entry for t.
func (tt TimeTable) Config(t Type) (Config, error) {
	switch t {
	case Morning:
		return tt.Morning, nil
	case Afternoon:
		return tt.Afternoon, nil
	case Night:
		return tt.Night, nil
	case Admissions:
		return tt.Admissions, nil
	}
	return Config{}, &ConfigError{Message: fmt.Sprintf("no shift time configured for %q", t)}
}

// With returns a copy of the table with the entry for t replaced.
func (tt TimeTable) With(t Type, c Config) (TimeTable, error) {
	switch t {
	case Morning:
		tt.Morning = c
	case Afternoon:
		tt.Afternoon = c
	case Night:
		tt.Night = c
	case Admissions:
		tt.Admissions = c
	default:
		return tt, &ConfigError{Message: fmt.Sprintf("no shift time configured for %q", t)}
	}
	return tt, nil
}

// Validate rejects tables holding an entry that was not built by NewConfig.
func (tt TimeTable) Validate() error {
	for _, t := range Types() {
		c, err := tt.Config(t)
		if err != nil {
			return err
		}
		if c.IsZero() {
			return &ConfigError{Message: fmt.Sprintf("shift time for %q is not set", t)}
		}
	}
	return nil
}

func (tt TimeTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[Type]Config{
		Morning:    tt.Morning,
		Afternoon:  tt.Afternoon,
		Night:      tt.Night,
		Admissions: tt.Admissions,
	})
}

func (tt *TimeTable) UnmarshalJSON(b []byte) error {
	var raw map[string]Config
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var table TimeTable
	for _, t := range Types() {
		c, ok := raw[string(t)]
		if !ok {
			return Invalid("shiftTimes", "missing entry for %s", t)
		}
		table, _ = table.With(t, c)
	}
	*tt = table
	return nil
}

// EncodeTimeTable renders the table as the JSON text stored in settings.
func EncodeTimeTable(tt TimeTable) (string, error) {
	b, err := json.Marshal(tt)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeTimeTable parses the JSON text stored in settings.
func DecodeTimeTable(s string) (TimeTable, error) {
	var tt TimeTable
	if err := json.Unmarshal([]byte(s), &tt); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return TimeTable{}, err
		}
		return TimeTable{}, &ValidationError{Field: "shiftTimes", Message: "shiftTimes is not a valid shift-time table", Err: err}
	}
	return tt, nil
}

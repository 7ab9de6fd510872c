// Package shift defines the shift calendar domain: the four shift types,
// the shift-time table, settings, assignments and the store contracts.
package shift

import (
	"strings"

	"github.com/warp/shift-calendar/calendar"
)

// =============================================================================
// SHIFT TYPE
// =============================================================================

// Type is one of the four fixed shift categories. The string value is the
// wire label used by the UI and persisted in the stores.
type Type string

const (
	Morning    Type = "mattina"
	Afternoon  Type = "pomeriggio"
	Night      Type = "notte"
	Admissions Type = "ricoveri"
)

// Types returns every shift type in display order.
func Types() []Type {
	return []Type{Morning, Afternoon, Night, Admissions}
}

// ParseType accepts the wire label or the English name, case-insensitively.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Types() {
		if name == string(t) || name == t.English() {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "type", Message: "unknown shift type " + s, Err: ErrUnknownType}
}

// Valid reports whether t is one of the four shift types.
func (t Type) Valid() bool {
	switch t {
	case Morning, Afternoon, Night, Admissions:
		return true
	}
	return false
}

// DisplayName is the label shown in the shift selector.
func (t Type) DisplayName() string {
	switch t {
	case Morning:
		return "Turno Mattina"
	case Afternoon:
		return "Turno Pomeriggio"
	case Night:
		return "Turno Notte"
	case Admissions:
		return "Turno Ricoveri"
	}
	return string(t)
}

// English returns the English name of the type.
func (t Type) English() string {
	switch t {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Night:
		return "night"
	case Admissions:
		return "admissions"
	}
	return string(t)
}

func (t Type) String() string { return string(t) }

// =============================================================================
// ASSIGNMENT
// =============================================================================

// DefaultUserID is the single implicit user.
const DefaultUserID int64 = 1

// Assignment is the fact that a calendar date has a shift type.
// At most one Assignment exists per date.
type Assignment struct {
	ID     int64
	Date   calendar.Date
	Type   Type
	UserID int64
}

package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-calendar/accounting"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

// =============================================================================
// REQUEST DTOs
// =============================================================================

// UpsertShiftRequest is the body of POST /api/shifts.
type UpsertShiftRequest struct {
	Date   string `json:"date" validate:"required"`
	Type   string `json:"type" validate:"required"`
	UserID *int64 `json:"userId,omitempty" validate:"omitempty,eq=1"`
}

// UpdateSettingsRequest is the body of PUT /api/settings. ShiftTimes is the
// table encoded as a JSON string; an absent target keeps the current one.
type UpdateSettingsRequest struct {
	WeeklyTargetHours *int   `json:"weeklyTargetHours,omitempty" validate:"omitempty,min=1"`
	ShiftTimes        string `json:"shiftTimes" validate:"required"`
}

// UpdateShiftTimeRequest is the body of PUT /api/settings/shift/{type}.
type UpdateShiftTimeRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// LoadScenarioRequest is the body of POST /api/scenarios/load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// =============================================================================
// RESPONSE DTOs
// =============================================================================

// ShiftDTO is an assignment on the wire.
type ShiftDTO struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	UserID int64  `json:"userId"`
}

// SettingsDTO is the settings singleton on the wire.
type SettingsDTO struct {
	ID                int64  `json:"id"`
	UserID            int64  `json:"userId"`
	WeeklyTargetHours int    `json:"weeklyTargetHours"`
	ShiftTimes        string `json:"shiftTimes"`
}

// WeekSummaryDTO backs the calendar header.
type WeekSummaryDTO struct {
	Start       string     `json:"start"`
	End         string     `json:"end"`
	Hours       float64    `json:"hours"`
	TargetHours float64    `json:"targetHours"`
	Progress    float64    `json:"progress"`
	Shifts      []ShiftDTO `json:"shifts"`
}

// MonthStatsDTO is one month of the yearly breakdown.
type MonthStatsDTO struct {
	Month        int            `json:"month"`
	TotalHours   float64        `json:"totalHours"`
	TotalShifts  int            `json:"totalShifts"`
	ShiftsByType map[string]int `json:"shiftsByType"`
}

// MonthSummaryDTO is a month's shifts and total hours.
type MonthSummaryDTO struct {
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Hours  float64       `json:"hours"`
	Stats  MonthStatsDTO `json:"stats"`
	Shifts []ShiftDTO    `json:"shifts"`
}

// YearSummaryDTO backs the statistics dashboard.
type YearSummaryDTO struct {
	Year                 int             `json:"year"`
	TotalHours           float64         `json:"totalHours"`
	TotalShifts          int             `json:"totalShifts"`
	AverageHoursPerMonth float64         `json:"averageHoursPerMonth"`
	TargetHours          float64         `json:"targetHours"`
	Progress             float64         `json:"progress"`
	Distribution         map[string]int  `json:"distribution"`
	Months               []MonthStatsDTO `json:"months"`
}

// HolidayDTO is a public holiday on the wire.
type HolidayDTO struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SuccessResponse is returned by DELETE endpoints.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse carries a static, user-facing message.
type ErrorResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toShiftDTO(a shift.Assignment) ShiftDTO {
	return ShiftDTO{
		ID:     a.ID,
		Date:   a.Date.String(),
		Type:   string(a.Type),
		UserID: a.UserID,
	}
}

func toShiftDTOs(as []shift.Assignment) []ShiftDTO {
	dtos := make([]ShiftDTO, len(as))
	for i, a := range as {
		dtos[i] = toShiftDTO(a)
	}
	return dtos
}

func toSettingsDTO(s shift.Settings) (SettingsDTO, error) {
	encoded, err := shift.EncodeTimeTable(s.ShiftTimes)
	if err != nil {
		return SettingsDTO{}, err
	}
	return SettingsDTO{
		ID:                s.ID,
		UserID:            s.UserID,
		WeeklyTargetHours: s.WeeklyTargetHours,
		ShiftTimes:        encoded,
	}, nil
}

func toMonthStatsDTO(m accounting.MonthStats) MonthStatsDTO {
	return MonthStatsDTO{
		Month:        int(m.Month),
		TotalHours:   num(m.TotalHours),
		TotalShifts:  m.TotalShifts,
		ShiftsByType: typeCounts(m.ShiftsByType),
	}
}

func toWeekSummaryDTO(w accounting.WeekSummary) WeekSummaryDTO {
	return WeekSummaryDTO{
		Start:       w.Period.Start.String(),
		End:         w.Period.End.String(),
		Hours:       num(w.Hours),
		TargetHours: num(w.TargetHours),
		Progress:    num(w.Progress.Round(1)),
		Shifts:      toShiftDTOs(w.Assignments),
	}
}

func toMonthSummaryDTO(m accounting.MonthSummary) MonthSummaryDTO {
	return MonthSummaryDTO{
		Year:   m.Year,
		Month:  int(m.Month),
		Start:  m.Period.Start.String(),
		End:    m.Period.End.String(),
		Hours:  num(m.Hours),
		Stats:  toMonthStatsDTO(m.Stats),
		Shifts: toShiftDTOs(m.Assignments),
	}
}

func toYearSummaryDTO(y accounting.YearSummary) YearSummaryDTO {
	months := make([]MonthStatsDTO, len(y.Months))
	for i, m := range y.Months {
		months[i] = toMonthStatsDTO(m)
	}
	return YearSummaryDTO{
		Year:                 y.Year,
		TotalHours:           num(y.TotalHours),
		TotalShifts:          y.TotalShifts,
		AverageHoursPerMonth: num(y.AverageHoursPerMonth.Round(1)),
		TargetHours:          num(y.TargetHours),
		Progress:             num(y.Progress.Round(1)),
		Distribution:         typeCounts(y.Distribution),
		Months:               months,
	}
}

func toHolidayDTOs(hs []calendar.Holiday) []HolidayDTO {
	dtos := make([]HolidayDTO, len(hs))
	for i, h := range hs {
		dtos[i] = HolidayDTO{Name: h.Name, Date: h.Date.String()}
	}
	return dtos
}

func typeCounts(counts map[shift.Type]int) map[string]int {
	out := make(map[string]int, len(counts))
	for t, n := range counts {
		out[string(t)] = n
	}
	return out
}

// num converts hours to a JSON number at the transport boundary.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

/*
handlers.go - HTTP API handlers for the shift calendar

PURPOSE:
  Exposes the tracker via REST API. Handles HTTP request/response, JSON
  serialization and input validation, and delegates to the tracker.

ENDPOINTS:
  Shifts:
    GET    /api/shifts/{year}/{month}   List assignments of a month
    GET    /api/shifts/date/{date}      Assignment on a date, or null
    POST   /api/shifts                  Assign {date, type} (replaces)
    DELETE /api/shifts/date/{date}      Clear a date

  Settings:
    GET    /api/settings                Effective settings (defaults if unset)
    PUT    /api/settings                Replace {weeklyTargetHours?, shiftTimes}
    PUT    /api/settings/shift/{type}   Retime one shift {start, end}

  Summaries:
    GET    /api/summary/week/{date}         Week containing date
    GET    /api/summary/month/{year}/{month}
    GET    /api/summary/year/{year}         Statistics dashboard

  Holidays:
    GET    /api/holidays/{year}

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    GET    /api/scenarios/current      Currently loaded scenario, or null
    POST   /api/scenarios/load         Load a demo scenario (atomic)
    POST   /api/scenarios/reset        Clear all data

SHIFT TIMES ON THE WIRE:
  Settings carry shiftTimes as a JSON string, not a nested object:
    {"id":1,"userId":1,"weeklyTargetHours":36,"shiftTimes":"{\"mattina\":...}"}

ERROR HANDLING:
  Errors are returned as {"message": "..."} with a static text:
  - 400: Validation errors, invalid input
  - 500: Storage and internal errors
  The underlying error is logged, never sent to the client.

SECURITY NOTE:
  Single implicit user (userId 1). No authentication.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
	"github.com/warp/shift-calendar/tracker"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	tracker  *tracker.Tracker
	resetter shift.Resetter
	validate *validator.Validate
	log      logrus.FieldLogger

	// now anchors demo scenarios on the current month.
	now func() time.Time

	// mu guards currentScenario and serializes scenario loads.
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a handler over the tracker. resetter may be nil, in
// which case loading scenarios is refused.
func NewHandler(t *tracker.Tracker, resetter shift.Resetter, log logrus.FieldLogger) *Handler {
	return &Handler{
		tracker:  t,
		resetter: resetter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListMonthShifts returns the assignments of a month.
// GET /api/shifts/{year}/{month}
func (h *Handler) ListMonthShifts(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid year or month")
		return
	}

	shifts, err := h.tracker.MonthShifts(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err, "Invalid year or month", "Failed to fetch shifts")
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// GetShiftByDate returns the assignment on a date, or null.
// GET /api/shifts/date/{date}
func (h *Handler) GetShiftByDate(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	a, err := h.tracker.ShiftOn(r.Context(), date)
	if err != nil {
		h.fail(w, r, err, "Invalid date", "Failed to fetch shift")
		return
	}
	if a == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(*a))
}

// UpsertShift assigns a shift to a date, replacing any existing one.
// POST /api/shifts
func (h *Handler) UpsertShift(w http.ResponseWriter, r *http.Request) {
	var req UpsertShiftRequest
	if err := h.decode(r, &req); err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid shift data")
		return
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid shift data")
		return
	}
	typ, err := shift.ParseType(req.Type)
	if err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid shift data")
		return
	}

	a, err := h.tracker.Assign(r.Context(), date, typ)
	if err != nil {
		h.fail(w, r, err, "Invalid shift data", "Failed to save shift")
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(a))
}

// DeleteShiftByDate clears a date. Clearing an empty date succeeds.
// DELETE /api/shifts/date/{date}
func (h *Handler) DeleteShiftByDate(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	if err := h.tracker.Unassign(r.Context(), date); err != nil {
		h.fail(w, r, err, "Invalid date", "Failed to delete shift")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the effective settings.
// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.tracker.Settings(r.Context())
	if err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	h.writeSettings(w, r, s)
}

// UpdateSettings replaces the settings.
// PUT /api/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := h.decode(r, &req); err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid settings data")
		return
	}

	table, err := shift.DecodeTimeTable(req.ShiftTimes)
	if err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid settings data")
		return
	}

	s, err := h.tracker.UpdateSettings(r.Context(), req.WeeklyTargetHours, table)
	if err != nil {
		h.fail(w, r, err, "Invalid settings data", "Failed to update settings")
		return
	}
	h.writeSettings(w, r, s)
}

// UpdateShiftTime retimes one shift type and keeps the rest of the settings.
// PUT /api/settings/shift/{type}
func (h *Handler) UpdateShiftTime(w http.ResponseWriter, r *http.Request) {
	typ, err := shift.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid shift type")
		return
	}

	var req UpdateShiftTimeRequest
	if err := h.decode(r, &req); err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid settings data")
		return
	}

	s, err := h.tracker.UpdateShiftTimes(r.Context(), typ, req.Start, req.End)
	if err != nil {
		h.fail(w, r, err, "Invalid settings data", "Failed to update settings")
		return
	}
	h.writeSettings(w, r, s)
}

func (h *Handler) writeSettings(w http.ResponseWriter, r *http.Request, s shift.Settings) {
	dto, err := toSettingsDTO(s)
	if err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// SUMMARY HANDLERS
// =============================================================================

// GetWeekSummary returns hours of the Monday..Sunday week containing date.
// GET /api/summary/week/{date}
func (h *Handler) GetWeekSummary(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	week, err := h.tracker.Week(r.Context(), date)
	if err != nil {
		h.fail(w, r, err, "Invalid date", "Failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, toWeekSummaryDTO(week))
}

// GetMonthSummary returns a month's shifts and total hours.
// GET /api/summary/month/{year}/{month}
func (h *Handler) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonthParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid year or month")
		return
	}

	m, err := h.tracker.Month(r.Context(), year, month)
	if err != nil {
		h.fail(w, r, err, "Invalid year or month", "Failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, toMonthSummaryDTO(m))
}

// GetYearSummary returns the statistics dashboard of a year.
// GET /api/summary/year/{year}
func (h *Handler) GetYearSummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	y, err := h.tracker.Year(r.Context(), year)
	if err != nil {
		h.fail(w, r, err, "Invalid year", "Failed to compute summary")
		return
	}
	writeJSON(w, http.StatusOK, toYearSummaryDTO(y))
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the public holidays of a year.
// GET /api/holidays/{year}
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year")
		return
	}

	holidays, err := h.tracker.Holidays(year)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year")
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTOs(holidays))
}

// =============================================================================
// HELPERS
// =============================================================================

// decode parses a JSON body and runs the validate tags.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return shift.Invalid("body", "malformed JSON: %v", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return shift.Invalid(verrs[0].Field(), "failed %q check", verrs[0].Tag())
		}
		return shift.Invalid("body", "%v", err)
	}
	return nil
}

// fail maps a tracker error to a status. Storage failures are checked
// first: a corrupt row may wrap a validation error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, clientMsg, serverMsg string) {
	h.logFailure(r, err)
	if shift.IsClientError(err) && !shift.IsStorageError(err) {
		writeError(w, http.StatusBadRequest, clientMsg)
		return
	}
	writeError(w, http.StatusInternalServerError, serverMsg)
}

func (h *Handler) logFailure(r *http.Request, err error) {
	h.log.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.GetReqID(r.Context()),
		"error":      err.Error(),
	}).Warn("request failed")
}

func yearMonthParams(r *http.Request) (year, month int, ok bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

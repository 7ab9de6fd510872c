/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	rosters for demos. Each scenario replaces the whole store with its own
	settings and shifts around the current month.

AVAILABLE SCENARIOS:

	empty:             No shifts, default settings
	standard-rotation: Morning, afternoon, night, then two rest days, all month
	night-heavy:       Nights on weekdays, 40h target, longer night shift
	admissions-week:   Admissions Monday to Friday of the current week

HOW SCENARIOS WORK:
 1. Build a shift.Seed: settings (nil for defaults) plus assignments
 2. Hand it to Resetter.Replace, which swaps all data in one step
 3. A failed load keeps whatever was stored before

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "standard-rotation"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create a seed function: xxxSeed(ref)
 3. Add case to buildScenario

NOTE:

	Scenarios replace the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler dependencies
  - shift/store.go: Seed and Resetter.Replace
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/warp/shift-calendar/accounting"
	"github.com/warp/shift-calendar/calendar"
	"github.com/warp/shift-calendar/shift"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "empty",
		Name:        "Empty Calendar",
		Description: "No shifts assigned, default shift times and 36h target",
	},
	{
		ID:          "standard-rotation",
		Name:        "Standard Rotation",
		Description: "Morning, afternoon, night, two rest days, repeated over the current month",
	},
	{
		ID:          "night-heavy",
		Name:        "Night Heavy",
		Description: "Weekday nights 21:00-07:00 against a 40h target",
	},
	{
		ID:          "admissions-week",
		Name:        "Admissions Week",
		Description: "Admissions shifts Monday to Friday of the current week",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario loads a predefined scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := h.decode(r, &req); err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !knownScenario(req.ScenarioID) {
		writeError(w, http.StatusBadRequest, "Unknown scenario")
		return
	}
	if h.resetter == nil {
		writeError(w, http.StatusInternalServerError, "Scenarios are not available")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ref := calendar.FromTime(h.now())
	if err := h.loadScenario(r.Context(), req.ScenarioID, ref); err != nil {
		// The store kept its previous data, so currentScenario still holds.
		h.logFailure(r, err)
		writeError(w, http.StatusInternalServerError, "Failed to load scenario")
		return
	}

	h.currentScenario = req.ScenarioID
	h.log.WithField("scenario", req.ScenarioID).Info("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears every shift and the settings.
// POST /api/scenarios/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if h.resetter == nil {
		writeError(w, http.StatusInternalServerError, "Reset is not available")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.resetter.Reset(r.Context()); err != nil {
		h.logFailure(r, err)
		writeError(w, http.StatusInternalServerError, "Failed to reset database")
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func knownScenario(id string) bool {
	for _, s := range scenarios {
		if s.ID == id {
			return true
		}
	}
	return false
}

// loadScenario builds the scenario seed and hands it to the store in one
// Replace, so a failed load leaves the previous data in place.
func (h *Handler) loadScenario(ctx context.Context, id string, ref calendar.Date) error {
	seed, err := buildScenario(id, ref)
	if err != nil {
		return err
	}
	if err := h.resetter.Replace(ctx, seed); err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

func buildScenario(id string, ref calendar.Date) (shift.Seed, error) {
	switch id {
	case "empty":
		return shift.Seed{}, nil
	case "standard-rotation":
		return standardRotationSeed(ref), nil
	case "night-heavy":
		return nightHeavySeed(ref)
	case "admissions-week":
		return admissionsWeekSeed(ref), nil
	default:
		return shift.Seed{}, fmt.Errorf("unknown scenario %q", id)
	}
}

// =============================================================================
// SCENARIO SEEDS
// =============================================================================

var rotation = []shift.Type{shift.Morning, shift.Afternoon, shift.Night, "", ""}

func standardRotationSeed(ref calendar.Date) shift.Seed {
	var seed shift.Seed
	month := calendar.MonthPeriod(ref.Year(), ref.Month())
	for i, day := range month.Days() {
		if t := rotation[i%len(rotation)]; t != "" {
			seed.Assignments = append(seed.Assignments, shift.Assignment{Date: day, Type: t})
		}
	}
	return seed
}

func nightHeavySeed(ref calendar.Date) (shift.Seed, error) {
	nights, err := shift.ParseConfig("21:00", "07:00")
	if err != nil {
		return shift.Seed{}, err
	}
	table, err := shift.DefaultTimeTable().With(shift.Night, nights)
	if err != nil {
		return shift.Seed{}, err
	}
	settings := shift.DefaultSettings()
	settings.WeeklyTargetHours = 40
	settings.ShiftTimes = table

	seed := shift.Seed{Settings: &settings}
	month := calendar.MonthPeriod(ref.Year(), ref.Month())
	for _, day := range month.Days() {
		if !day.IsWeekend() {
			seed.Assignments = append(seed.Assignments, shift.Assignment{Date: day, Type: shift.Night})
		}
	}
	return seed, nil
}

func admissionsWeekSeed(ref calendar.Date) shift.Seed {
	var seed shift.Seed
	for _, day := range accounting.WeekRange(ref).Days()[:5] {
		seed.Assignments = append(seed.Assignments, shift.Assignment{Date: day, Type: shift.Admissions})
	}
	return seed
}

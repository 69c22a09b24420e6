package main

import (
	"net/http"

	"github.com/vivelevelo/polarized/internal/plan"
)

type generatePlanRequest struct {
	Goal           plan.Goal      `json:"goal"`
	TimeCommitment plan.Tier      `json:"time_commitment"`
	PreferredDays  []plan.Weekday `json:"preferred_days"`
	Seed           uint64         `json:"seed"`
}

// planPOST generates a fresh training program, replacing any existing one.
func (app *application) planPOST(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	schedule, err := app.planService.GeneratePlan(r.Context(), plan.GenerateParams{
		Goal:           req.Goal,
		TimeCommitment: req.TimeCommitment,
		PreferredDays:  req.PreferredDays,
		Seed:           req.Seed,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, envelope{
		"schedule": schedule,
		"program":  app.programMetadata(),
	})
}

// planGET returns the athlete's stored schedule with program metadata.
func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	schedule, err := app.planService.GetSchedule(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"schedule": schedule,
		"program":  app.programMetadata(),
	})
}

func (app *application) programMetadata() envelope {
	program := app.planService.Program()
	return envelope{
		"total_weeks":       program.TotalWeeks,
		"peak_week":         program.PeakWeek,
		"recovery_week":     program.RecoveryWeek,
		"week_descriptions": program.WeekDescriptions,
	}
}

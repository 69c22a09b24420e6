package main

import (
	"errors"
	"net/http"

	"github.com/vivelevelo/polarized/internal/plan"
)

// weekGET returns one week of the schedule. When an adaptation is active its
// record rides along so clients can show what changed and offer a restore.
func (app *application) weekGET(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseWeekParam(w, r)
	if !ok {
		return
	}

	schedule, err := app.planService.GetWeek(r.Context(), week)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := envelope{"week": week, "schedule": schedule}
	record, err := app.planService.GetAdaptation(r.Context(), week)
	switch {
	case err == nil:
		response["adaptation"] = record
	case !errors.Is(err, plan.ErrNotFound):
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, response)
}

type adaptWeekRequest struct {
	TimeSlots plan.TimeSlotMap `json:"time_slots"`
}

// weekAdaptPOST fits the week's workouts into the athlete's available time.
func (app *application) weekAdaptPOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseWeekParam(w, r)
	if !ok {
		return
	}
	var req adaptWeekRequest
	if err := decodeJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.TimeSlots) == 0 {
		app.clientError(w, r, http.StatusBadRequest, "time_slots is required")
		return
	}

	result, err := app.planService.AdaptWeek(r.Context(), week, req.TimeSlots)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, result)
}

// weekRestorePOST puts the pre-adaptation week back.
func (app *application) weekRestorePOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseWeekParam(w, r)
	if !ok {
		return
	}

	schedule, err := app.planService.RestoreWeek(r.Context(), week)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"week": week, "schedule": schedule})
}

type adjustVolumeRequest struct {
	Level plan.VolumeLevel `json:"level"`
}

// weekVolumePOST cuts the week's volume to minimal or reduced.
func (app *application) weekVolumePOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseWeekParam(w, r)
	if !ok {
		return
	}
	var req adjustVolumeRequest
	if err := decodeJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Level != plan.VolumeMinimal && req.Level != plan.VolumeReduced {
		app.clientError(w, r, http.StatusUnprocessableEntity, "level must be minimal or reduced")
		return
	}

	schedule, err := app.planService.AdjustVolume(r.Context(), week, req.Level)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"week": week, "schedule": schedule})
}

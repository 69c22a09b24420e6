package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// markdown renders workout text to HTML. Raw HTML in the source is escaped
// (WithUnsafe is NOT set), so catalog typos cannot inject markup.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// workoutGET returns the workout scheduled on one day, with its text fields
// rendered to HTML for display.
func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseWeekParam(w, r)
	if !ok {
		return
	}
	day, ok := app.parseDayParam(w, r)
	if !ok {
		return
	}

	workout, err := app.planService.WorkoutDetail(r.Context(), week, day)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	rendered := make(map[string]string, 3)
	for field, source := range map[string]string{
		"description_html": workout.Description,
		"tips_html":        workout.Tips,
		"details_html":     workout.Details,
	} {
		if rendered[field], err = renderMarkdown(source); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"week":             week,
		"day":              day,
		"workout":          workout,
		"description_html": rendered["description_html"],
		"tips_html":        rendered["tips_html"],
		"details_html":     rendered["details_html"],
	})
}

// workoutCompletePOST marks a scheduled workout as done.
func (app *application) workoutCompletePOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseWeekParam(w, r)
	if !ok {
		return
	}
	day, ok := app.parseDayParam(w, r)
	if !ok {
		return
	}

	if err := app.planService.CompleteWorkout(r.Context(), week, day); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"completed": true})
}

type rpeRequest struct {
	RPE int `json:"rpe"`
}

// workoutRPEPOST records perceived exertion and returns intensity advice.
func (app *application) workoutRPEPOST(w http.ResponseWriter, r *http.Request) {
	week, ok := app.parseWeekParam(w, r)
	if !ok {
		return
	}
	day, ok := app.parseDayParam(w, r)
	if !ok {
		return
	}
	var req rpeRequest
	if err := decodeJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.RPE < 1 || req.RPE > 10 {
		app.clientError(w, r, http.StatusUnprocessableEntity, "rpe must be between 1 and 10")
		return
	}

	advice, err := app.planService.SaveRPE(r.Context(), week, day, req.RPE)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"advice": advice})
}

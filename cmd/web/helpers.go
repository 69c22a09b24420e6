package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vivelevelo/polarized/internal/plan"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", slog.Any("error", err))
	app.writeJSON(w, r, http.StatusInternalServerError, envelope{"error": "internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, envelope{"error": message})
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound, "not found")
}

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", slog.Any("error", err))
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// typos in payloads fail loudly instead of silently applying defaults.
func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// parseWeekParam parses the "week" path parameter. On failure it sends a 404
// and returns false.
func (app *application) parseWeekParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil {
		app.notFound(w, r)
		return 0, false
	}
	return week, true
}

// parseDayParam parses the "day" path parameter as a weekday name.
func (app *application) parseDayParam(w http.ResponseWriter, r *http.Request) (plan.Weekday, bool) {
	day, ok := plan.ParseWeekday(r.PathValue("day"))
	if !ok {
		app.notFound(w, r)
		return "", false
	}
	return day, true
}

// handleServiceError maps service failures to responses: missing resources
// become 404s, everything else a 500.
func (app *application) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, plan.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if errors.Is(err, plan.ErrUnknownGoal) || errors.Is(err, plan.ErrUnknownTier) {
		app.clientError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	app.serverError(w, r, err)
}

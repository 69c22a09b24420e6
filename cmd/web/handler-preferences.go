package main

import (
	"net/http"

	"github.com/vivelevelo/polarized/internal/plan"
)

// preferencesGET returns the athlete's stored preferences, defaults included.
func (app *application) preferencesGET(w http.ResponseWriter, r *http.Request) {
	prefs, err := app.planService.GetPreferences(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, prefs)
}

// preferencesPOST stores the athlete's preferences.
func (app *application) preferencesPOST(w http.ResponseWriter, r *http.Request) {
	var prefs plan.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if prefs.FTPWatts < 0 {
		app.clientError(w, r, http.StatusUnprocessableEntity, "ftp_watts must not be negative")
		return
	}
	for _, day := range prefs.PreferredDays {
		if _, ok := plan.ParseWeekday(string(day)); !ok {
			app.clientError(w, r, http.StatusUnprocessableEntity, "unknown weekday "+string(day))
			return
		}
	}

	if err := app.planService.SavePreferences(r.Context(), prefs); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, prefs)
}

package main

import (
	"net/http"
)

// progressGET returns completion stats over the whole program.
func (app *application) progressGET(w http.ResponseWriter, r *http.Request) {
	progress, err := app.planService.Progress(r.Context())
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, progress)
}

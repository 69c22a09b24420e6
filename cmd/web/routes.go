package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(app.timeout(next))))
		}
		// session binds an athlete identity to the request: every visitor
		// gets one on first contact, so there is no separate signup step.
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.athleteSession(base(next)))))
		}
		noAuth = func(next http.Handler) http.Handler {
			return app.recoverPanic(base(next))
		}
	)

	mux.Handle("POST /api/plan", session(http.HandlerFunc(app.planPOST)))
	mux.Handle("GET /api/plan", session(http.HandlerFunc(app.planGET)))

	mux.Handle("GET /api/weeks/{week}", session(http.HandlerFunc(app.weekGET)))
	mux.Handle("POST /api/weeks/{week}/adapt", session(http.HandlerFunc(app.weekAdaptPOST)))
	mux.Handle("POST /api/weeks/{week}/restore", session(http.HandlerFunc(app.weekRestorePOST)))
	mux.Handle("POST /api/weeks/{week}/volume", session(http.HandlerFunc(app.weekVolumePOST)))

	mux.Handle("GET /api/weeks/{week}/days/{day}", session(http.HandlerFunc(app.workoutGET)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/complete", session(http.HandlerFunc(app.workoutCompletePOST)))
	mux.Handle("POST /api/weeks/{week}/days/{day}/rpe", session(http.HandlerFunc(app.workoutRPEPOST)))

	mux.Handle("GET /api/progress", session(http.HandlerFunc(app.progressGET)))

	mux.Handle("GET /api/preferences", session(http.HandlerFunc(app.preferencesGET)))
	mux.Handle("POST /api/preferences", session(http.HandlerFunc(app.preferencesPOST)))

	mux.Handle("GET /api/healthy", noAuth(http.HandlerFunc(app.healthy)))

	return mux
}

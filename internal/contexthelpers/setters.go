package contexthelpers

import (
	"context"
	"net/http"
)

// SetAthleteID binds the session's athlete to the request context.
func SetAthleteID(r *http.Request, athleteID int64) *http.Request {
	ctx := context.WithValue(r.Context(), AthleteIDContextKey, athleteID)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := context.WithValue(r.Context(), CurrentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, cspNonce string) *http.Request {
	ctx := context.WithValue(r.Context(), CspNonceContextKey, cspNonce)
	return r.WithContext(ctx)
}

package contexthelpers

import (
	"context"
)

// AthleteID returns the athlete bound to the current session, or 0 when the
// session has no athlete yet.
func AthleteID(ctx context.Context) int64 {
	athleteID, ok := ctx.Value(AthleteIDContextKey).(int64)
	if !ok {
		return 0
	}

	return athleteID
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(CurrentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSPNonce(ctx context.Context) string {
	cspNonce, ok := ctx.Value(CspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return cspNonce
}

package contexthelpers

type contextKey string

const AthleteIDContextKey = contextKey("athleteID")
const CurrentPathContextKey = contextKey("currentPath")
const CspNonceContextKey = contextKey("cspNonce")

package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidIndicator = New(
		"INVALID_INDICATOR",
		"Indicator does not support this operation",
		http.StatusBadRequest,
	)

	ErrIndustryNotFound = New(
		"INDUSTRY_NOT_FOUND",
		"Industry not found",
		http.StatusNotFound,
	)

	ErrScenarioNotFound = New(
		"SCENARIO_NOT_FOUND",
		"Scenario not found",
		http.StatusNotFound,
	)

	ErrChallengeNotFound = New(
		"CHALLENGE_NOT_FOUND",
		"Challenge not found in scenario",
		http.StatusNotFound,
	)

	ErrQueryNotFound = New(
		"QUERY_NOT_FOUND",
		"Saved query not found",
		http.StatusNotFound,
	)

	ErrJobNotFound = New(
		"JOB_NOT_FOUND",
		"Narrative job not found",
		http.StatusNotFound,
	)

	ErrNarrativeUnavailable = New(
		"NARRATIVE_UNAVAILABLE",
		"Narrative service is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

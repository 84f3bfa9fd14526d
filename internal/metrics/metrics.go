// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Token issuance
	IncTokenIssued()

	// Gate outcomes. reason is the auth kind string, e.g. "missing_token".
	IncGateDenied(reason string)

	// Business endpoints
	IncEmailLookup()
	IncEmailChange()
	IncValidationFailure(field string) // field: "account_id", "new_email", "body"

	// Rate limiting on the open token endpoint
	IncRateLimited()
}

package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncTokenIssued is a no-op.
func (n *NoopRecorder) IncTokenIssued() {}

// IncGateDenied is a no-op.
func (n *NoopRecorder) IncGateDenied(reason string) {}

// IncEmailLookup is a no-op.
func (n *NoopRecorder) IncEmailLookup() {}

// IncEmailChange is a no-op.
func (n *NoopRecorder) IncEmailChange() {}

// IncValidationFailure is a no-op.
func (n *NoopRecorder) IncValidationFailure(field string) {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited() {}

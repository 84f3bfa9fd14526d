package metrics

import (
	"sync"
	"sync/atomic"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	TokensIssued       uint64
	GateDenied         map[string]uint64
	EmailLookups       uint64
	EmailChanges       uint64
	ValidationFailures map[string]uint64
	RateLimited        uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	tokensIssued uint64
	emailLookups uint64
	emailChanges uint64
	rateLimited  uint64

	mu                 sync.Mutex
	gateDenied         map[string]uint64
	validationFailures map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		gateDenied:         make(map[string]uint64),
		validationFailures: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		TokensIssued:       atomic.LoadUint64(&m.tokensIssued),
		GateDenied:         copyCounts(m.gateDenied),
		EmailLookups:       atomic.LoadUint64(&m.emailLookups),
		EmailChanges:       atomic.LoadUint64(&m.emailChanges),
		ValidationFailures: copyCounts(m.validationFailures),
		RateLimited:        atomic.LoadUint64(&m.rateLimited),
	}
}

// IncTokenIssued increments the issued token counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncGateDenied increments the denial counter for reason.
func (m *InMemoryRecorder) IncGateDenied(reason string) {
	m.mu.Lock()
	m.gateDenied[reason]++
	m.mu.Unlock()
}

// IncEmailLookup increments the email lookup counter.
func (m *InMemoryRecorder) IncEmailLookup() {
	atomic.AddUint64(&m.emailLookups, 1)
}

// IncEmailChange increments the email change counter.
func (m *InMemoryRecorder) IncEmailChange() {
	atomic.AddUint64(&m.emailChanges, 1)
}

// IncValidationFailure increments the validation failure counter for field.
func (m *InMemoryRecorder) IncValidationFailure(field string) {
	m.mu.Lock()
	m.validationFailures[field]++
	m.mu.Unlock()
}

// IncRateLimited increments the rate limited counter.
func (m *InMemoryRecorder) IncRateLimited() {
	atomic.AddUint64(&m.rateLimited, 1)
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

package auth

import (
	"errors"
	"net/http"
)

// Kind classifies why a request was denied by an auth gate.
type Kind int

const (
	// KindMissing means no bearer token was supplied.
	KindMissing Kind = iota + 1
	// KindInvalid means the token failed signature, format or expiry checks.
	KindInvalid
	// KindForbiddenTenant means the tenant header was absent or not accepted.
	KindForbiddenTenant
)

// String returns the log-friendly reason for k.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing_token"
	case KindInvalid:
		return "invalid_token"
	case KindForbiddenTenant:
		return "forbidden_tenant"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per Kind. Match with errors.Is.
var (
	ErrMissingToken    = errors.New("authentication token required")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrForbiddenTenant = errors.New("invalid tenant id")
)

// Error is a gate denial. Err carries the underlying cause, if any.
type Error struct {
	Kind Kind
	Err  error
}

// NewError returns an *Error of kind k wrapping cause.
func NewError(k Kind, cause error) *Error {
	return &Error{Kind: k, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.sentinel().Error()
	}
	return e.sentinel().Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindMissing:
		return ErrMissingToken
	case KindForbiddenTenant:
		return ErrForbiddenTenant
	default:
		return ErrInvalidToken
	}
}

// StatusCode maps a gate error to its HTTP status.
// A missing credential is 401; every other denial is 403.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusForbidden
	}
	if e.Kind == KindMissing {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// Message returns the client-facing message for a gate error.
func Message(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Forbidden"
	}
	switch e.Kind {
	case KindMissing:
		return "Authentication token required"
	case KindForbiddenTenant:
		return "Invalid tenant ID"
	default:
		return "Invalid or expired token"
	}
}

// Reason returns the Kind string for logging, or "unknown".
func Reason(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "unknown"
	}
	return e.Kind.String()
}

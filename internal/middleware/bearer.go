package middleware

import (
	"net/http"
	"strings"

	"github.com/cdlmock/accountapi/internal/auth"
)

// TokenVerifier verifies a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// BearerGate returns a Gate that requires a valid token in the Authorization header.
// Verified claims are attached to the request context.
func BearerGate(v TokenVerifier) Gate {
	return GateFunc(func(r *http.Request) (*http.Request, error) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			return nil, auth.NewError(auth.KindMissing, nil)
		}

		claims, err := v.Verify(token)
		if err != nil {
			return nil, err
		}

		return r.WithContext(auth.ContextWithClaims(r.Context(), claims)), nil
	})
}

// extractBearerToken returns the second space-separated segment of header.
// The scheme word is not checked, so "Bearer <t>" and "Token <t>" both yield <t>.
func extractBearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

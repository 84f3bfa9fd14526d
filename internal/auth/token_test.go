package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("test-secret", 8*time.Hour)

	signed, err := tokens.Issue("123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if signed == "" {
		t.Fatal("Issue() returned empty token")
	}
	if parts := strings.Split(signed, "."); len(parts) != 3 {
		t.Fatalf("expected compact JWS with 3 parts, got %d", len(parts))
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != "123" {
		t.Errorf("expected userId '123', got %q", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("expected token id to be set")
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 8*time.Hour {
		t.Errorf("expected 8h lifetime, got %s", lifetime)
	}
}

func TestTokens_UniqueIDs(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("test-secret", time.Hour)

	a, _ := tokens.Issue("123")
	b, _ := tokens.Issue("123")

	ca, err := tokens.Verify(a)
	if err != nil {
		t.Fatalf("Verify(a) error = %v", err)
	}
	cb, err := tokens.Verify(b)
	if err != nil {
		t.Fatalf("Verify(b) error = %v", err)
	}
	if ca.ID == cb.ID {
		t.Errorf("expected distinct token ids, both %q", ca.ID)
	}
}

func TestTokens_Verify_Rejects(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("test-secret", 8*time.Hour)

	wrongSecret, err := NewTokens("other-secret", 8*time.Hour).Issue("123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	stale := NewTokens("test-secret", 8*time.Hour)
	stale.now = func() time.Time { return time.Now().Add(-9 * time.Hour) }
	expired, err := stale.Issue("123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	hs512WrongSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"userId": "123",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	// RS256 header over an HMAC-style signature; rejected before any key is used.
	enc := base64.RawURLEncoding
	rs256 := enc.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(`{"userId":"123"}`)) + "." +
		enc.EncodeToString([]byte("signature"))

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "123",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", wrongSecret},
		{"expired", expired},
		{"hs512 wrong secret", hs512WrongSecret},
		{"non-hmac algorithm", rs256},
		{"alg none", unsigned},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tokens.Verify(tt.token)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}

			var authErr *Error
			if !errors.As(err, &authErr) || authErr.Kind != KindInvalid {
				t.Errorf("expected KindInvalid *Error, got %#v", err)
			}
		})
	}
}

func TestTokens_Verify_AcceptsHMACFamily(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("test-secret", 8*time.Hour)

	methods := []jwt.SigningMethod{
		jwt.SigningMethodHS256,
		jwt.SigningMethodHS384,
		jwt.SigningMethodHS512,
	}

	for _, m := range methods {
		m := m
		t.Run(m.Alg(), func(t *testing.T) {
			t.Parallel()

			signed, err := jwt.NewWithClaims(m, jwt.MapClaims{
				"userId": "123",
				"exp":    time.Now().Add(time.Hour).Unix(),
			}).SignedString([]byte("test-secret"))
			if err != nil {
				t.Fatalf("SignedString() error = %v", err)
			}

			claims, err := tokens.Verify(signed)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if claims.UserID != "123" {
				t.Errorf("expected userId '123', got %q", claims.UserID)
			}
		})
	}
}

func TestTokens_Verify_ExpiredWraps(t *testing.T) {
	t.Parallel()

	stale := NewTokens("test-secret", time.Minute)
	stale.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _ := stale.Issue("123")

	_, err := NewTokens("test-secret", time.Minute).Verify(expired)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected wrapped jwt.ErrTokenExpired, got %v", err)
	}
}

func TestFormatTTL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ttl  time.Duration
		want string
	}{
		{8 * time.Hour, "8h"},
		{90 * time.Minute, "90m"},
		{45 * time.Second, "45s"},
		{1500 * time.Millisecond, "1.5s"},
	}

	for _, tt := range tests {
		if got := FormatTTL(tt.ttl); got != tt.want {
			t.Errorf("FormatTTL(%s) = %q, want %q", tt.ttl, got, tt.want)
		}
	}

	if got := NewTokens("s", 8*time.Hour).ExpiresIn(); got != "8h" {
		t.Errorf("ExpiresIn() = %q, want 8h", got)
	}
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/cdlmock/accountapi/internal/handler/dto"
	"github.com/cdlmock/accountapi/internal/metrics"
)

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	ExpiresIn() string
}

// TokenHandler serves the open token endpoint used by tests and demos.
// It performs no identity verification.
type TokenHandler struct {
	issuer  TokenIssuer
	subject string
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewTokenHandler creates a TokenHandler that issues tokens for subject.
func NewTokenHandler(issuer TokenIssuer, subject string, logger *slog.Logger, rec metrics.Recorder) *TokenHandler {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &TokenHandler{
		issuer:  issuer,
		subject: subject,
		logger:  logger,
		metrics: rec,
	}
}

// Generate handles GET /generate-token.
func (h *TokenHandler) Generate(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.Issue(h.subject)
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.metrics.IncTokenIssued()
	h.logger.Info("token_generated",
		"user_id", h.subject,
		"expires_in", h.issuer.ExpiresIn(),
	)

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		Message:   "Token generated successfully",
		Token:     token,
		ExpiresIn: h.issuer.ExpiresIn(),
	})
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cdlmock/accountapi/internal/account"
	"github.com/cdlmock/accountapi/internal/auth"
	"github.com/cdlmock/accountapi/internal/handler/dto"
	"github.com/cdlmock/accountapi/internal/metrics"
	"github.com/cdlmock/accountapi/internal/validate"
)

const (
	msgInvalidAccountID = "Invalid account_id. Must be 5-10 digits"
	msgInvalidEmail     = "Invalid email format"
	msgInvalidJSON      = "Invalid JSON body"
	msgBodyTooLarge     = "Request body too large"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// EmailHandler handles the account email endpoints.
// Both routes expect the bearer and tenant gates to have run.
type EmailHandler struct {
	store    account.Store
	validate *validator.Validate
	logger   *slog.Logger
	metrics  metrics.Recorder
}

// NewEmailHandler creates a new EmailHandler.
func NewEmailHandler(store account.Store, v *validator.Validate, logger *slog.Logger, rec metrics.Recorder) *EmailHandler {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &EmailHandler{
		store:    store,
		validate: v,
		logger:   logger,
		metrics:  rec,
	}
}

// Get handles GET /get_email/{account_id}.
func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "account_id")

	if err := h.validate.Var(accountID, validate.TagAccountID); err != nil {
		h.rejectField(w, r, "account_id", msgInvalidAccountID)
		return
	}

	acct, err := h.store.Email(r.Context(), accountID)
	if err != nil {
		h.logger.Error("email lookup failed",
			"account_id", accountID,
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, "Failed to retrieve email")
		return
	}

	h.metrics.IncEmailLookup()
	h.logger.Info("email_retrieved",
		"account_id", acct.ID,
		"user_id", auth.UserIDFromContext(r.Context()),
	)

	writeJSON(w, http.StatusOK, dto.GetEmailResponse{
		Message:   "Email retrieved successfully",
		AccountID: acct.ID,
		Email:     acct.Email,
	})
}

// Change handles POST /change_email.
func (h *EmailHandler) Change(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangeEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		h.rejectField(w, r, "body", msgInvalidJSON)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		switch validate.FirstFailedTag(err) {
		case validate.TagAccountID:
			h.rejectField(w, r, "account_id", msgInvalidAccountID)
		default:
			h.rejectField(w, r, "new_email", msgInvalidEmail)
		}
		return
	}

	acct, err := h.store.ChangeEmail(r.Context(), req.AccountID, req.NewEmail)
	if err != nil {
		h.logger.Error("email change failed",
			"account_id", req.AccountID,
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, "Failed to change email")
		return
	}

	h.metrics.IncEmailChange()
	h.logger.Info("email_changed",
		"account_id", acct.ID,
		"user_id", auth.UserIDFromContext(r.Context()),
	)

	writeJSON(w, http.StatusOK, dto.ChangeEmailResponse{
		Message:   "Email changed successfully",
		AccountID: acct.ID,
		NewEmail:  acct.Email,
	})
}

func (h *EmailHandler) rejectField(w http.ResponseWriter, r *http.Request, field, msg string) {
	h.metrics.IncValidationFailure(field)
	h.logger.Info("validation failed",
		"field", field,
		"path", r.URL.Path,
	)
	writeMessage(w, http.StatusBadRequest, msg)
}

// decodeJSON decodes exactly one JSON value from the request body into v.
// Bodies that are empty or not sent as application/json leave v untouched,
// so they behave like {}.
func decodeJSON(r *http.Request, v any) error {
	if !isJSONContent(r.Header.Get("Content-Type")) {
		return nil
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errTrailingData
	}
	return nil
}

func isJSONContent(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

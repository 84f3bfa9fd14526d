// Package dto defines request and response bodies for the account email API.
package dto

// TokenResponse is returned by GET /generate-token.
type TokenResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
}

// GetEmailResponse is returned by GET /get_email/{account_id}.
type GetEmailResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// ChangeEmailRequest is the body of POST /change_email.
// Field order matters: account_id is validated before new_email.
type ChangeEmailRequest struct {
	AccountID string `json:"account_id" validate:"account_id"`
	NewEmail  string `json:"new_email" validate:"loose_email"`
}

// ChangeEmailResponse is returned by POST /change_email.
type ChangeEmailResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"account_id"`
	NewEmail  string `json:"new_email"`
}

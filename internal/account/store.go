// Package account holds the account datastore boundary. Only a mock
// implementation exists; nothing is persisted.
package account

import (
	"context"
)

// Account is the subset of account data exposed by the API.
type Account struct {
	ID    string `json:"account_id"`
	Email string `json:"email"`
}

// Store looks up and changes the email address on an account.
type Store interface {
	Email(ctx context.Context, accountID string) (*Account, error)
	ChangeEmail(ctx context.Context, accountID, newEmail string) (*Account, error)
}

// MockStore answers every lookup with the same email and echoes changes
// without recording them.
type MockStore struct {
	email string
}

// NewMockStore returns a MockStore that reports email for every account.
func NewMockStore(email string) *MockStore {
	return &MockStore{email: email}
}

// Email returns the fixed email for accountID.
func (s *MockStore) Email(ctx context.Context, accountID string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Account{ID: accountID, Email: s.email}, nil
}

// ChangeEmail echoes the requested change. Later lookups still return the fixed email.
func (s *MockStore) ChangeEmail(ctx context.Context, accountID, newEmail string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Account{ID: accountID, Email: newEmail}, nil
}

package identity

import (
	"context"
	"errors"
	"time"
)

// Account is a provisioned identity-provider account. TempCredential is
// the signed token callers exchange for a first sign-in; the API never
// validates it itself (authentication is out of scope here).
type Account struct {
	Email          string            `json:"email"`
	Attributes     map[string]string `json:"attributes,omitempty"`
	TempCredential string            `json:"temp_credential,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Distinguishable provisioning failure kinds. Callers map ErrAccountExists
// and ErrInvalidParameter to client errors; everything else is a
// dependency failure.
var (
	ErrAccountExists    = errors.New("account already exists")
	ErrInvalidParameter = errors.New("invalid account parameter")
)

// AccountService is the abstract external account-management system
// (e.g. a hosted user-pool identity provider).
type AccountService interface {
	// CreateAccount provisions an account keyed by email with the given
	// attributes and temporary password. Returns ErrAccountExists when
	// the email is already registered and ErrInvalidParameter when the
	// inputs fail the provider's validation.
	CreateAccount(ctx context.Context, email string, attrs map[string]string, tempPassword string) (*Account, error)
}

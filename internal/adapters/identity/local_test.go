package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestService() *LocalAccountService {
	return NewLocalAccountService(&LocalAccountConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	}, nil)
}

func TestLocalAccountService_CreateAccount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	account, err := svc.CreateAccount(ctx, "user@example.com", map[string]string{"plan": "basic"}, "Temp@1234")
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if account.Email != "user@example.com" {
		t.Errorf("CreateAccount() email = %s, want user@example.com", account.Email)
	}
	if account.TempCredential == "" {
		t.Error("CreateAccount() issued no temporary credential")
	}
	// Compact JWS form: header.payload.signature
	if parts := strings.Split(account.TempCredential, "."); len(parts) != 3 {
		t.Errorf("CreateAccount() credential has %d segments, want 3", len(parts))
	}
	if account.Attributes["plan"] != "basic" {
		t.Errorf("CreateAccount() attributes = %v, want plan=basic", account.Attributes)
	}
}

func TestLocalAccountService_CreateAccountFailures(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "taken@example.com", nil, "Temp@1234"); err != nil {
		t.Fatalf("seed CreateAccount() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "duplicate email",
			email:    "taken@example.com",
			password: "Temp@1234",
			wantErr:  ErrAccountExists,
		},
		{
			name:     "malformed email",
			email:    "not-an-email",
			password: "Temp@1234",
			wantErr:  ErrInvalidParameter,
		},
		{
			name:     "empty email",
			email:    "",
			password: "Temp@1234",
			wantErr:  ErrInvalidParameter,
		},
		{
			name:    "empty password",
			email:   "new@example.com",
			wantErr: ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(ctx, tt.email, nil, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateAccount() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

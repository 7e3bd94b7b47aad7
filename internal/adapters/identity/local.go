package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// LocalAccountService is an in-process AccountService. It keeps the
// account registry in memory and issues a signed HS256 token as the
// temporary credential, standing in for a hosted identity provider.
type LocalAccountService struct {
	mu       sync.Mutex
	accounts map[string]*Account

	secret      []byte
	issuer      string
	tokenExpiry time.Duration
	validate    *validator.Validate
	logger      *logrus.Logger
}

// LocalAccountConfig configures a LocalAccountService
type LocalAccountConfig struct {
	JWTSecret   string
	Issuer      string
	TokenExpiry time.Duration
}

// NewLocalAccountService creates a new LocalAccountService
func NewLocalAccountService(cfg *LocalAccountConfig, logger *logrus.Logger) *LocalAccountService {
	if logger == nil {
		logger = logrus.New()
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "storage-rental-api"
	}
	expiry := cfg.TokenExpiry
	if expiry == 0 {
		expiry = 24 * time.Hour
	}
	return &LocalAccountService{
		accounts:    make(map[string]*Account),
		secret:      []byte(cfg.JWTSecret),
		issuer:      issuer,
		tokenExpiry: expiry,
		validate:    validator.New(),
		logger:      logger,
	}
}

// CreateAccount implements AccountService.CreateAccount
func (s *LocalAccountService) CreateAccount(ctx context.Context, email string, attrs map[string]string, tempPassword string) (*Account, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email %q is not a valid address", ErrInvalidParameter, email)
	}
	if tempPassword == "" {
		return nil, fmt.Errorf("%w: temporary password must not be empty", ErrInvalidParameter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[email]; ok {
		return nil, ErrAccountExists
	}

	credential, err := s.signCredential(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue temporary credential: %w", err)
	}

	account := &Account{
		Email:          email,
		Attributes:     attrs,
		TempCredential: credential,
		CreatedAt:      time.Now(),
	}
	s.accounts[email] = account

	s.logger.WithFields(logrus.Fields{
		"email": email,
	}).Info("Provisioned identity account")

	return account, nil
}

// signCredential issues the short-lived token handed back to the caller
func (s *LocalAccountService) signCredential(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/audit"
)

// Service composes the credential store, the hasher and the signer into the
// two user-facing operations. It returns typed results; mapping them to
// redirects and flash messages is the HTTP layer's job.
type Service struct {
	Accounts AccountStore
	Signer   *Signer
	Argon    ArgonParams
	Logger   *log.Logger
	Audit    *audit.Log
}

func NewService(accounts AccountStore, signer *Signer, logger *log.Logger, trail *audit.Log) *Service {
	return &Service{
		Accounts: accounts,
		Signer:   signer,
		Argon:    DefaultArgon,
		Logger:   logger,
		Audit:    trail,
	}
}

// Register creates an account with the default role. The pre-flight lookup
// exists only to produce a friendly error without paying for a hash; the
// store's uniqueness constraint is what actually decides races, so Create's
// DuplicateError is handled identically.
func (s *Service) Register(ctx context.Context, username, email, password string) (*Account, error) {
	if existing, err := s.Accounts.FindByUsernameOrEmail(ctx, username); err == nil && existing.Username == username {
		return nil, &DuplicateError{Field: "username"}
	} else if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}
	if existing, err := s.Accounts.FindByUsernameOrEmail(ctx, email); err == nil && existing.Email == email {
		return nil, &DuplicateError{Field: "email"}
	} else if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	hash, err := HashPassword(s.Argon, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Account{
		Username:  username,
		Email:     email,
		PassHash:  hash,
		Role:      RoleUser,
		CreatedAt: time.Now(),
	}
	if err := s.Accounts.Create(ctx, a); err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			s.record("register duplicate %s: %s", dup.Field, username)
			return nil, dup
		}
		return nil, err
	}

	s.record("registered %s", a.Username)
	return a, nil
}

// Login verifies the identifier/password pair and issues a token. The two
// failure modes stay distinguishable for the caller's message choice, but
// both satisfy errors.Is(err, ErrInvalidCredential).
func (s *Service) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	a, err := s.Accounts.FindByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, ErrAccountNotFound) {
		s.record("login unknown identifier")
		return nil, ErrUnknownIdentifier
	}
	if err != nil {
		return nil, err
	}

	ok, err := VerifyPassword(password, a.PassHash)
	if err != nil || !ok {
		// A malformed stored hash fails closed as a plain mismatch.
		s.record("login wrong password: %s", a.Username)
		return nil, ErrWrongPassword
	}

	token, exp, err := s.Signer.Issue(a.ID, a.Username, a.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.record("login ok: %s", a.Username)
	return &LoginResult{Account: a, Token: token, ExpiresAt: exp}, nil
}

func (s *Service) record(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.Logger != nil {
		s.Logger.Print(msg)
	}
	if s.Audit != nil {
		s.Audit.Append(msg)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/knowtasks/knowtasks/core"
	"github.com/knowtasks/knowtasks/crypto"
	"github.com/knowtasks/knowtasks/logging"
)

// AuthService implements registration, login, and account administration
// for all principal tiers.
type AuthService struct {
	store     core.PrincipalStore
	passwords crypto.PasswordHandler
	tokens    core.TokenIssuer
	throttle  core.LoginThrottle
	log       logging.Logger

	// dummyHash is burned on the unknown-email path so a lookup miss costs
	// the same as a digest mismatch and does not leak account existence
	// through timing.
	dummyHash string
}

func NewAuthService(store core.PrincipalStore, passwords crypto.PasswordHandler, tokens core.TokenIssuer, throttle core.LoginThrottle, log logging.Logger) (*AuthService, error) {
	dummy, err := passwords.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy digest: %w", err)
	}

	return &AuthService{
		store:     store,
		passwords: passwords,
		tokens:    tokens,
		throttle:  throttle,
		log:       log,
		dummyHash: dummy,
	}, nil
}

// Register creates a new principal with email and password.
//
// Self-registered mentors start out pending until a superadmin approves
// them; end users are active immediately. Superadmins cannot be created
// through this path.
func (s *AuthService) Register(ctx context.Context, input core.RegisterInput) (*core.RegisterResult, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}

	email := core.NormalizeEmail(input.Email)
	if err := core.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := core.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = core.RoleUser
	}
	if role != core.RoleUser && role != core.RoleMentor {
		return nil, core.ErrForbidden
	}

	status := core.StatusActive
	if role == core.RoleMentor {
		status = core.StatusPending
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	principal := &core.Principal{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         role,
		Status:       status,
	}

	if err := s.store.Create(ctx, principal); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "principal registered", "id", principal.ID, "role", principal.Role, "status", principal.Status)

	return &core.RegisterResult{Principal: principal}, nil
}

// SignIn authenticates a principal with email and password and mints a
// session token.
//
// An unknown email and a wrong password are indistinguishable to the
// caller: both yield ErrInvalidCredentials with the same message.
func (s *AuthService) SignIn(ctx context.Context, input core.SignInInput) (*core.SignInResult, error) {
	email := core.NormalizeEmail(input.Email)
	if email == "" {
		return nil, core.ErrEmailRequired
	}
	if input.Password == "" {
		return nil, core.ErrPasswordRequired
	}

	if err := s.throttle.Check(ctx, email, input.ClientIP); err != nil {
		return nil, err
	}

	principal, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrPrincipalNotFound) {
			_, _ = s.passwords.Verify(input.Password, s.dummyHash)
			s.recordFailure(ctx, email, input.ClientIP)
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up principal: %w", err)
	}

	valid, err := s.passwords.Verify(input.Password, principal.PasswordHash)
	if err != nil {
		// Corrupted digest. Treat as a credential failure; never degrade
		// to a weaker comparison.
		s.log.Error(ctx, "stored digest unverifiable", "id", principal.ID, "error", err)
		s.recordFailure(ctx, email, input.ClientIP)
		return nil, core.ErrInvalidCredentials
	}
	if !valid {
		s.recordFailure(ctx, email, input.ClientIP)
		return nil, core.ErrInvalidCredentials
	}

	switch principal.Status {
	case core.StatusActive:
	case core.StatusPending:
		return nil, core.ErrAccountPending
	default:
		return nil, core.ErrAccountInactive
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn(ctx, "failed to reset login throttle", "error", err)
	}

	// Best effort: a login must not fail because the timestamp write did.
	now := time.Now()
	if err := s.store.TouchLastLogin(ctx, principal.ID, now); err != nil {
		s.log.Warn(ctx, "failed to update last login", "id", principal.ID, "error", err)
	} else {
		principal.LastLoginAt = &now
	}

	tok, err := s.tokens.Issue(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &core.SignInResult{Principal: principal, Token: tok}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email, clientIP string) {
	if err := s.throttle.RecordFailure(ctx, email, clientIP); err != nil {
		s.log.Warn(ctx, "failed to record login failure", "error", err)
	}
}

// Session resolves verified token claims back to the stored principal.
func (s *AuthService) Session(ctx context.Context, claims *core.Claims) (*core.Principal, error) {
	principal, err := s.store.FindByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, core.ErrPrincipalNotFound) {
			return nil, core.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}
	return principal, nil
}

// ChangePassword rotates the caller's own secret after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, principalID string, input core.ChangePasswordInput) error {
	if err := core.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	principal, err := s.store.FindByID(ctx, principalID)
	if err != nil {
		return err
	}

	valid, err := s.passwords.Verify(input.CurrentPassword, principal.PasswordHash)
	if err != nil || !valid {
		return core.ErrInvalidCredentials
	}

	hash, err := s.passwords.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.UpdatePasswordHash(ctx, principalID, hash)
}

// UpdateStatus transitions an account's lifecycle state. Superadmin only.
func (s *AuthService) UpdateStatus(ctx context.Context, actor *core.Claims, id string, status core.Status) error {
	if actor.Role != core.RoleSuperadmin {
		return core.ErrForbidden
	}
	if !core.ValidStatus(status) {
		return core.ErrInvalidStatus
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.log.Info(ctx, "account status updated", "id", id, "status", status, "by", actor.PrincipalID)
	return nil
}

// DeleteAccount removes an account and, through the storage cascade, all
// content it owns. Superadmin only; superadmins cannot delete themselves.
func (s *AuthService) DeleteAccount(ctx context.Context, actor *core.Claims, id string) error {
	if actor.Role != core.RoleSuperadmin {
		return core.ErrForbidden
	}
	if actor.PrincipalID == id {
		return core.ErrForbidden
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info(ctx, "account deleted", "id", id, "by", actor.PrincipalID)
	return nil
}

// ResetPassword sets a new secret for another account. Superadmin only.
func (s *AuthService) ResetPassword(ctx context.Context, actor *core.Claims, id, newPassword string) error {
	if actor.Role != core.RoleSuperadmin {
		return core.ErrForbidden
	}
	if err := core.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.UpdatePasswordHash(ctx, id, hash); err != nil {
		return err
	}

	s.log.Info(ctx, "password reset", "id", id, "by", actor.PrincipalID)
	return nil
}

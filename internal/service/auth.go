package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/repo"
)

// AuthService implements sign-up, sign-in, sign-out and token verification.
type AuthService struct {
	users   repo.UserRepo
	revoked repo.RevokedTokenRepo
	tokens  *TokenManager

	// requireConfirmation blocks sign-in until the email is confirmed.
	requireConfirmation bool
	// admin accounts are confirmed at sign-up; confirming others needs them.
	admin auth.PrivilegePolicy
	now   func() time.Time
}

// NewAuthService constructs an AuthService. When requireConfirmation is false
// new users are confirmed at creation. Otherwise only addresses the admin
// policy accepts are; a nil policy means auth.DefaultPolicy.
func NewAuthService(users repo.UserRepo, revoked repo.RevokedTokenRepo, tokens *TokenManager, requireConfirmation bool, admin auth.PrivilegePolicy) *AuthService {
	if admin == nil {
		admin = auth.DefaultPolicy
	}
	return &AuthService{
		users:               users,
		revoked:             revoked,
		tokens:              tokens,
		requireConfirmation: requireConfirmation,
		admin:               admin,
		now:                 time.Now,
	}
}

// SignUp registers a new user. The returned session is nil when the email
// must be confirmed before the user can sign in.
// Returns domain.ErrValidation for a malformed email or short password and
// domain.ErrUserExists if the email is taken.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (domain.User, *domain.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, nil, err
	}
	if len(password) < domain.MinPasswordLength {
		return domain.User{}, nil, fmt.Errorf("%w: Password should be at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("service.AuthService.SignUp: hash: %w", err)
	}

	var confirmedAt *time.Time
	if !s.requireConfirmation || s.admin.IsPrivileged(&domain.Session{Email: email}) {
		now := s.now().UTC()
		confirmedAt = &now
	}

	user, err := s.users.Create(ctx, email, string(hash), confirmedAt)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("service.AuthService.SignUp: %w", err)
	}
	if !user.Confirmed() {
		return user, nil, nil
	}

	session, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("service.AuthService.SignUp: %w", err)
	}
	return user, &session, nil
}

// SignIn checks an email/password pair and issues a session.
// Unknown emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.User, domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrInvalidCredentials)
	}
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrInvalidCredentials)
	}
	if s.requireConfirmation && !user.Confirmed() {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", domain.ErrEmailNotConfirmed)
	}

	session, err := s.tokens.Issue(user)
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("service.AuthService.SignIn: %w", err)
	}
	return user, session, nil
}

// Authenticate verifies an access token and returns the session it carries.
// Returns domain.ErrUnauthorized for invalid, expired or revoked tokens.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Session{}, err
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	if revoked {
		return domain.Session{}, fmt.Errorf("service.AuthService.Authenticate: %w: token revoked", domain.ErrUnauthorized)
	}
	return claims.Session(token), nil
}

// SignOut revokes token until it would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("service.AuthService.SignOut: %w", err)
	}
	return nil
}

// User returns the stored user for id.
func (s *AuthService) User(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.User: %w", err)
	}
	return user, nil
}

// ConfirmEmail marks the user's email as confirmed. Idempotent.
func (s *AuthService) ConfirmEmail(ctx context.Context, email string) (domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.ConfirmEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.ConfirmEmail: %w", err)
	}
	return user, nil
}

// PurgeRevoked drops revocation entries for tokens that have expired.
func (s *AuthService) PurgeRevoked(ctx context.Context) (int64, error) {
	n, err := s.revoked.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("service.AuthService.PurgeRevoked: %w", err)
	}
	return n, nil
}

// normalizeEmail trims and lowercases email and checks it is a bare address.
// Addresses are unique regardless of case, so they are stored lowercase.
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: Unable to validate email address: invalid format", domain.ErrValidation)
	}
	return strings.ToLower(email), nil
}

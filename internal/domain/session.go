package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminEmail is the reserved address that grants elevated capabilities.
const AdminEmail = "admin@trekzone.com"

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

// Session is an authenticated principal. A Session value is always complete:
// callers represent "no session" with a nil *Session.
type Session struct {
	UserID      uuid.UUID
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}

// Expired reports whether the access token has passed its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// User is a registered identity as stored by the auth service.
type User struct {
	ID               uuid.UUID
	Email            string
	PasswordHash     string
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
}

// Confirmed reports whether the user has confirmed their email address.
func (u User) Confirmed() bool {
	return u.EmailConfirmedAt != nil
}

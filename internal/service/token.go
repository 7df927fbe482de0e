package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DKS2424/Travel/internal/domain"
)

// Claims is the payload of an access token. Subject holds the user ID and ID
// holds the token's jti, which sign-out revokes.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a TokenManager signing with secret. Tokens expire
// ttl after issue.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a new access token for u and returns the resulting session.
func (m *TokenManager) Issue(u domain.User) (domain.Session, error) {
	now := m.now()
	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.TokenManager.Issue: %w", err)
	}

	return domain.Session{
		UserID:      u.ID,
		Email:       u.Email,
		AccessToken: signed,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// Parse verifies token and returns its claims.
// Any signature, expiry or format problem yields domain.ErrUnauthorized.
func (m *TokenManager) Parse(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("service.TokenManager.Parse: %w: %w", domain.ErrUnauthorized, err)
	}
	if claims.ID == "" {
		return Claims{}, fmt.Errorf("service.TokenManager.Parse: %w: token has no id", domain.ErrUnauthorized)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Claims{}, fmt.Errorf("service.TokenManager.Parse: %w: bad subject", domain.ErrUnauthorized)
	}
	return claims, nil
}

// Session converts verified claims back into a domain.Session.
func (c Claims) Session(token string) domain.Session {
	s := domain.Session{
		UserID:      uuid.MustParse(c.Subject),
		Email:       c.Email,
		AccessToken: token,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}


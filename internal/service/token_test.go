package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/service"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := service.NewTokenManager(testSecret, time.Hour)
	u := domain.User{ID: uuid.New(), Email: "hiker@example.com"}

	session, err := m.Issue(u)
	require.NoError(t, err)

	claims, err := m.Parse(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, u.Email, claims.Email)
	assert.NotEmpty(t, claims.ID, "every token carries a jti")

	back := claims.Session(session.AccessToken)
	assert.Equal(t, session.UserID, back.UserID)
	assert.Equal(t, session.Email, back.Email)
	assert.Equal(t, session.AccessToken, back.AccessToken)
	assert.True(t, session.ExpiresAt.Equal(back.ExpiresAt))
}

func TestTokenManager_UniqueIDs(t *testing.T) {
	m := service.NewTokenManager(testSecret, time.Hour)
	u := domain.User{ID: uuid.New(), Email: "hiker@example.com"}

	a, err := m.Issue(u)
	require.NoError(t, err)
	b, err := m.Issue(u)
	require.NoError(t, err)

	ca, err := m.Parse(a.AccessToken)
	require.NoError(t, err)
	cb, err := m.Parse(b.AccessToken)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestTokenManager_Expired(t *testing.T) {
	m := service.NewTokenManager(testSecret, -time.Minute)

	session, err := m.Issue(domain.User{ID: uuid.New(), Email: "hiker@example.com"})
	require.NoError(t, err)

	_, err = m.Parse(session.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issued, err := service.NewTokenManager("one", time.Hour).Issue(domain.User{ID: uuid.New(), Email: "a@b.co"})
	require.NoError(t, err)

	_, err = service.NewTokenManager("two", time.Hour).Parse(issued.AccessToken)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

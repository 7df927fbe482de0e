package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/repo"
	"github.com/DKS2424/Travel/testutil"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewUserRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, "Hiker@Example.com", "hash", nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.Confirmed())

	byEmail, err := r.GetByEmail(ctx, "hiker@example.com")
	require.NoError(t, err, "email lookup is case-insensitive")
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hiker@Example.com", byID.Email)
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewUserRepo(tx)
	ctx := context.Background()

	_, err := r.Create(ctx, "dup@example.com", "hash", nil)
	require.NoError(t, err)

	_, err = r.Create(ctx, "DUP@example.com", "hash", nil)

	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	r := repo.NewUserRepo(testutil.NewTx(t))

	_, err := r.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_ConfirmEmail(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewUserRepo(tx)
	ctx := context.Background()

	_, err := r.Create(ctx, "new@example.com", "hash", nil)
	require.NoError(t, err)

	got, err := r.ConfirmEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.True(t, got.Confirmed())

	first := *got.EmailConfirmedAt
	again, err := r.ConfirmEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.True(t, again.EmailConfirmedAt.Equal(first), "confirming twice keeps the first timestamp")
}

func TestUserRepo_ConfirmEmail_NotFound(t *testing.T) {
	r := repo.NewUserRepo(testutil.NewTx(t))

	_, err := r.ConfirmEmail(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevokedTokenRepo(t *testing.T) {
	r := repo.NewRevokedTokenRepo(testutil.NewTx(t))
	ctx := context.Background()
	now := time.Now().UTC()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, r.Revoke(ctx, "jti-1", now.Add(time.Hour)), "revoke is idempotent")
	require.NoError(t, r.Revoke(ctx, "jti-old", now.Add(-time.Minute)))

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	n, err := r.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked, "unexpired entries survive a purge")
}

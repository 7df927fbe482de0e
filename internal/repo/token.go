package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// RevokedTokenRepo records access tokens that were signed out before expiry.
// Tokens are identified by their JWT ID (jti).
type RevokedTokenRepo interface {
	// Revoke marks jti as revoked until expiresAt. Idempotent.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	// IsRevoked reports whether jti has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// PurgeExpired deletes entries whose token would have expired anyway
	// and returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// pgRevokedTokenRepo is the Postgres implementation of RevokedTokenRepo.
type pgRevokedTokenRepo struct {
	db db
}

// NewRevokedTokenRepo constructs a RevokedTokenRepo backed by the provided db connection.
func NewRevokedTokenRepo(db db) RevokedTokenRepo {
	return &pgRevokedTokenRepo{db: db}
}

func (r *pgRevokedTokenRepo) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	const q = `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES (@jti, @expires_at)
		ON CONFLICT (jti) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"jti": jti, "expires_at": expiresAt})
	if err != nil {
		return fmt.Errorf("repo.RevokedTokenRepo.Revoke: %w", err)
	}
	return nil
}

func (r *pgRevokedTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = @jti)`

	var revoked bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"jti": jti}).Scan(&revoked); err != nil {
		return false, fmt.Errorf("repo.RevokedTokenRepo.IsRevoked: %w", err)
	}
	return revoked, nil
}

func (r *pgRevokedTokenRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `DELETE FROM revoked_tokens WHERE expires_at <= @now`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"now": now})
	if err != nil {
		return 0, fmt.Errorf("repo.RevokedTokenRepo.PurgeExpired: %w", err)
	}
	return tag.RowsAffected(), nil
}

package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/DKS2424/Travel/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// UserRepo defines the persistence operations for registered identities.
// Emails are matched case-insensitively.
type UserRepo interface {
	// Create inserts a user. confirmedAt may be nil for an unconfirmed address.
	// Returns domain.ErrUserExists if the email is already registered.
	Create(ctx context.Context, email, passwordHash string, confirmedAt *time.Time) (domain.User, error)

	// GetByEmail returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that ID.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// ConfirmEmail stamps email_confirmed_at if it is not already set and
	// returns the user. Returns domain.ErrNotFound for unknown emails.
	ConfirmEmail(ctx context.Context, email string) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, email, passwordHash string, confirmedAt *time.Time) (domain.User, error) {
	const q = `
		INSERT INTO users (email, password_hash, email_confirmed_at)
		VALUES (@email, @password_hash, @confirmed_at)
		RETURNING id, email, password_hash, email_confirmed_at, created_at`

	args := pgx.NamedArgs{
		"email":         email,
		"password_hash": passwordHash,
		"confirmed_at":  confirmedAt, // nil becomes NULL
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrUserExists)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `
		SELECT id, email, password_hash, email_confirmed_at, created_at
		FROM users
		WHERE lower(email) = lower(@email)`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT id, email, password_hash, email_confirmed_at, created_at
		FROM users
		WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) ConfirmEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `
		UPDATE users
		SET email_confirmed_at = COALESCE(email_confirmed_at, now())
		WHERE lower(email) = lower(@email)
		RETURNING id, email, password_hash, email_confirmed_at, created_at`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.ConfirmEmail: %w", err)
	}
	return result, nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u         domain.User
		id        pgtype.UUID
		confirmed pgtype.Timestamptz
	)
	err := s.Scan(&id, &u.Email, &u.PasswordHash, &confirmed, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	if confirmed.Valid {
		ts := confirmed.Time
		u.EmailConfirmedAt = &ts
	}
	return u, nil
}

// Package repo contains all database access logic for the TrekZone API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/DKS2424/Travel/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Begin on a pgx.Tx opens a savepoint.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TrekRepo defines the persistence operations for Treks.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TrekRepo interface {
	// Create inserts a new trek and returns the persisted record (with DB-generated
	// id and created_at populated). CreatedBy is taken from the argument.
	Create(ctx context.Context, trek domain.Trek) (domain.Trek, error)

	// GetByID retrieves a single trek by its UUID primary key.
	// Returns domain.ErrNotFound if no trek with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trek, error)

	// List returns all treks in the given order.
	List(ctx context.Context, order domain.TrekOrder) ([]domain.Trek, error)

	// Update locks the trek row, passes the stored record to apply and writes
	// back the mutable fields of its result, all in one transaction. An error
	// from apply aborts the update and is returned wrapped.
	// Returns domain.ErrNotFound if no trek with that ID exists.
	Update(ctx context.Context, id uuid.UUID, apply func(domain.Trek) (domain.Trek, error)) (domain.Trek, error)

	// Delete removes a trek by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTrekRepo is the Postgres implementation of TrekRepo.
type pgTrekRepo struct {
	db db
}

// NewTrekRepo constructs a TrekRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTrekRepo(db db) TrekRepo {
	return &pgTrekRepo{db: db}
}

const trekColumns = `id, title, description, location, duration, difficulty, price,
	image_url, start_date, end_date, max_participants, current_participants,
	created_at, created_by, inclusions, exclusions, itinerary`

// Create inserts a new trek row and returns the full persisted record.
func (r *pgTrekRepo) Create(ctx context.Context, trek domain.Trek) (domain.Trek, error) {
	const q = `
		INSERT INTO treks (title, description, location, duration, difficulty, price,
			image_url, start_date, end_date, max_participants, current_participants,
			created_by, inclusions, exclusions, itinerary)
		VALUES (@title, @description, @location, @duration, @difficulty, @price,
			@image_url, @start_date, @end_date, @max_participants, @current_participants,
			@created_by, @inclusions, @exclusions, @itinerary)
		RETURNING ` + trekColumns

	args := trekArgs(trek)
	args["created_by"] = nullableUUID(trek.CreatedBy)

	result, err := scanTrek(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trek{}, fmt.Errorf("repo.TrekRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trek by primary key.
func (r *pgTrekRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trek, error) {
	const q = `SELECT ` + trekColumns + ` FROM treks WHERE id = @id`

	result, err := scanTrek(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trek{}, fmt.Errorf("repo.TrekRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all treks ordered by order.Field. created_at breaks ties so
// the result is stable across calls.
func (r *pgTrekRepo) List(ctx context.Context, order domain.TrekOrder) ([]domain.Trek, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("repo.TrekRepo.List: %w: cannot order by %q", domain.ErrValidation, order.Field)
	}
	dir := "ASC"
	if !order.Ascending {
		dir = "DESC"
	}
	// order.Field is checked against a fixed allow-list above.
	q := `SELECT ` + trekColumns + ` FROM treks ORDER BY ` + order.Field + ` ` + dir + `, created_at ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TrekRepo.List: %w", err)
	}
	defer rows.Close()

	treks := []domain.Trek{}
	for rows.Next() {
		t, err := scanTrek(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TrekRepo.List: scan: %w", err)
		}
		treks = append(treks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TrekRepo.List: rows: %w", err)
	}

	return treks, nil
}

// Update runs apply against the row read with FOR UPDATE, so concurrent
// patches to the same trek are applied one after the other.
// id, created_at and created_by are never changed.
func (r *pgTrekRepo) Update(ctx context.Context, id uuid.UUID, apply func(domain.Trek) (domain.Trek, error)) (domain.Trek, error) {
	const (
		selectQ = `SELECT ` + trekColumns + ` FROM treks WHERE id = @id FOR UPDATE`
		updateQ = `
		UPDATE treks
		SET title                = @title,
		    description          = @description,
		    location             = @location,
		    duration             = @duration,
		    difficulty           = @difficulty,
		    price                = @price,
		    image_url            = @image_url,
		    start_date           = @start_date,
		    end_date             = @end_date,
		    max_participants     = @max_participants,
		    current_participants = @current_participants,
		    inclusions           = @inclusions,
		    exclusions           = @exclusions,
		    itinerary            = @itinerary
		WHERE id = @id
		RETURNING ` + trekColumns
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trek{}, fmt.Errorf("repo.TrekRepo.Update: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := scanTrek(tx.QueryRow(ctx, selectQ, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trek{}, fmt.Errorf("repo.TrekRepo.Update: %w", err)
	}
	next, err := apply(current)
	if err != nil {
		return domain.Trek{}, fmt.Errorf("repo.TrekRepo.Update: %w", err)
	}

	args := trekArgs(next)
	args["id"] = id

	result, err := scanTrek(tx.QueryRow(ctx, updateQ, args))
	if err != nil {
		return domain.Trek{}, fmt.Errorf("repo.TrekRepo.Update: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Trek{}, fmt.Errorf("repo.TrekRepo.Update: commit: %w", err)
	}
	return result, nil
}

// Delete removes a trek by primary key.
func (r *pgTrekRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM treks WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TrekRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TrekRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// trekArgs builds the named arguments shared by Create and Update.
// Nil lists are stored as empty arrays; the columns are NOT NULL.
func trekArgs(t domain.Trek) pgx.NamedArgs {
	return pgx.NamedArgs{
		"title":                t.Title,
		"description":          t.Description,
		"location":             t.Location,
		"duration":             t.Duration,
		"difficulty":           string(t.Difficulty),
		"price":                t.Price,
		"image_url":            t.ImageURL,
		"start_date":           pgtype.Date{Time: t.StartDate, Valid: true},
		"end_date":             pgtype.Date{Time: t.EndDate, Valid: true},
		"max_participants":     t.MaxParticipants,
		"current_participants": t.CurrentParticipants,
		"inclusions":           orEmpty(t.Inclusions),
		"exclusions":           orEmpty(t.Exclusions),
		"itinerary":            orEmpty(t.Itinerary),
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrek to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrek maps a single database row into a domain.Trek.
// It handles the UUID, date, and nullable created_by conversions.
func scanTrek(s scanner) (domain.Trek, error) {
	var (
		t          domain.Trek
		id         pgtype.UUID
		createdBy  pgtype.UUID
		startDate  pgtype.Date
		endDate    pgtype.Date
		difficulty string
	)

	err := s.Scan(&id, &t.Title, &t.Description, &t.Location, &t.Duration, &difficulty,
		&t.Price, &t.ImageURL, &startDate, &endDate, &t.MaxParticipants,
		&t.CurrentParticipants, &t.CreatedAt, &createdBy, &t.Inclusions,
		&t.Exclusions, &t.Itinerary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trek{}, domain.ErrNotFound
		}
		return domain.Trek{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Difficulty = domain.Difficulty(difficulty)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	if createdBy.Valid {
		t.CreatedBy = uuid.UUID(createdBy.Bytes)
	}

	return t, nil
}

func nullableUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Package service contains the business logic for the TrekZone API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/repo"
)

// TrekService implements business logic for Trek operations.
type TrekService struct {
	repo repo.TrekRepo
}

// NewTrekService constructs a TrekService backed by the provided TrekRepo.
func NewTrekService(r repo.TrekRepo) *TrekService {
	return &TrekService{repo: r}
}

// Create validates and persists a new trek. createdBy is the caller's user ID
// and is never taken from the payload.
// Returns domain.ErrValidation if input violates business rules.
func (s *TrekService) Create(ctx context.Context, createdBy uuid.UUID, nt domain.NewTrek) (domain.Trek, error) {
	trek := nt.Trek()
	trek.CreatedBy = createdBy
	if err := validateTrek(trek); err != nil {
		return domain.Trek{}, err
	}
	result, err := s.repo.Create(ctx, trek)
	if err != nil {
		return domain.Trek{}, fmt.Errorf("service.TrekService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trek by ID.
// Returns domain.ErrNotFound if no trek with that ID exists.
func (s *TrekService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trek, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trek{}, fmt.Errorf("service.TrekService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all treks in the requested order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TrekService) List(ctx context.Context, order domain.TrekOrder) ([]domain.Trek, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("%w: cannot order by %q", domain.ErrValidation, order.Field)
	}
	treks, err := s.repo.List(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("service.TrekService.List: %w", err)
	}
	if treks == nil {
		return []domain.Trek{}, nil
	}
	return treks, nil
}

// Update applies patch to the stored trek, validates the merged result and
// persists it. The merge runs inside the repo's row lock, so fields a
// concurrent patch set are never written back with stale values. Returns domain.ErrValidation for an empty or invalid patch and
// domain.ErrNotFound if the trek does not exist.
func (s *TrekService) Update(ctx context.Context, id uuid.UUID, patch domain.TrekPatch) (domain.Trek, error) {
	if patch.IsEmpty() {
		return domain.Trek{}, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	result, err := s.repo.Update(ctx, id, func(current domain.Trek) (domain.Trek, error) {
		merged := patch.Apply(current)
		if err := validateTrek(merged); err != nil {
			return domain.Trek{}, err
		}
		return merged, nil
	})
	if err != nil {
		return domain.Trek{}, fmt.Errorf("service.TrekService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trek by ID.
// Returns domain.ErrNotFound if the trek does not exist.
func (s *TrekService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TrekService.Delete: %w", err)
	}
	return nil
}

// validateTrek enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Difficulty must be one of the four known levels.
//   - Price and both capacities must not be negative.
//   - Both dates are required and EndDate must not be before StartDate.
func validateTrek(t domain.Trek) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !t.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty must be one of %v", domain.ErrValidation, domain.Difficulties)
	}
	if t.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if t.MaxParticipants < 0 || t.CurrentParticipants < 0 {
		return fmt.Errorf("%w: participant counts must not be negative", domain.ErrValidation)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/DKS2424/Travel/internal/domain"
)

// TrekFromDomain converts a domain.Trek into its wire form.
// Nil lists are sent as empty arrays so clients never see null.
func TrekFromDomain(t domain.Trek) Trek {
	return Trek{
		Id:                  t.ID,
		Title:               t.Title,
		Description:         t.Description,
		Location:            t.Location,
		Duration:            t.Duration,
		Difficulty:          t.Difficulty.String(),
		Price:               t.Price,
		ImageUrl:            t.ImageURL,
		StartDate:           openapi_types.Date{Time: t.StartDate},
		EndDate:             openapi_types.Date{Time: t.EndDate},
		MaxParticipants:     t.MaxParticipants,
		CurrentParticipants: t.CurrentParticipants,
		CreatedAt:           t.CreatedAt,
		CreatedBy:           t.CreatedBy,
		Inclusions:          nonNil(t.Inclusions),
		Exclusions:          nonNil(t.Exclusions),
		Itinerary:           nonNil(t.Itinerary),
	}
}

// ToDomain converts a wire Trek into a domain.Trek. The difficulty is taken
// as-is: records come from the server, which already validated them.
func (t Trek) ToDomain() domain.Trek {
	return domain.Trek{
		ID:                  uuid.UUID(t.Id),
		Title:               t.Title,
		Description:         t.Description,
		Location:            t.Location,
		Duration:            t.Duration,
		Difficulty:          domain.Difficulty(t.Difficulty),
		Price:               t.Price,
		ImageURL:            t.ImageUrl,
		StartDate:           t.StartDate.Time,
		EndDate:             t.EndDate.Time,
		MaxParticipants:     t.MaxParticipants,
		CurrentParticipants: t.CurrentParticipants,
		CreatedAt:           t.CreatedAt,
		CreatedBy:           uuid.UUID(t.CreatedBy),
		Inclusions:          t.Inclusions,
		Exclusions:          t.Exclusions,
		Itinerary:           t.Itinerary,
	}
}

// NewTrekFromDomain converts a create payload into its wire form.
func NewTrekFromDomain(n domain.NewTrek) NewTrek {
	return NewTrek{
		Title:               n.Title,
		Description:         n.Description,
		Location:            n.Location,
		Duration:            n.Duration,
		Difficulty:          n.Difficulty.String(),
		Price:               n.Price,
		ImageUrl:            n.ImageURL,
		StartDate:           openapi_types.Date{Time: n.StartDate},
		EndDate:             openapi_types.Date{Time: n.EndDate},
		MaxParticipants:     n.MaxParticipants,
		CurrentParticipants: n.CurrentParticipants,
		Inclusions:          n.Inclusions,
		Exclusions:          n.Exclusions,
		Itinerary:           n.Itinerary,
	}
}

// ToDomain converts a create request body into a domain.NewTrek.
// Returns domain.ErrValidation when the difficulty is not a known level.
func (n NewTrek) ToDomain() (domain.NewTrek, error) {
	d, err := domain.ParseDifficulty(n.Difficulty)
	if err != nil {
		return domain.NewTrek{}, err
	}
	return domain.NewTrek{
		Title:               n.Title,
		Description:         n.Description,
		Location:            n.Location,
		Duration:            n.Duration,
		Difficulty:          d,
		Price:               n.Price,
		ImageURL:            n.ImageUrl,
		StartDate:           n.StartDate.Time,
		EndDate:             n.EndDate.Time,
		MaxParticipants:     n.MaxParticipants,
		CurrentParticipants: n.CurrentParticipants,
		Inclusions:          n.Inclusions,
		Exclusions:          n.Exclusions,
		Itinerary:           n.Itinerary,
	}, nil
}

// TrekPatchFromDomain converts a partial update into its wire form.
func TrekPatchFromDomain(p domain.TrekPatch) TrekPatch {
	out := TrekPatch{
		Title:               p.Title,
		Description:         p.Description,
		Location:            p.Location,
		Duration:            p.Duration,
		Price:               p.Price,
		ImageUrl:            p.ImageURL,
		MaxParticipants:     p.MaxParticipants,
		CurrentParticipants: p.CurrentParticipants,
		Inclusions:          p.Inclusions,
		Exclusions:          p.Exclusions,
		Itinerary:           p.Itinerary,
	}
	if p.Difficulty != nil {
		d := p.Difficulty.String()
		out.Difficulty = &d
	}
	if p.StartDate != nil {
		out.StartDate = &openapi_types.Date{Time: *p.StartDate}
	}
	if p.EndDate != nil {
		out.EndDate = &openapi_types.Date{Time: *p.EndDate}
	}
	return out
}

// ToDomain converts a patch request body into a domain.TrekPatch.
func (p TrekPatch) ToDomain() (domain.TrekPatch, error) {
	out := domain.TrekPatch{
		Title:               p.Title,
		Description:         p.Description,
		Location:            p.Location,
		Duration:            p.Duration,
		Price:               p.Price,
		ImageURL:            p.ImageUrl,
		MaxParticipants:     p.MaxParticipants,
		CurrentParticipants: p.CurrentParticipants,
		Inclusions:          p.Inclusions,
		Exclusions:          p.Exclusions,
		Itinerary:           p.Itinerary,
	}
	if p.Difficulty != nil {
		d, err := domain.ParseDifficulty(*p.Difficulty)
		if err != nil {
			return domain.TrekPatch{}, err
		}
		out.Difficulty = &d
	}
	if p.StartDate != nil {
		sd := p.StartDate.Time
		out.StartDate = &sd
	}
	if p.EndDate != nil {
		ed := p.EndDate.Time
		out.EndDate = &ed
	}
	return out, nil
}

// UserFromDomain converts a domain.User into its public wire form.
func UserFromDomain(u domain.User) User {
	return User{
		Id:               u.ID,
		Email:            u.Email,
		EmailConfirmedAt: u.EmailConfirmedAt,
		CreatedAt:        u.CreatedAt,
	}
}

// ToDomain converts the public user view back into a domain.User.
// PasswordHash is never on the wire and stays empty.
func (u User) ToDomain() domain.User {
	return domain.User{
		ID:               u.Id,
		Email:            u.Email,
		EmailConfirmedAt: u.EmailConfirmedAt,
		CreatedAt:        u.CreatedAt,
	}
}

// ToDomain converts the wire session into a domain.Session.
// Returns an error when the response carries no token or no complete user,
// since a session is never partially valid.
func (s Session) ToDomain() (*domain.Session, error) {
	if s.AccessToken == "" {
		return nil, fmt.Errorf("api.Session.ToDomain: no access token")
	}
	if s.User.Email == "" || uuid.UUID(s.User.Id) == uuid.Nil {
		return nil, fmt.Errorf("api.Session.ToDomain: incomplete user")
	}
	sess := &domain.Session{
		UserID:      s.User.Id,
		Email:       s.User.Email,
		AccessToken: s.AccessToken,
	}
	if s.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(s.ExpiresAt, 0).UTC()
	}
	return sess, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Package domain contains the core data types for the TrekZone application.
// It is imported by every other internal package (repo, service, handler,
// remote, auth, store) and depends only on uuid.
package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Trek is one bookable expedition listing.
// ID, CreatedAt and CreatedBy are always assigned by the remote store.
type Trek struct {
	ID                  uuid.UUID      `json:"id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Location            string         `json:"location"`
	Duration            string         `json:"duration"`
	Difficulty          Difficulty     `json:"difficulty"`
	Price               float64        `json:"price"`
	ImageURL            string         `json:"image_url"`
	StartDate           time.Time      `json:"start_date"`
	EndDate             time.Time      `json:"end_date"`
	MaxParticipants     int            `json:"max_participants"`
	CurrentParticipants int            `json:"current_participants"`
	CreatedAt           time.Time      `json:"created_at"`
	CreatedBy           uuid.UUID      `json:"created_by"`
	Inclusions          []string       `json:"inclusions,omitempty"`
	Exclusions          []string       `json:"exclusions,omitempty"`
	Itinerary           []ItineraryDay `json:"itinerary,omitempty"`
}

// ItineraryDay is one day of a trek's schedule.
type ItineraryDay struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Activity is a single time-stamped entry within an itinerary day.
// Time is a free-form label such as "06:30" or "Morning".
type Activity struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// NewTrek is the create payload: a Trek without the remote-assigned
// ID, CreatedAt and CreatedBy.
type NewTrek struct {
	Title               string
	Description         string
	Location            string
	Duration            string
	Difficulty          Difficulty
	Price               float64
	ImageURL            string
	StartDate           time.Time
	EndDate             time.Time
	MaxParticipants     int
	CurrentParticipants int
	Inclusions          []string
	Exclusions          []string
	Itinerary           []ItineraryDay
}

// Trek returns the payload as a Trek with zero-valued remote fields.
func (n NewTrek) Trek() Trek {
	return Trek{
		Title:               n.Title,
		Description:         n.Description,
		Location:            n.Location,
		Duration:            n.Duration,
		Difficulty:          n.Difficulty,
		Price:               n.Price,
		ImageURL:            n.ImageURL,
		StartDate:           n.StartDate,
		EndDate:             n.EndDate,
		MaxParticipants:     n.MaxParticipants,
		CurrentParticipants: n.CurrentParticipants,
		Inclusions:          n.Inclusions,
		Exclusions:          n.Exclusions,
		Itinerary:           n.Itinerary,
	}
}

// SpotsRemaining returns how many participants can still join. Never negative.
func (t Trek) SpotsRemaining() int {
	if n := t.MaxParticipants - t.CurrentParticipants; n > 0 {
		return n
	}
	return 0
}

// BookingProgress returns the booked share of capacity as a whole percentage.
// A trek with no capacity reports 0.
func (t Trek) BookingProgress() int {
	if t.MaxParticipants <= 0 {
		return 0
	}
	return int(math.Round(float64(t.CurrentParticipants) / float64(t.MaxParticipants) * 100))
}

// FullyBooked reports whether no spots remain.
func (t Trek) FullyBooked() bool {
	return t.CurrentParticipants >= t.MaxParticipants
}

// TrekPatch carries a partial update. Nil fields are left unchanged.
type TrekPatch struct {
	Title               *string
	Description         *string
	Location            *string
	Duration            *string
	Difficulty          *Difficulty
	Price               *float64
	ImageURL            *string
	StartDate           *time.Time
	EndDate             *time.Time
	MaxParticipants     *int
	CurrentParticipants *int
	Inclusions          *[]string
	Exclusions          *[]string
	Itinerary           *[]ItineraryDay
}

// IsEmpty reports whether the patch sets no field at all.
func (p TrekPatch) IsEmpty() bool {
	return p == TrekPatch{}
}

// Apply copies every set field of p onto t and returns the result.
func (p TrekPatch) Apply(t Trek) Trek {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Difficulty != nil {
		t.Difficulty = *p.Difficulty
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.ImageURL != nil {
		t.ImageURL = *p.ImageURL
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.MaxParticipants != nil {
		t.MaxParticipants = *p.MaxParticipants
	}
	if p.CurrentParticipants != nil {
		t.CurrentParticipants = *p.CurrentParticipants
	}
	if p.Inclusions != nil {
		t.Inclusions = *p.Inclusions
	}
	if p.Exclusions != nil {
		t.Exclusions = *p.Exclusions
	}
	if p.Itinerary != nil {
		t.Itinerary = *p.Itinerary
	}
	return t
}

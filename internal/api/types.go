// Package api holds the JSON wire types of the TrekZone HTTP API.
// The handler package encodes them and the remote client decodes them, so the
// two sides of the wire share one definition. Field naming follows the
// OpenAPI description in spec/openapi.yaml.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/DKS2424/Travel/internal/domain"
)

// Trek is the full trek record as returned by the API.
type Trek struct {
	Id                  openapi_types.UUID    `json:"id"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Location            string                `json:"location"`
	Duration            string                `json:"duration"`
	Difficulty          string                `json:"difficulty"`
	Price               float64               `json:"price"`
	ImageUrl            string                `json:"image_url"`
	StartDate           openapi_types.Date    `json:"start_date"`
	EndDate             openapi_types.Date    `json:"end_date"`
	MaxParticipants     int                   `json:"max_participants"`
	CurrentParticipants int                   `json:"current_participants"`
	CreatedAt           time.Time             `json:"created_at"`
	CreatedBy           openapi_types.UUID    `json:"created_by"`
	Inclusions          []string              `json:"inclusions"`
	Exclusions          []string              `json:"exclusions"`
	Itinerary           []domain.ItineraryDay `json:"itinerary"`
}

// NewTrek is the POST /rest/v1/treks request body.
type NewTrek struct {
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	Location            string                `json:"location"`
	Duration            string                `json:"duration"`
	Difficulty          string                `json:"difficulty"`
	Price               float64               `json:"price"`
	ImageUrl            string                `json:"image_url"`
	StartDate           openapi_types.Date    `json:"start_date"`
	EndDate             openapi_types.Date    `json:"end_date"`
	MaxParticipants     int                   `json:"max_participants"`
	CurrentParticipants int                   `json:"current_participants"`
	Inclusions          []string              `json:"inclusions,omitempty"`
	Exclusions          []string              `json:"exclusions,omitempty"`
	Itinerary           []domain.ItineraryDay `json:"itinerary,omitempty"`
}

// TrekPatch is the PATCH /rest/v1/treks/{id} request body.
// Absent fields are left unchanged by the server.
type TrekPatch struct {
	Title               *string                `json:"title,omitempty"`
	Description         *string                `json:"description,omitempty"`
	Location            *string                `json:"location,omitempty"`
	Duration            *string                `json:"duration,omitempty"`
	Difficulty          *string                `json:"difficulty,omitempty"`
	Price               *float64               `json:"price,omitempty"`
	ImageUrl            *string                `json:"image_url,omitempty"`
	StartDate           *openapi_types.Date    `json:"start_date,omitempty"`
	EndDate             *openapi_types.Date    `json:"end_date,omitempty"`
	MaxParticipants     *int                   `json:"max_participants,omitempty"`
	CurrentParticipants *int                   `json:"current_participants,omitempty"`
	Inclusions          *[]string              `json:"inclusions,omitempty"`
	Exclusions          *[]string              `json:"exclusions,omitempty"`
	Itinerary           *[]domain.ItineraryDay `json:"itinerary,omitempty"`
}

// Credentials is the sign-in and sign-up request body.
type Credentials struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

// EmailRequest carries a single address, used by the admin confirm endpoint.
type EmailRequest struct {
	Email openapi_types.Email `json:"email"`
}

// User is the public view of a registered identity.
type User struct {
	Id               openapi_types.UUID `json:"id"`
	Email            string             `json:"email"`
	EmailConfirmedAt *time.Time         `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// Session is returned by sign-in and sign-up. AccessToken is empty when a
// sign-up still awaits email confirmation.
type Session struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	ExpiresAt   int64  `json:"expires_at,omitempty"`
	User        User   `json:"user"`
}

// HealthResponse is the GET /healthz body.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorDetail is the machine code and human message of a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

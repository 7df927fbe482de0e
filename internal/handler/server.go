// Package handler implements the HTTP handlers for the TrekZone API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trek.go, auth.go) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/middleware"
)

// TrekServicer defines the business operations the trek handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TrekServicer interface {
	Create(ctx context.Context, createdBy uuid.UUID, trek domain.NewTrek) (domain.Trek, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trek, error)
	List(ctx context.Context, order domain.TrekOrder) ([]domain.Trek, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TrekPatch) (domain.Trek, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthServicer defines the identity operations the auth handlers depend on.
// It also verifies bearer tokens for the auth middleware.
type AuthServicer interface {
	middleware.Authenticator
	SignUp(ctx context.Context, email, password string) (domain.User, *domain.Session, error)
	SignIn(ctx context.Context, email, password string) (domain.User, domain.Session, error)
	SignOut(ctx context.Context, token string) error
	User(ctx context.Context, id uuid.UUID) (domain.User, error)
	ConfirmEmail(ctx context.Context, email string) (domain.User, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	treks TrekServicer
	auth  AuthServicer
	log   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(treks TrekServicer, authSvc AuthServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{treks: treks, auth: authSvc, log: log}
}

// RouteConfig carries the access-control settings for Routes.
type RouteConfig struct {
	// AnonKey must be sent in the apikey header of every /auth and /rest call.
	AnonKey string
	// Policy decides who may change the catalog. Nil means auth.DefaultPolicy.
	Policy auth.PrivilegePolicy
}

// Routes builds the API router. Health and the OpenAPI document are public;
// everything else needs the anon key, and writes need an admin session.
func (s *Server) Routes(cfg RouteConfig) chi.Router {
	policy := cfg.Policy
	if policy == nil {
		policy = auth.DefaultPolicy
	}
	bearer := middleware.NewBearerAuthHandler(s.auth)
	admin := middleware.NewAdminHandler(policy)

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAPIKeyHandler(cfg.AnonKey))

		r.Route("/auth/v1", func(r chi.Router) {
			r.Post("/signup", s.SignUp)
			r.Post("/token", s.SignIn)
			r.With(bearer).Post("/logout", s.SignOut)
			r.With(bearer).Get("/user", s.GetUser)
			r.With(bearer, admin).Post("/admin/users/confirm", s.ConfirmEmail)
		})

		r.Route("/rest/v1/treks", func(r chi.Router) {
			r.Get("/", s.ListTreks)
			r.Get("/{id}", s.GetTrek)

			r.Group(func(r chi.Router) {
				r.Use(bearer, admin)
				r.Post("/", s.CreateTrek)
				r.Patch("/{id}", s.UpdateTrek)
				r.Delete("/{id}", s.DeleteTrek)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})
	return r
}

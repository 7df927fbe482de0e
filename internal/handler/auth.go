package handler

import (
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/DKS2424/Travel/internal/api"
	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/middleware"
)

// SignUp handles POST /auth/v1/signup.
// When email confirmation is required the response carries the user but no
// access token.
func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	var body api.Credentials
	if err := decodeJSON(r, &body); err != nil {
		respondDecodeError(w, err)
		return
	}

	user, session, err := s.auth.SignUp(r.Context(), string(body.Email), body.Password)
	if err != nil {
		s.respondError(w, r, err, "user")
		return
	}
	if session == nil {
		writeJSON(w, http.StatusOK, api.Session{User: api.UserFromDomain(user)})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(user, *session))
}

// SignIn handles POST /auth/v1/token. The optional grant_type query
// parameter must be "password" when present.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var grantType *string
	if err := runtime.BindQueryParameter("form", true, false, "grant_type", r.URL.Query(), &grantType); err != nil ||
		(grantType != nil && *grantType != "password") {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("unsupported grant_type"))
		return
	}

	var body api.Credentials
	if err := decodeJSON(r, &body); err != nil {
		respondDecodeError(w, err)
		return
	}

	user, session, err := s.auth.SignIn(r.Context(), string(body.Email), body.Password)
	if err != nil {
		s.respondError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(user, session))
}

// SignOut handles POST /auth/v1/logout by revoking the caller's token.
func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFrom(r.Context())
	if err := s.auth.SignOut(r.Context(), session.AccessToken); err != nil {
		s.respondError(w, r, err, "session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUser handles GET /auth/v1/user.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFrom(r.Context())
	user, err := s.auth.User(r.Context(), session.UserID)
	if err != nil {
		s.respondError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, api.UserFromDomain(user))
}

// ConfirmEmail handles POST /auth/v1/admin/users/confirm.
func (s *Server) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var body api.EmailRequest
	if err := decodeJSON(r, &body); err != nil {
		respondDecodeError(w, err)
		return
	}

	user, err := s.auth.ConfirmEmail(r.Context(), string(body.Email))
	if err != nil {
		s.respondError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, api.UserFromDomain(user))
}

// sessionResponse builds the token response for a signed-in user.
func sessionResponse(user domain.User, session domain.Session) api.Session {
	return api.Session{
		AccessToken: session.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(time.Until(session.ExpiresAt).Round(time.Second).Seconds()),
		ExpiresAt:   session.ExpiresAt.Unix(),
		User:        api.UserFromDomain(user),
	}
}

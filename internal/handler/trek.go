package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/DKS2424/Travel/internal/api"
	"github.com/DKS2424/Travel/internal/domain"
	"github.com/DKS2424/Travel/internal/middleware"
)

// ListTreks handles GET /rest/v1/treks.
// Supports ?order=<field>.<asc|desc> (default start_date.asc).
func (s *Server) ListTreks(w http.ResponseWriter, r *http.Request) {
	var orderParam *string
	if err := runtime.BindQueryParameter("form", true, false, "order", r.URL.Query(), &orderParam); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid order parameter"))
		return
	}
	var raw string
	if orderParam != nil {
		raw = *orderParam
	}
	order, err := domain.ParseTrekOrder(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	treks, err := s.treks.List(r.Context(), order)
	if err != nil {
		s.respondError(w, r, err, "trek")
		return
	}

	data := make([]api.Trek, len(treks))
	for i, t := range treks {
		data[i] = api.TrekFromDomain(t)
	}
	writeJSON(w, http.StatusOK, data)
}

// GetTrek handles GET /rest/v1/treks/{id}.
func (s *Server) GetTrek(w http.ResponseWriter, r *http.Request) {
	id, ok := trekID(w, r)
	if !ok {
		return
	}

	trek, err := s.treks.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, "trek")
		return
	}
	writeJSON(w, http.StatusOK, api.TrekFromDomain(trek))
}

// CreateTrek handles POST /rest/v1/treks.
// The creator is the signed-in admin, never a field of the body.
func (s *Server) CreateTrek(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFrom(r.Context())

	var body api.NewTrek
	if err := decodeJSON(r, &body); err != nil {
		respondDecodeError(w, err)
		return
	}
	nt, err := body.ToDomain()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	created, err := s.treks.Create(r.Context(), session.UserID, nt)
	if err != nil {
		s.respondError(w, r, err, "trek")
		return
	}
	writeJSON(w, http.StatusCreated, api.TrekFromDomain(created))
}

// UpdateTrek handles PATCH /rest/v1/treks/{id}. Fields absent from the body
// keep their stored values.
func (s *Server) UpdateTrek(w http.ResponseWriter, r *http.Request) {
	id, ok := trekID(w, r)
	if !ok {
		return
	}

	var body api.TrekPatch
	if err := decodeJSON(r, &body); err != nil {
		respondDecodeError(w, err)
		return
	}
	patch, err := body.ToDomain()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}

	updated, err := s.treks.Update(r.Context(), id, patch)
	if err != nil {
		s.respondError(w, r, err, "trek")
		return
	}
	writeJSON(w, http.StatusOK, api.TrekFromDomain(updated))
}

// DeleteTrek handles DELETE /rest/v1/treks/{id}.
func (s *Server) DeleteTrek(w http.ResponseWriter, r *http.Request) {
	id, ok := trekID(w, r)
	if !ok {
		return
	}

	if err := s.treks.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err, "trek")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// trekID binds the {id} path parameter. On failure it writes a 422 and
// returns false.
func trekID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("id must be a UUID"))
		return id, false
	}
	return id, true
}

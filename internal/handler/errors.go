package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DKS2424/Travel/internal/api"
	"github.com/DKS2424/Travel/internal/domain"
)

func errorBody(code, message string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}}
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trek not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) api.ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) api.ErrorResponse {
	return errorBody("validation_error", unwrapMessage(err))
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) api.ErrorResponse {
	return errorBody("validation_error", message)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TrekService.Update: validation error: title is required" → "title is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// respondError maps a service error to its HTTP status and error body.
// what names the resource for not-found messages (e.g. "trek").
// Unrecognised errors are logged and reported as 500 without detail.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(what+" not found"))
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_credentials", domain.ErrInvalidCredentials.Error()))
	case errors.Is(err, domain.ErrEmailNotConfirmed):
		writeJSON(w, http.StatusBadRequest, errorBody("email_not_confirmed", domain.ErrEmailNotConfirmed.Error()))
	case errors.Is(err, domain.ErrUserExists):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("user_already_exists", domain.ErrUserExists.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", "Invalid or expired token"))
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody("forbidden", "Admin access required"))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are rejected so typos in admin payloads surface as errors.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// respondDecodeError reports a body that could not be decoded: 413 when the
// body limit was hit, 422 otherwise.
func respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body too large"))
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
}

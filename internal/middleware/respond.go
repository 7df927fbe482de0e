package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/DKS2424/Travel/internal/api"
)

// writeError writes the API's standard error body. Middleware rejects requests
// before any handler runs, so it needs its own copy of the encoder.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.ErrorDetail{Code: code, Message: message}})
}
